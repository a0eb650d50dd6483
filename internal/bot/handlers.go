package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"jirabot/internal/jira"
)

// maxSearchResults caps how many matches a listing command renders.
const maxSearchResults = 15

func (b *Bot) handleProjects(ctx context.Context, inv Invocation, captures []string) Result {
	res := Classify(b.api.Projects(ctx))
	if res.IsError() {
		return res
	}
	list, _ := res.Data.([]any)
	lines := make([]string, 0, len(list))
	for _, item := range list {
		project, ok := item.(map[string]any)
		if !ok {
			continue
		}
		key, _ := project["key"].(string)
		name, _ := project["name"].(string)
		lines = append(lines, fmt.Sprintf("%s - %s", key, name))
	}
	if len(lines) == 0 {
		return Ok("No projects found", res.Data)
	}
	return Ok(lines, res.Data)
}

func (b *Bot) handleParse(ctx context.Context, inv Invocation, captures []string) Result {
	m := jira.BrowseURLRegex.FindStringSubmatch(captures[0])
	if m == nil {
		return Fail("no issue URL found")
	}
	key := m[1]
	res := Classify(b.api.Issue(ctx, key))
	if res.IsError() {
		return res
	}
	issue, _ := res.Data.(map[string]any)
	return Ok(b.api.FormatIssueShort(issue), res.Data)
}

func (b *Bot) handleShow(ctx context.Context, inv Invocation, captures []string) Result {
	res := Classify(b.api.Issue(ctx, captures[0]))
	if res.IsError() {
		return res
	}
	issue, _ := res.Data.(map[string]any)
	return Ok(b.api.FormatIssueLong(issue), res.Data)
}

func (b *Bot) handleDelete(ctx context.Context, inv Invocation, captures []string) Result {
	key := captures[0]
	res := Classify(b.api.DeleteIssue(ctx, key))
	if res.IsError() {
		return res
	}
	return Ok(fmt.Sprintf("Deleted %s", key), res.Data)
}

func (b *Bot) handleComponents(ctx context.Context, inv Invocation, captures []string) Result {
	projects := b.resolveProjects(inv, "")
	if len(projects) == 0 {
		return Fail("no project context: set a channel default or a global project")
	}
	return b.listPerProject(ctx, projects, b.api.Components, func(item map[string]any) string {
		name, _ := item["name"].(string)
		return name
	})
}

func (b *Bot) handleVersions(ctx context.Context, inv Invocation, captures []string) Result {
	projects := b.resolveProjects(inv, captures[0])
	if len(projects) == 0 {
		return Fail("no project context: pass a project key or set a default")
	}
	return b.listPerProject(ctx, projects, b.api.Versions, formatVersion)
}

func (b *Bot) handleRecent(ctx context.Context, inv Invocation, captures []string) Result {
	return b.renderSearch(Classify(b.api.Recent(ctx)))
}

func (b *Bot) handlePri(ctx context.Context, inv Invocation, captures []string) Result {
	res := Classify(b.api.Priorities(ctx))
	if res.IsError() {
		return res
	}
	list, _ := res.Data.([]any)
	lines := make([]string, 0, len(list))
	for _, item := range list {
		pri, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := pri["name"].(string)
		desc, _ := pri["description"].(string)
		if desc != "" {
			lines = append(lines, fmt.Sprintf("%s - %s", name, desc))
		} else {
			lines = append(lines, name)
		}
	}
	return Ok(lines, res.Data)
}

func (b *Bot) handleUsers(ctx context.Context, inv Invocation, captures []string) Result {
	projects := b.resolveProjects(inv, captures[0])
	if len(projects) == 0 {
		return Fail("no project context: pass a project key or set a default")
	}
	return b.listPerProject(ctx, projects, b.api.Users, func(item map[string]any) string {
		name, _ := item["name"].(string)
		display, _ := item["displayName"].(string)
		if display != "" && name != "" {
			return fmt.Sprintf("%s (%s)", display, name)
		}
		if display != "" {
			return display
		}
		return name
	})
}

func (b *Bot) handleAssign(ctx context.Context, inv Invocation, captures []string) Result {
	key, assignee := captures[0], captures[1]
	res := Classify(b.api.Assign(ctx, key, assignee))
	if res.IsError() {
		return res
	}
	return Ok(fmt.Sprintf("Assigned %s to %s", key, assignee), res.Data)
}

func (b *Bot) handleComment(ctx context.Context, inv Invocation, captures []string) Result {
	key := captures[0]
	res := Classify(b.api.Comment(ctx, key, trimToken(captures[1])))
	if res.IsError() {
		return res
	}
	return Ok(fmt.Sprintf("Commented on %s", key), res.Data)
}

func (b *Bot) handleSearch(ctx context.Context, inv Invocation, captures []string) Result {
	return b.renderSearch(Classify(b.api.Search(ctx, captures[0])))
}

func (b *Bot) handleJQL(ctx context.Context, inv Invocation, captures []string) Result {
	return b.renderSearch(Classify(b.api.JQL(ctx, captures[0])))
}

func (b *Bot) handleCreate(ctx context.Context, inv Invocation, captures []string) Result {
	opts, err := ParseOptions(captures[0])
	if err != nil {
		return Fail("%v", err)
	}
	summary := opts.Arg()
	if summary == "" {
		return Fail("missing summary")
	}
	explicit, _ := opts.Get("project-key")
	projects := b.resolveProjects(inv, explicit)
	if len(projects) == 0 {
		return Fail("no project context: pass -j or set a default project")
	}

	fields := map[string]any{
		"project":   map[string]any{"key": projects[0]},
		"summary":   summary,
		"issuetype": map[string]any{"name": "Task"},
	}
	if v, ok := opts.Get("component"); ok {
		fields["components"] = []map[string]any{{"name": v}}
	}
	if v, ok := opts.Get("assignee"); ok {
		fields["assignee"] = map[string]any{"name": v}
	}
	if v, ok := opts.Get("fix-version"); ok {
		fields["fixVersions"] = []map[string]any{{"name": v}}
	}
	if v, ok := opts.Get("desc"); ok {
		fields["description"] = v
	}
	if v, ok := opts.Get("time"); ok {
		fields["timetracking"] = map[string]any{"originalEstimate": v}
	}
	if v, ok := opts.Get("parent"); ok {
		fields["parent"] = map[string]any{"key": v}
	}

	res := Classify(b.api.CreateIssue(ctx, fields))
	if res.IsError() {
		return res
	}
	created, _ := res.Data.(map[string]any)
	key, _ := created["key"].(string)
	return Ok(fmt.Sprintf("Created %s: %s", key, b.api.BrowseURL(key)), res.Data)
}

func (b *Bot) handleUpdate(ctx context.Context, inv Invocation, captures []string) Result {
	key := captures[0]
	opts, err := ParseOptions(captures[1])
	if err != nil {
		return Fail("%v", err)
	}

	fields := map[string]any{}
	if v, ok := opts.Get("summary"); ok {
		fields["summary"] = v
	}
	if v, ok := opts.Get("component"); ok {
		fields["components"] = []map[string]any{{"name": v}}
	}
	if v, ok := opts.Get("assignee"); ok {
		fields["assignee"] = map[string]any{"name": v}
	}
	if v, ok := opts.Get("fix-version"); ok {
		fields["fixVersions"] = []map[string]any{{"name": v}}
	}
	if v, ok := opts.Get("desc"); ok {
		fields["description"] = v
	}
	timetracking := map[string]any{}
	if v, ok := opts.Get("time"); ok {
		timetracking["originalEstimate"] = v
	}
	if v, ok := opts.Get("remaining"); ok {
		timetracking["remainingEstimate"] = v
	}
	if len(timetracking) > 0 {
		fields["timetracking"] = timetracking
	}
	if len(fields) == 0 {
		return Fail("nothing to update: pass at least one option")
	}

	res := Classify(b.api.UpdateIssue(ctx, key, fields))
	if res.IsError() {
		return res
	}
	return Ok(fmt.Sprintf("Updated %s", key), res.Data)
}

func (b *Bot) handleResolve(ctx context.Context, inv Invocation, captures []string) Result {
	key, comment := captures[0], trimToken(captures[1])

	// Confirm the issue exists first; a failed lookup is its own error and
	// must not be conflated with the resolve call's classification.
	lookup := Classify(b.api.Issue(ctx, key))
	if lookup.IsError() {
		return Fail("no issue found %s", key)
	}

	res := Classify(b.api.Resolve(ctx, key, comment))
	if res.IsError() {
		return res
	}
	return Ok(fmt.Sprintf("Resolved %s", key), res.Data)
}

// renderSearch turns a classified search payload into issue lines, truncated
// to the first maxSearchResults matches.
func (b *Bot) renderSearch(res Result) Result {
	if res.IsError() {
		return res
	}
	body, _ := res.Data.(map[string]any)
	issues, _ := body["issues"].([]any)
	if len(issues) > maxSearchResults {
		issues = issues[:maxSearchResults]
	}
	lines := make([]string, 0, len(issues))
	for _, item := range issues {
		issue, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, b.api.FormatIssueShort(issue))
	}
	if len(lines) == 0 {
		return Ok("No issues found", res.Data)
	}
	return Ok(lines, res.Data)
}

// listPerProject issues one fetch per resolved project key. Fetches run
// concurrently but the concatenated output follows the project resolution
// order, not completion order. The first error wins.
func (b *Bot) listPerProject(ctx context.Context, projects []string, fetch func(context.Context, string) (*jira.Response, error), render func(map[string]any) string) Result {
	outcomes := make([]Result, len(projects))
	var wg sync.WaitGroup
	for i, p := range projects {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			outcomes[i] = Classify(fetch(ctx, p))
		}(i, p)
	}
	wg.Wait()

	var lines []string
	data := make([]any, 0, len(outcomes))
	for _, oc := range outcomes {
		if oc.IsError() {
			return oc
		}
		list, _ := oc.Data.([]any)
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				lines = append(lines, render(m))
			}
		}
		data = append(data, oc.Data)
	}
	if len(lines) == 0 {
		return Ok("None found", data)
	}
	return Ok(lines, data)
}

// formatVersion renders one project version with its bracketed qualifiers,
// present only when true: name [release date D] [archived] [released].
func formatVersion(v map[string]any) string {
	name, _ := v["name"].(string)
	var b strings.Builder
	b.WriteString(name)
	if date, _ := v["releaseDate"].(string); date != "" {
		fmt.Fprintf(&b, " [release date %s]", date)
	}
	if archived, _ := v["archived"].(bool); archived {
		b.WriteString(" [archived]")
	}
	if released, _ := v["released"].(bool); released {
		b.WriteString(" [released]")
	}
	return b.String()
}
