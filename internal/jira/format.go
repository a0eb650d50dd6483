package jira

import (
	"fmt"
	"strings"
)

// field digs a dotted path out of a decoded issue, returning "" for anything
// missing or non-string along the way.
func field(issue map[string]any, path ...string) string {
	var cur any = issue
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[p]
	}
	s, _ := cur.(string)
	return s
}

// FormatIssueShort renders a one-line summary of an issue:
// [KEY] summary (status, assignee).
func (c *Client) FormatIssueShort(issue map[string]any) string {
	key, _ := issue["key"].(string)
	summary := field(issue, "fields", "summary")
	status := field(issue, "fields", "status", "name")
	assignee := field(issue, "fields", "assignee", "displayName")
	if assignee == "" {
		assignee = "unassigned"
	}

	line := fmt.Sprintf("[%s] %s", key, summary)
	if status != "" {
		line += fmt.Sprintf(" (%s, %s)", status, assignee)
	}
	return line
}

// FormatIssueLong renders a multi-line view of an issue for "show": the short
// line, the browse URL, and the description when one exists.
func (c *Client) FormatIssueLong(issue map[string]any) string {
	var b strings.Builder
	b.WriteString(c.FormatIssueShort(issue))

	if key, _ := issue["key"].(string); key != "" {
		b.WriteString("\n")
		b.WriteString(c.BrowseURL(key))
	}

	if desc := strings.TrimSpace(field(issue, "fields", "description")); desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
	}
	return b.String()
}
