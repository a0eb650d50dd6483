package jira

import "context"

// API is the tracker surface the command layer depends on. *Client implements
// it; bot tests substitute a mock.
type API interface {
	Projects(ctx context.Context) (*Response, error)
	Users(ctx context.Context, projectKey string) (*Response, error)
	Issue(ctx context.Context, key string) (*Response, error)
	CreateIssue(ctx context.Context, fields map[string]any) (*Response, error)
	UpdateIssue(ctx context.Context, key string, fields map[string]any) (*Response, error)
	DeleteIssue(ctx context.Context, key string) (*Response, error)
	Assign(ctx context.Context, key, assignee string) (*Response, error)
	Comment(ctx context.Context, key, text string) (*Response, error)
	Resolve(ctx context.Context, key, comment string) (*Response, error)
	Priorities(ctx context.Context) (*Response, error)
	Components(ctx context.Context, projectKey string) (*Response, error)
	Versions(ctx context.Context, projectKey string) (*Response, error)
	Search(ctx context.Context, text string) (*Response, error)
	JQL(ctx context.Context, jql string) (*Response, error)
	Recent(ctx context.Context) (*Response, error)
	MatchingComponents(ctx context.Context, projectKey, partial string) (*Response, error)
	FormatIssueShort(issue map[string]any) string
	FormatIssueLong(issue map[string]any) string
	BrowseURL(key string) string
}
