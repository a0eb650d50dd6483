package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues requests against the tracker's REST API. It reports the raw
// status and body of every completed call and leaves success/failure
// classification to the caller.
type Client struct {
	BaseURL    string
	Username   string
	APIToken   string
	HTTPClient *http.Client
}

// NewClient creates a new tracker client.
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Username: username,
		APIToken: apiToken,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do executes one request and decodes whatever came back. A returned error is
// always a transport-level failure; completed calls return a Response no
// matter the status code.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (*Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.Username, c.APIToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	out := &Response{Status: resp.StatusCode, Raw: raw}
	if len(raw) > 0 {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			switch v := decoded.(type) {
			case map[string]any:
				out.Body = v
			case []any:
				out.List = v
			}
		}
	}
	return out, nil
}

// Projects lists all projects visible to the configured credentials.
func (c *Client) Projects(ctx context.Context) (*Response, error) {
	return c.do(ctx, "GET", "/rest/api/2/project", nil, nil)
}

// Users lists the users assignable to issues in a project.
func (c *Client) Users(ctx context.Context, projectKey string) (*Response, error) {
	q := url.Values{}
	q.Set("project", projectKey)
	return c.do(ctx, "GET", "/rest/api/2/user/assignable/search", q, nil)
}

// Issue fetches a single issue by key.
func (c *Client) Issue(ctx context.Context, key string) (*Response, error) {
	return c.do(ctx, "GET", "/rest/api/2/issue/"+key, nil, nil)
}

// CreateIssue creates an issue from an already-assembled fields document.
func (c *Client) CreateIssue(ctx context.Context, fields map[string]any) (*Response, error) {
	return c.do(ctx, "POST", "/rest/api/2/issue", nil, map[string]any{"fields": fields})
}

// UpdateIssue applies a partial fields document to an existing issue.
func (c *Client) UpdateIssue(ctx context.Context, key string, fields map[string]any) (*Response, error) {
	return c.do(ctx, "PUT", "/rest/api/2/issue/"+key, nil, map[string]any{"fields": fields})
}

// DeleteIssue deletes an issue.
func (c *Client) DeleteIssue(ctx context.Context, key string) (*Response, error) {
	return c.do(ctx, "DELETE", "/rest/api/2/issue/"+key, nil, nil)
}

// Assign sets the assignee of an issue.
func (c *Client) Assign(ctx context.Context, key, assignee string) (*Response, error) {
	payload := map[string]any{"name": assignee}
	return c.do(ctx, "PUT", "/rest/api/2/issue/"+key+"/assignee", nil, payload)
}

// Comment adds a comment to an issue.
func (c *Client) Comment(ctx context.Context, key, text string) (*Response, error) {
	payload := map[string]any{"body": text}
	return c.do(ctx, "POST", "/rest/api/2/issue/"+key+"/comment", nil, payload)
}

// Resolve transitions an issue to resolved with a closing comment and a
// resolution of Fixed.
func (c *Client) Resolve(ctx context.Context, key, comment string) (*Response, error) {
	payload := map[string]any{
		"update": map[string]any{
			"comment": []map[string]any{
				{"add": map[string]any{"body": comment}},
			},
		},
		"fields": map[string]any{
			"resolution": map[string]any{"name": "Fixed"},
		},
		"transition": map[string]any{"id": "5"},
	}
	return c.do(ctx, "POST", "/rest/api/2/issue/"+key+"/transitions", nil, payload)
}

// Priorities lists the priorities configured on the tracker.
func (c *Client) Priorities(ctx context.Context) (*Response, error) {
	return c.do(ctx, "GET", "/rest/api/2/priority", nil, nil)
}

// Components lists the components of a project.
func (c *Client) Components(ctx context.Context, projectKey string) (*Response, error) {
	return c.do(ctx, "GET", "/rest/api/2/project/"+projectKey+"/components", nil, nil)
}

// Versions lists the versions of a project.
func (c *Client) Versions(ctx context.Context, projectKey string) (*Response, error) {
	return c.do(ctx, "GET", "/rest/api/2/project/"+projectKey+"/versions", nil, nil)
}

// Search runs a free-text search over issue text, newest activity first.
func (c *Client) Search(ctx context.Context, text string) (*Response, error) {
	jql := fmt.Sprintf("text ~ %q order by updated desc", text)
	return c.JQL(ctx, jql)
}

// JQL runs a raw JQL query.
func (c *Client) JQL(ctx context.Context, jql string) (*Response, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("fields", "summary,status,assignee,priority,fixVersions,components")
	return c.do(ctx, "GET", "/rest/api/2/search", q, nil)
}

// Recent lists issues updated in the last week, newest first.
func (c *Client) Recent(ctx context.Context) (*Response, error) {
	return c.JQL(ctx, "updatedDate >= -7d order by updated desc")
}

// MatchingComponents lists a project's components whose names contain the
// partial name, case-insensitively. Filtering happens here because the
// tracker has no server-side component search.
func (c *Client) MatchingComponents(ctx context.Context, projectKey, partial string) (*Response, error) {
	resp, err := c.Components(ctx, projectKey)
	if err != nil {
		return nil, err
	}
	if resp.List == nil {
		return resp, nil
	}
	needle := strings.ToLower(partial)
	var matched []any
	for _, item := range resp.List {
		component, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := component["name"].(string)
		if strings.Contains(strings.ToLower(name), needle) {
			matched = append(matched, item)
		}
	}
	filtered := *resp
	filtered.List = matched
	return &filtered, nil
}

// BrowseURL returns the web URL of an issue.
func (c *Client) BrowseURL(key string) string {
	return c.BaseURL + "/browse/" + key
}
