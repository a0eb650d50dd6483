package jira

import "testing"

func TestFormatIssueShort(t *testing.T) {
	c := NewClient("https://jira.example.com", "user", "token")

	t.Run("full issue", func(t *testing.T) {
		issue := map[string]any{
			"key": "OPS-1",
			"fields": map[string]any{
				"summary":  "fix the build",
				"status":   map[string]any{"name": "In Progress"},
				"assignee": map[string]any{"displayName": "Alice A"},
			},
		}
		want := "[OPS-1] fix the build (In Progress, Alice A)"
		if got := c.FormatIssueShort(issue); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("unassigned", func(t *testing.T) {
		issue := map[string]any{
			"key": "OPS-2",
			"fields": map[string]any{
				"summary": "tidy up",
				"status":  map[string]any{"name": "Open"},
			},
		}
		want := "[OPS-2] tidy up (Open, unassigned)"
		if got := c.FormatIssueShort(issue); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("sparse fields", func(t *testing.T) {
		issue := map[string]any{"key": "OPS-3"}
		if got := c.FormatIssueShort(issue); got != "[OPS-3] " {
			t.Errorf("unexpected rendering: %q", got)
		}
	})
}

func TestFormatIssueLong(t *testing.T) {
	c := NewClient("https://jira.example.com", "user", "token")
	issue := map[string]any{
		"key": "OPS-1",
		"fields": map[string]any{
			"summary":     "fix the build",
			"status":      map[string]any{"name": "Open"},
			"description": "the build is red\nsince tuesday",
		},
	}
	got := c.FormatIssueLong(issue)
	want := "[OPS-1] fix the build (Open, unassigned)\nhttps://jira.example.com/browse/OPS-1\nthe build is red\nsince tuesday"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIssueKeyRegex(t *testing.T) {
	if !IssueKeyRegex.MatchString("OPS-123") {
		t.Error("expected OPS-123 to match")
	}
	if IssueKeyRegex.MatchString("ops-123") {
		t.Error("lowercase keys must not match")
	}
}

func TestBrowseURLRegex(t *testing.T) {
	m := BrowseURLRegex.FindStringSubmatch("see https://jira.example.com/browse/OPS-123 for details")
	if m == nil || m[1] != "OPS-123" {
		t.Errorf("expected to extract OPS-123, got %v", m)
	}
	if BrowseURLRegex.MatchString("https://jira.example.com/issues/OPS-123") {
		t.Error("non-browse URLs must not match")
	}
}
