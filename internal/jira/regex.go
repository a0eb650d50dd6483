package jira

import "regexp"

// IssueKeyRegex matches a tracker issue key like "OPS-123".
var IssueKeyRegex = regexp.MustCompile(`[A-Z][A-Z0-9]+-\d+`)

// BrowseURLRegex extracts the issue key from a tracker browse URL pasted into
// chat, e.g. "https://jira.example.com/browse/OPS-123".
var BrowseURLRegex = regexp.MustCompile(`https?://\S+/browse/([A-Z][A-Z0-9]+-\d+)`)
