package bot

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"jirabot/internal/jira"
)

// Fixed remediation text for auth failures. Never overridden by body content.
const (
	msgForbidden    = "403 Forbidden. Verify your credentials?"
	msgUnauthorized = "401 Unauthorized. Check your credentials?"
)

// Classify reconciles the three failure signals of one tracker call (status
// code, structured error body, transport failure) into a single Result. It
// is pure data-in/data-out; handlers never inspect a Response themselves.
//
// On success the Result carries the decoded payload in Data and no Value;
// the handler supplies the rendering.
func Classify(resp *jira.Response, err error) Result {
	if err != nil {
		var terr *jira.TransportError
		if !errors.As(err, &terr) {
			return Fail("unknown API error")
		}
		// Recover whatever the failure carried and classify that.
		recovered := terr.AsResponse()
		if msg := bodyErrors(recovered.Body); msg != "" {
			return Fail("%s", msg)
		}
		return Fail("%s API error", recovered.StatusText())
	}

	status := resp.StatusText()
	if successStatus(status) {
		// The tracker is known to hand back 200 alongside an embedded error
		// body. Status success is necessary, not sufficient.
		if msg := bodyErrors(resp.Body); msg != "" {
			return Fail("%s", msg)
		}
		return Ok(nil, payload(resp))
	}

	switch status {
	case "403":
		return Fail("%s", msgForbidden)
	case "401":
		return Fail("%s", msgUnauthorized)
	}
	if msg := bodyErrors(resp.Body); msg != "" {
		return Fail("%s", msg)
	}
	return Fail("%s API error", status)
}

// successStatus implements the success predicate: the first character of the
// decimal status is '2'. Defined as a prefix check because upstream can hand
// us the code either as an int or already stringified.
func successStatus(status string) bool {
	return len(status) > 0 && status[0] == '2'
}

// bodyErrors extracts error text from a structured body: a sequence of
// error messages joined with single spaces, else a field-to-message mapping
// rendered as "field: message" pairs in deterministic key order.
func bodyErrors(body map[string]any) string {
	if body == nil {
		return ""
	}
	if msgs, ok := body["errorMessages"].([]any); ok && len(msgs) > 0 {
		parts := make([]string, 0, len(msgs))
		for _, m := range msgs {
			parts = append(parts, fmt.Sprintf("%v", m))
		}
		return strings.Join(parts, " ")
	}
	if fields, ok := body["errors"].(map[string]any); ok && len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, fields[k]))
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// payload picks whichever decoded form the response carried.
func payload(resp *jira.Response) any {
	switch {
	case resp.Body != nil:
		return resp.Body
	case resp.List != nil:
		return resp.List
	default:
		return nil
	}
}
