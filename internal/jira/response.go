package jira

import (
	"encoding/json"
	"fmt"
)

// Response is the raw outcome of one tracker call. The client fills it in
// verbatim; deciding whether it is a success is the caller's job, not ours.
type Response struct {
	// Status is the HTTP status code. It is usually an int, but upstream
	// replay paths can hand us an already-stringified code, so consumers
	// must tolerate both.
	Status any
	// Body is the decoded JSON body, nil when the body was empty, not JSON,
	// or a top-level array.
	Body map[string]any
	// List is the decoded body when the endpoint returns a top-level JSON
	// array (project, priority, component and version listings do).
	List []any
	// Raw is the unparsed body bytes.
	Raw []byte
}

// StatusText renders the status code as its decimal string, or "unknown"
// when no status is available.
func (r *Response) StatusText() string {
	if r == nil || r.Status == nil {
		return "unknown"
	}
	switch s := r.Status.(type) {
	case string:
		if s == "" {
			return "unknown"
		}
		return s
	case int:
		return fmt.Sprintf("%d", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// TransportError is a transport-level failure that still managed to carry a
// status or body, e.g. a non-JSON error page from a proxy.
type TransportError struct {
	Status any
	Body   []byte
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tracker request failed: %v", e.Err)
	}
	return fmt.Sprintf("tracker request failed with status %v", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AsResponse converts the failure into a best-effort Response by parsing the
// attached body. A body that is not valid JSON yields a Response with only
// the status and raw bytes set.
func (e *TransportError) AsResponse() *Response {
	resp := &Response{Status: e.Status, Raw: e.Body}
	if len(e.Body) > 0 {
		var decoded map[string]any
		if err := json.Unmarshal(e.Body, &decoded); err == nil {
			resp.Body = decoded
		}
	}
	return resp
}
