package bot

import (
	"fmt"
	"strings"
)

// Result is the only output of a command invocation. Exactly one of
// Value/Data (success) or Err (failure) is populated.
type Result struct {
	// Value is the display-ready rendering: a string or an ordered []string.
	Value any
	// Data is the raw payload for downstream consumers.
	Data any
	// Err is the human-readable failure message.
	Err string
}

// Ok builds a success Result.
func Ok(value, data any) Result {
	return Result{Value: value, Data: data}
}

// Fail builds an error Result.
func Fail(format string, args ...any) Result {
	return Result{Err: fmt.Sprintf(format, args...)}
}

// IsError reports whether the Result is a failure.
func (r Result) IsError() bool {
	return r.Err != ""
}

// Text flattens the Result into the string a chat layer posts back: the
// error message, or the value lines joined with newlines.
func (r Result) Text() string {
	if r.Err != "" {
		return r.Err
	}
	switch v := r.Value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
