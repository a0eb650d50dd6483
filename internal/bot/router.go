package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// HandlerFunc executes one matched command. Captures are the pattern's
// submatches in order.
type HandlerFunc func(ctx context.Context, inv Invocation, captures []string) Result

type route struct {
	name    string
	pattern *regexp.Regexp
	handler HandlerFunc
}

// Router dispatches a command string to the first route whose pattern
// matches it. Declaration order is load-bearing: when two patterns could
// match the same text, whichever was registered first wins, so more
// specific patterns must be registered before more general ones.
type Router struct {
	routes []route
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{}
}

// Handle registers a route. Patterns are anchored at the start of the
// command text; matching is case-sensitive.
func (r *Router) Handle(name, pattern string, h HandlerFunc) error {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern for route %s: %w", name, err)
	}
	r.routes = append(r.routes, route{name: name, pattern: re, handler: h})
	return nil
}

// Validate flags shadowed routes: if an earlier pattern matches a later
// route's literal prefix, the later route can never fire for its own
// commands. Run once after all routes are registered.
func (r *Router) Validate() error {
	for j, later := range r.routes {
		prefix, _ := later.pattern.LiteralPrefix()
		if prefix == "" {
			continue
		}
		for _, earlier := range r.routes[:j] {
			if earlier.pattern.MatchString(prefix) {
				return fmt.Errorf("route %s is shadowed by earlier route %s", later.name, earlier.name)
			}
		}
	}
	return nil
}

// Dispatch runs the first matching route and returns its name and Result.
// An unmatched command returns the name "unknown" and an error Result; no
// handler runs.
func (r *Router) Dispatch(ctx context.Context, inv Invocation) (string, Result) {
	text := strings.TrimSpace(inv.Text)
	for _, rt := range r.routes {
		m := rt.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return rt.name, rt.handler(ctx, inv, m[1:])
	}
	return "unknown", Fail("unrecognized command: %s", text)
}
