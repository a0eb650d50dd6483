package bot

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/pflag"
)

// optionTable is the closed set of flags commands accept. Anything else is
// rejected.
var optionTable = []struct {
	long  string
	short string
}{
	{"project-key", "j"},
	{"component", "c"},
	{"summary", "s"},
	{"assignee", "a"},
	{"fix-version", "f"},
	{"desc", "d"},
	{"time", "t"},
	{"remaining", "r"},
	{"parent", "p"},
}

// Options is the parsed form of a command's trailing free text: recognized
// flags bound to trimmed values, plus the leftover positional tokens in
// their original order. A flag the user did not pass is absent from Flags.
type Options struct {
	Flags map[string]string
	Args  []string
}

// Get returns the value of a flag by its long name.
func (o Options) Get(name string) (string, bool) {
	v, ok := o.Flags[name]
	return v, ok
}

// Arg reassembles the positional tokens into free text, e.g. an issue
// summary typed without quotes.
func (o Options) Arg() string {
	return strings.Join(o.Args, " ")
}

// ParseOptions tokenizes one trailing argument string and binds the
// recognized flags; each flag consumes the single token that follows it.
// Unknown flags fail the whole parse, no partial result is returned.
//
// Known limitation: a value containing a literal dash-letter word must be
// quoted, otherwise it is read as a flag marker.
func ParseOptions(text string) (Options, error) {
	words := tokenize(text)

	for _, w := range words {
		if isFlagMarker(w) && !knownFlag(w) {
			return Options{}, fmt.Errorf("unrecognized option %s", w)
		}
	}

	fs := pflag.NewFlagSet("options", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {}
	values := make(map[string]*string, len(optionTable))
	for _, f := range optionTable {
		values[f.long] = fs.StringP(f.long, f.short, "", "")
	}
	if err := fs.Parse(words); err != nil {
		return Options{}, fmt.Errorf("unrecognized option: %w", err)
	}

	opts := Options{Flags: make(map[string]string)}
	for _, f := range optionTable {
		if fs.Changed(f.long) {
			opts.Flags[f.long] = trimToken(*values[f.long])
		}
	}
	for _, a := range fs.Args() {
		if a = trimToken(a); a != "" {
			opts.Args = append(opts.Args, a)
		}
	}
	return opts, nil
}

// tokenize splits the text into words, keeping quoted runs together so flag
// values like -d "broken totals" stay one token. Unbalanced quotes fall back
// to plain whitespace splitting.
func tokenize(text string) []string {
	words, err := shellquote.Split(text)
	if err != nil {
		words = strings.Fields(text)
	}
	return words
}

func isFlagMarker(w string) bool {
	if len(w) == 2 && w[0] == '-' && isLetter(w[1]) {
		return true
	}
	if strings.HasPrefix(w, "--") && len(w) > 2 {
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func knownFlag(w string) bool {
	// --flag=value carries its value in the same token.
	if i := strings.IndexByte(w, '='); i >= 0 {
		w = w[:i]
	}
	for _, f := range optionTable {
		if w == "-"+f.short || w == "--"+f.long {
			return true
		}
	}
	return false
}

// trimToken strips surrounding whitespace and any symmetric quote pair left
// over from the fallback tokenizer.
func trimToken(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
