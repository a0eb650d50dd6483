package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions_FlagValuePairing(t *testing.T) {
	opts, err := ParseOptions("foo bar -c infra -a alice desc text")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"component": "infra",
		"assignee":  "alice",
	}, opts.Flags)
	// Each flag consumes only the token adjacent to it; everything else
	// stays positional in order.
	assert.Equal(t, []string{"foo", "bar", "desc", "text"}, opts.Args)
	assert.Equal(t, "foo bar desc text", opts.Arg())
}

func TestParseOptions_QuotedValues(t *testing.T) {
	opts, err := ParseOptions(`fix the totals -d "broken totals" -j BILL`)
	require.NoError(t, err)

	desc, ok := opts.Get("desc")
	require.True(t, ok)
	assert.Equal(t, "broken totals", desc)

	project, _ := opts.Get("project-key")
	assert.Equal(t, "BILL", project)
	assert.Equal(t, "fix the totals", opts.Arg())
}

func TestParseOptions_LongFlags(t *testing.T) {
	opts, err := ParseOptions("do it --component billing --fix-version 2.1")
	require.NoError(t, err)

	component, _ := opts.Get("component")
	assert.Equal(t, "billing", component)
	fixVersion, _ := opts.Get("fix-version")
	assert.Equal(t, "2.1", fixVersion)
}

func TestParseOptions_EqualsForm(t *testing.T) {
	opts, err := ParseOptions("task --desc=hello --component=infra -j BILL")
	require.NoError(t, err)

	desc, _ := opts.Get("desc")
	assert.Equal(t, "hello", desc)
	component, _ := opts.Get("component")
	assert.Equal(t, "infra", component)
	project, _ := opts.Get("project-key")
	assert.Equal(t, "BILL", project)
	assert.Equal(t, []string{"task"}, opts.Args)
}

func TestParseOptions_UnknownFlagEqualsFormFailsFast(t *testing.T) {
	opts, err := ParseOptions("task --bogus=hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized option")
	assert.Nil(t, opts.Flags)
}

func TestParseOptions_UnknownFlagFailsFast(t *testing.T) {
	opts, err := ParseOptions("foo -z bar -c infra")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized option")
	// No partial result.
	assert.Nil(t, opts.Flags)
	assert.Nil(t, opts.Args)
}

func TestParseOptions_UnsetFlagsAbsent(t *testing.T) {
	opts, err := ParseOptions("just a summary")
	require.NoError(t, err)

	_, ok := opts.Get("assignee")
	assert.False(t, ok)
	assert.Empty(t, opts.Flags)
}

func TestParseOptions_Trimming(t *testing.T) {
	opts, err := ParseOptions(`  -c " infra "  done  `)
	require.NoError(t, err)

	component, _ := opts.Get("component")
	assert.Equal(t, "infra", component)
	assert.Equal(t, []string{"done"}, opts.Args)
}

func TestParseOptions_Idempotent(t *testing.T) {
	input := "foo bar -c infra -a alice"
	first, err := ParseOptions(input)
	require.NoError(t, err)
	second, err := ParseOptions(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseOptions_MissingValue(t *testing.T) {
	_, err := ParseOptions("something -c")
	assert.Error(t, err)
}
