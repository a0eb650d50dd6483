package bot

// ChannelSettings are the per-channel defaults loaded before dispatch.
type ChannelSettings struct {
	// ProjectKeys are the channel's default tracker projects, in the order
	// they were configured.
	ProjectKeys []string
}

// Invocation bundles everything one command execution may read: the raw
// text, who sent it, and where. It is built once at dispatch and never
// mutated, so concurrent invocations cannot observe each other's state.
type Invocation struct {
	Text     string
	User     string
	Channel  string
	Settings ChannelSettings
}
