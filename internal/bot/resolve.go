package bot

import "slices"

// ResolveProjects determines which tracker projects a command targets.
// Precedence: an explicit user-supplied key beats the channel defaults,
// which beat the single global default. An empty return means no project
// context exists at all; whether that is fatal is the handler's call.
func ResolveProjects(explicit string, channel []string, global string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	if len(channel) > 0 {
		return slices.Clone(channel)
	}
	if global != "" {
		return []string{global}
	}
	return nil
}

func (b *Bot) resolveProjects(inv Invocation, explicit string) []string {
	return ResolveProjects(explicit, inv.Settings.ProjectKeys, b.defaultProject)
}
