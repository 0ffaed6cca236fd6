package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// HelpBindings exports the current table as bubbles key bindings for help
// views. Actions without chords are omitted. Key strings use the portable
// chord form, so they document bindings rather than match terminal input.
func (r *Registry) HelpBindings() []key.Binding {
	var out []key.Binding
	for _, a := range Actions() {
		chords := r.bindings[a]
		if len(chords) == 0 {
			continue
		}
		keys := make([]string, len(chords))
		for i, c := range chords {
			keys[i] = c.String()
		}
		label := strings.Join(keys, "/")
		if a == ActionStateKeys && len(keys) > MaxBindings {
			label = keys[0] + "…" + keys[len(keys)-1]
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(label, a.String()),
		))
	}
	return out
}
