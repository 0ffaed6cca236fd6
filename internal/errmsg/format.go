// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Slot operations
	OpSlotSave    Op = "save state"
	OpSlotLoad    Op = "load state"
	OpSlotLoopEnd Op = "set loop end"
	OpSlotDelete  Op = "delete state"
	OpSlotEdit    Op = "edit state"

	// Group operations
	OpGroupSwitch Op = "switch state group"
	OpGroupSave   Op = "save state group"
	OpGroupDelete Op = "delete state group"

	// Keybind operations
	OpKeysLoad   Op = "load keybinds"
	OpKeysSave   Op = "save keybinds"
	OpKeysSet    Op = "set keybinds"
	OpKeysReload Op = "reload keybinds"

	// Playback operations
	OpVideoOpen     Op = "open video"
	OpLoopMode      Op = "change loop mode"
	OpPlaybackSeek  Op = "seek"
	OpPlaybackReset Op = "return to last position"

	// Preferences
	OpPrefsLoad Op = "load preferences"
	OpPrefsSave Op = "save preferences"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
