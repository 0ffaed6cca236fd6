//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSlotSave,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpSlotSave,
			err:      errors.New("no media loaded"),
			expected: "Failed to save state: no media loaded",
		},
		{
			name:     "group operation",
			op:       OpGroupSave,
			err:      errors.New("permission denied"),
			expected: "Failed to save state group: permission denied",
		},
		{
			name:     "keybind operation",
			op:       OpKeysSet,
			err:      errors.New("keybind already in use"),
			expected: "Failed to set keybinds: keybind already in use",
		},
		{
			name:     "loop end",
			op:       OpSlotLoopEnd,
			err:      errors.New("loop end must be after start"),
			expected: "Failed to set loop end: loop end must be after start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpVideoOpen,
			context:  "clip.mp4",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpVideoOpen,
			context:  "clip.mp4",
			err:      errors.New("no such file"),
			expected: "Failed to open video 'clip.mp4': no such file",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpVideoOpen,
			context:  "",
			err:      errors.New("no such file"),
			expected: "Failed to open video: no such file",
		},
		{
			name:     "keybinds file with path context",
			op:       OpKeysLoad,
			context:  "/home/user/.config/loopmark/keybinds.txt",
			err:      errors.New("permission denied"),
			expected: "Failed to load keybinds '/home/user/.config/loopmark/keybinds.txt': permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpSlotSave, OpSlotLoad, OpSlotLoopEnd, OpSlotDelete, OpSlotEdit,
		OpGroupSwitch, OpGroupSave, OpGroupDelete,
		OpKeysLoad, OpKeysSave, OpKeysSet, OpKeysReload,
		OpVideoOpen, OpLoopMode, OpPlaybackSeek, OpPlaybackReset,
		OpPrefsLoad, OpPrefsSave,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
