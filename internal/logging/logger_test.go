package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		format     string
		wantLevel  zerolog.Level
		wantFormat string
	}{
		{"defaults kept", "", "", zerolog.InfoLevel, "console"},
		{"debug json", "debug", "json", zerolog.DebugLevel, "json"},
		{"case insensitive", "WARN", "JSON", zerolog.WarnLevel, "json"},
		{"text alias", "error", "text", zerolog.ErrorLevel, "console"},
		{"unknown ignored", "loud", "xml", zerolog.InfoLevel, "console"},
		{"disabled", "off", "", zerolog.Disabled, "console"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig().Apply(tt.level, tt.format)
			assert.Equal(t, tt.wantLevel, cfg.Level)
			assert.Equal(t, tt.wantFormat, cfg.Format)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "trace")
	t.Setenv(EnvFormat, "json")

	cfg := DefaultConfig().FromEnv()
	assert.Equal(t, zerolog.TraceLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf

	log := New(cfg)
	log.Debug().Msg("hidden")
	log.Info().Str("group", "G1").Msg("saved")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "debug is below the default level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "saved", entry["message"])
	assert.Equal(t, "G1", entry["group"])
	assert.Contains(t, entry, "time")
}

func TestNew_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf

	logger := New(cfg)
	logger.Warn().Msg("keybinds reset")
	assert.Contains(t, buf.String(), "keybinds reset")
	assert.Contains(t, buf.String(), "WRN")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "loopmark.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
