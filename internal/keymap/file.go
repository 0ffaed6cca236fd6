package keymap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/keyseq"
)

// Keybinds file errors. Any of them makes Open fall back to the defaults.
var (
	ErrMalformedLine   = errors.New("malformed keybinds line")
	ErrDuplicateAction = errors.New("action listed twice")
	ErrActionCount     = errors.New("wrong number of actions")
)

const fileHeader = `# Video Player Keybinds Configuration
# Format: ActionName=Key1,Key2
# Each action can have up to 2 keybinds separated by comma (State Keys up to 12)
# Use modifier keys as combos: Ctrl+Key, Alt+Key, Shift+Key

`

// Encode writes t in the keybinds file format, one line per action in
// enumeration order.
func Encode(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(fileHeader); err != nil {
		return err
	}
	for _, a := range Actions() {
		parts := make([]string, 0, len(t[a]))
		for _, c := range t[a] {
			parts = append(parts, c.String())
		}
		if _, err := fmt.Fprintf(bw, "%s=%s\n", a.ID(), strings.Join(parts, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses a keybinds file. It requires exactly one line per known
// action, and the result must satisfy Table.Check.
func Decode(r io.Reader) (Table, error) {
	t := make(Table, actionCount)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on the first '=' only: "=" is itself a bindable key.
		name, keys, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedLine, lineNo, line)
		}
		a, ok := ActionFromID(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("%w at line %d: %q", ErrUnknownAction, lineNo, name)
		}
		if _, dup := t[a]; dup {
			return nil, fmt.Errorf("%w at line %d: %s", ErrDuplicateAction, lineNo, a.ID())
		}

		chords := []keyseq.Chord{}
		for _, part := range strings.Split(keys, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			c, err := keyseq.Parse(part)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			chords = append(chords, c)
		}
		t[a] = chords
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(t) != Count() {
		return nil, fmt.Errorf("%w: found %d, want %d", ErrActionCount, len(t), Count())
	}
	if err := t.Check(); err != nil {
		return nil, err
	}
	return t, nil
}

// Open loads the registry from path. A missing, unreadable or invalid file
// is replaced by the default table, which is written back to path. The
// returned error is non-nil only if that rewrite fails.
func Open(path string, log zerolog.Logger) (*Registry, error) {
	r := NewRegistry(log)
	r.path = path
	if err := r.load(); err != nil {
		return r, err
	}
	return r, nil
}

// Path returns the keybinds file path, or "" for an in-memory registry.
func (r *Registry) Path() string {
	return r.path
}

// Reload re-reads the keybinds file with the same self-healing rules as
// Open. Listeners are notified only if the table actually changed.
func (r *Registry) Reload() error {
	before := r.bindings
	err := r.load()
	if !before.Equal(r.bindings) {
		r.changed()
	}
	return err
}

func (r *Registry) load() error {
	log := r.log.With().Str("path", r.path).Logger()

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Msg("keybinds file missing, creating defaults")
		return r.rewriteDefaults()
	}
	if err != nil {
		log.Warn().Err(err).Msg("keybinds file unreadable, recreating with defaults")
		return r.rewriteDefaults()
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		log.Warn().Err(err).Msg("keybinds file invalid, recreating with defaults")
		return r.rewriteDefaults()
	}
	r.bindings = t
	log.Debug().Msg("keybinds loaded")
	return nil
}

func (r *Registry) rewriteDefaults() error {
	r.bindings = DefaultTable()
	return r.Save()
}

// Save writes the table to the keybinds file. The file is replaced
// atomically so a watcher never observes a half-written file.
func (r *Registry) Save() error {
	if r.path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := Encode(&buf, r.bindings); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create keybinds dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".keybinds-*")
	if err != nil {
		return fmt.Errorf("save keybinds: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save keybinds: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save keybinds: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save keybinds: %w", err)
	}
	r.log.Debug().Str("path", r.path).Msg("keybinds saved")
	return nil
}
