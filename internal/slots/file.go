package slots

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const groupHeader = `# Video Player State Group File v2.0
# Format: StateIndex,StartPos,EndPos,Speed,Valid,HasEnd,ImageData

`

// GroupPath returns the file holding group g of the video at videoPath:
// "0state_<name>.statesG<g+1>" next to the video, where name is the file
// name without its last extension.
func GroupPath(videoPath string, g int) (string, error) {
	abs, err := filepath.Abs(videoPath)
	if err != nil {
		return "", fmt.Errorf("group path: %w", err)
	}
	base := filepath.Base(abs)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(abs), fmt.Sprintf("0state_%s.statesG%d", name, g+1)), nil
}

// WriteGroup writes all slots of g in index order.
func WriteGroup(w io.Writer, g *Group) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(groupHeader); err != nil {
		return err
	}
	for i := range g {
		s := g[i]
		preview, err := EncodePreview(s.Preview)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		speed := s.Speed
		if speed <= 0 {
			speed = DefaultSpeed
		}
		_, err = fmt.Fprintf(bw, "%d,%d,%d,%s,%s,%s,%s\n",
			i,
			s.Start.Milliseconds(),
			s.End.Milliseconds(),
			strconv.FormatFloat(speed, 'g', -1, 64),
			flag(s.Valid),
			flag(s.HasEnd),
			preview,
		)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ReadGroup parses a group file. Malformed lines are skipped and reported to
// log; slots without a line stay empty. A line whose end does not follow its
// start loses its loop range.
func ReadGroup(r io.Reader, log zerolog.Logger) (Group, error) {
	g := NewGroup()
	sc := bufio.NewScanner(r)
	// Lines carry base64 PNG previews.
	sc.Buffer(make([]byte, 0, 64*1024), 32*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i, s, err := parseLine(line)
		if err != nil {
			log.Debug().Err(err).Msg("skipping group line")
			continue
		}
		g[i] = s
	}
	if err := sc.Err(); err != nil {
		return g, fmt.Errorf("read group: %w", err)
	}
	return g, nil
}

func parseLine(line string) (int, PlaybackState, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 6 {
		return 0, PlaybackState{}, fmt.Errorf("want at least 6 fields, got %d", len(parts))
	}
	i, err := strconv.Atoi(parts[0])
	if err != nil || !ValidIndex(i) {
		return 0, PlaybackState{}, fmt.Errorf("invalid slot index %q", parts[0])
	}
	start, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, PlaybackState{}, fmt.Errorf("invalid start %q", parts[1])
	}
	end, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, PlaybackState{}, fmt.Errorf("invalid end %q", parts[2])
	}
	speed, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return 0, PlaybackState{}, fmt.Errorf("invalid speed %q", parts[3])
	}

	s := PlaybackState{
		Start:  time.Duration(max(start, 0)) * time.Millisecond,
		End:    time.Duration(max(end, 0)) * time.Millisecond,
		Speed:  ClampSpeed(speed),
		Valid:  parts[4] == "1",
		HasEnd: parts[5] == "1",
	}
	if s.HasEnd && s.End <= s.Start {
		s.HasEnd = false
	}
	if len(parts) > 6 {
		// A broken preview does not invalidate the bookmark.
		if img, err := DecodePreview(parts[6]); err == nil {
			s.Preview = img
		}
	}
	return i, s, nil
}

// LoadGroupFile reads the group file at path. A missing file yields an empty
// group and exists == false.
func LoadGroupFile(path string, log zerolog.Logger) (g Group, exists bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewGroup(), false, nil
	}
	if err != nil {
		return NewGroup(), false, fmt.Errorf("open group file: %w", err)
	}
	defer f.Close()

	g, err = ReadGroup(f, log)
	return g, true, err
}

// SaveGroupFile overwrites path with g.
func SaveGroupFile(path string, g *Group) error {
	var buf bytes.Buffer
	if err := WriteGroup(&buf, g); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write group file: %w", err)
	}
	return nil
}

// RemoveGroupFile deletes path. A missing file is not an error.
func RemoveGroupFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove group file: %w", err)
	}
	return nil
}
