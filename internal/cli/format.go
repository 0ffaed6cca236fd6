package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/rs/zerolog"

	"github.com/llehouerou/loopmark/internal/keymap"
	"github.com/llehouerou/loopmark/internal/player"
	"github.com/llehouerou/loopmark/internal/slots"
	"github.com/llehouerou/loopmark/internal/state"
	"github.com/llehouerou/loopmark/internal/ui/styles"
)

func newTable(headers ...string) *table.Table {
	t := styles.T()
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// PrintKeys lists every action with its file ID and chords.
func PrintKeys(w io.Writer, r *keymap.Registry) error {
	tbl := newTable("Action", "ID", "Keys")
	for _, a := range keymap.Actions() {
		chords := r.Bindings(a)
		keys := make([]string, len(chords))
		for i, c := range chords {
			keys[i] = c.String()
		}
		name := a.String()
		if !a.Editable() {
			name += " (fixed)"
		}
		tbl.Row(name, a.ID(), strings.Join(keys, " "))
	}
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

// GroupSummary describes one group file of a video.
type GroupSummary struct {
	Index  int
	Path   string
	Exists bool
	Group  slots.Group
}

// LoadGroups reads the group files of video. Missing files give empty
// groups.
func LoadGroups(video string, log zerolog.Logger) ([]GroupSummary, error) {
	out := make([]GroupSummary, 0, slots.GroupCount)
	for g := range slots.GroupCount {
		path, err := slots.GroupPath(video, g)
		if err != nil {
			return nil, err
		}
		group, exists, err := slots.LoadGroupFile(path, log)
		if err != nil {
			return nil, fmt.Errorf("read group %d: %w", g+1, err)
		}
		out = append(out, GroupSummary{Index: g, Path: path, Exists: exists, Group: group})
	}
	return out, nil
}

// PrintGroups lists the occupied slots of every saved group.
func PrintGroups(w io.Writer, video string, groups []GroupSummary) error {
	if _, err := fmt.Fprintf(w, "%s\n", filepath.Base(video)); err != nil {
		return err
	}
	for _, g := range groups {
		if !g.Exists {
			if _, err := fmt.Fprintf(w, "Group %d: no file\n", g.Index+1); err != nil {
				return err
			}
			continue
		}
		n := g.Group.Occupied()
		if _, err := fmt.Fprintf(w, "Group %d: %s (%s)\n", g.Index+1,
			english.Plural(n, "state", "states"), filepath.Base(g.Path)); err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		tbl := newTable("Slot", "Start", "End", "Speed", "Preview")
		for i, st := range g.Group {
			if !st.Valid {
				continue
			}
			end := "-"
			if st.HasEnd {
				end = player.FormatPosition(st.End)
			}
			preview := "-"
			if st.Preview != nil {
				b := st.Preview.Bounds()
				preview = fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
			}
			tbl.Row(strconv.Itoa(i+1), player.FormatPosition(st.Start), end,
				humanize.FtoaWithDigits(st.Speed, 2)+"x", preview)
		}
		if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
			return err
		}
	}
	return nil
}

// PrintRecent lists recently opened videos, newest first.
func PrintRecent(w io.Writer, videos []state.RecentVideo, now time.Time) error {
	if len(videos) == 0 {
		_, err := fmt.Fprintln(w, "No recent videos")
		return err
	}
	tbl := newTable("Video", "Opened", "Resume", "Group", "Saved groups")
	for _, v := range videos {
		saved := make([]string, 0, len(v.SavedGroups))
		for g := range slots.GroupCount {
			if n, ok := v.SavedGroups[g]; ok {
				saved = append(saved, fmt.Sprintf("%d:%d", g+1, n))
			}
		}
		tbl.Row(
			v.Path,
			humanize.RelTime(v.OpenedAt, now, "ago", "from now"),
			player.FormatPosition(v.LastPosition),
			strconv.Itoa(v.ActiveGroup+1),
			strings.Join(saved, " "),
		)
	}
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

// ErrBadPosition is returned by ParsePosition.
var ErrBadPosition = errors.New("invalid position")

// ParsePosition reads a media position written as m:ss, m:ss.mmm, h:mm:ss
// or a Go duration such as 90s.
func ParsePosition(text string) (time.Duration, error) {
	text = strings.TrimSpace(text)
	if d, err := time.ParseDuration(text); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("%w: %q is negative", ErrBadPosition, text)
		}
		return d, nil
	}

	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadPosition, text)
	}
	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || secs >= 60 {
		return 0, fmt.Errorf("%w: %q", ErrBadPosition, text)
	}
	total := time.Duration(secs * float64(time.Second))
	unit := time.Minute
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadPosition, text)
		}
		total += time.Duration(n) * unit
		unit = time.Hour
	}
	return total.Round(time.Millisecond), nil
}
