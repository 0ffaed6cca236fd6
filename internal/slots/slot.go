// Package slots defines playback bookmarks, the fixed-size group that holds
// them and the per-video group file format.
package slots

import (
	"image"
	"time"
)

const (
	// SlotCount is the number of bookmarks in a group.
	SlotCount = 12
	// GroupCount is the number of independently persisted groups per video.
	GroupCount = 4

	MinSpeed     = 0.1
	MaxSpeed     = 5.0
	DefaultSpeed = 1.0
)

// PlaybackState is one bookmark slot. A slot with Valid false is empty
// whatever its other fields hold. When HasEnd is true, End > Start.
type PlaybackState struct {
	Start   time.Duration
	End     time.Duration
	Speed   float64
	Valid   bool
	HasEnd  bool
	Preview image.Image
}

// Empty returns the default unoccupied slot.
func Empty() PlaybackState {
	return PlaybackState{Speed: DefaultSpeed}
}

// IsLoop reports whether the slot defines a loop range.
func (s PlaybackState) IsLoop() bool {
	return s.Valid && s.HasEnd
}

// ClampSpeed bounds speed to [MinSpeed, MaxSpeed]. Non-positive values map
// to DefaultSpeed.
func ClampSpeed(speed float64) float64 {
	if speed <= 0 {
		return DefaultSpeed
	}
	return min(max(speed, MinSpeed), MaxSpeed)
}

// ValidIndex reports whether i addresses a slot.
func ValidIndex(i int) bool {
	return i >= 0 && i < SlotCount
}

// ValidGroup reports whether g addresses a group.
func ValidGroup(g int) bool {
	return g >= 0 && g < GroupCount
}

// Group is the fixed array of slots, indexed like the slot key row
// 1 2 3 4 5 6 7 8 9 0 - =.
type Group [SlotCount]PlaybackState

// NewGroup returns a group of empty slots.
func NewGroup() Group {
	var g Group
	g.Clear()
	return g
}

// Clear empties every slot.
func (g *Group) Clear() {
	for i := range g {
		g[i] = Empty()
	}
}

// FirstLoop returns the lowest slot index holding a loop range, or -1.
func (g *Group) FirstLoop() int {
	for i := range g {
		if g[i].IsLoop() {
			return i
		}
	}
	return -1
}

// HasLoop reports whether any slot holds a loop range.
func (g *Group) HasLoop() bool {
	return g.FirstLoop() >= 0
}

// NextLoop scans circularly from after+1 for a loop slot, covering at most
// one full revolution. after may be -1 to start from slot 0. It returns -1
// when no slot holds a loop range.
func (g *Group) NextLoop(after int) int {
	for step := 1; step <= SlotCount; step++ {
		i := (after + step) % SlotCount
		if i < 0 {
			i += SlotCount
		}
		if g[i].IsLoop() {
			return i
		}
	}
	return -1
}

// Occupied returns how many slots are valid.
func (g *Group) Occupied() int {
	n := 0
	for i := range g {
		if g[i].Valid {
			n++
		}
	}
	return n
}
