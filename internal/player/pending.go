package player

import "strconv"

// Pending is an operation held back until the user answers a yes/no
// question. Accept runs it at most once; dropping it cancels it.
type Pending struct {
	Title   string
	Message string
	run     func()
}

// Accept runs the held operation. Calling it again, or on a nil Pending,
// does nothing.
func (c *Pending) Accept() {
	if c == nil || c.run == nil {
		return
	}
	run := c.run
	c.run = nil
	run()
}

// GuardDirty runs fn at once when the active group has no unsaved edits.
// Otherwise fn is returned as a Pending asking whether to discard them.
func (p *Player) GuardDirty(what string, fn func()) *Pending {
	if !p.store.Dirty() {
		fn()
		return nil
	}
	return &Pending{
		Title:   "Unsaved states",
		Message: "Group " + strconv.Itoa(p.store.ActiveGroup()+1) + " has unsaved changes. " + what + " anyway?",
		run:     fn,
	}
}

func confirm(title, message string, fn func()) *Pending {
	return &Pending{Title: title, Message: message, run: fn}
}
