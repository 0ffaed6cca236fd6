package playback

import "sync"

// Bus fans events out to every subscription. Publishing never blocks the
// caller's event loop.
type Bus struct {
	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

// NewBus returns a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe creates a new event subscription. Subscribing to a closed bus
// returns a subscription whose Done channel is already closed.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := newSubscription()
	if b.closed {
		sub.close()
		return sub
	}
	b.subs = append(b.subs, sub)
	return sub
}

// Close signals every subscriber to stop. Later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.close()
	}
	b.subs = nil
}

func (b *Bus) each(fn func(*Subscription)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		fn(sub)
	}
}

func (b *Bus) PublishBindings() {
	b.each(func(s *Subscription) { s.sendBindings() })
}

func (b *Bus) PublishSlot(e SlotChange) {
	b.each(func(s *Subscription) { s.sendSlot(e) })
}

func (b *Bus) PublishGroup(e GroupChange) {
	b.each(func(s *Subscription) { s.sendGroup(e) })
}

func (b *Bus) PublishLoopMode(e LoopModeChange) {
	b.each(func(s *Subscription) { s.sendLoopMode(e) })
}

func (b *Bus) PublishStatus(e Status) {
	b.each(func(s *Subscription) { s.sendStatus(e) })
}
