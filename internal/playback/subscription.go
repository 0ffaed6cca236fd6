package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	BindingsChanged <-chan BindingsChanged
	SlotChanged     <-chan SlotChange
	GroupChanged    <-chan GroupChange
	LoopModeChanged <-chan LoopModeChange
	Status          <-chan Status
	Done            <-chan struct{}

	// Internal write channels
	bindingsCh chan BindingsChanged
	slotCh     chan SlotChange
	groupCh    chan GroupChange
	loopCh     chan LoopModeChange
	statusCh   chan Status
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		bindingsCh: make(chan BindingsChanged, eventBufferSize),
		slotCh:     make(chan SlotChange, eventBufferSize),
		groupCh:    make(chan GroupChange, eventBufferSize),
		loopCh:     make(chan LoopModeChange, eventBufferSize),
		statusCh:   make(chan Status, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.BindingsChanged = s.bindingsCh
	s.SlotChanged = s.slotCh
	s.GroupChanged = s.groupCh
	s.LoopModeChanged = s.loopCh
	s.Status = s.statusCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// Events are sent non-blocking: a full buffer drops the event.

func (s *Subscription) sendBindings() {
	select {
	case s.bindingsCh <- BindingsChanged{}:
	default:
	}
}

func (s *Subscription) sendSlot(e SlotChange) {
	select {
	case s.slotCh <- e:
	default:
	}
}

func (s *Subscription) sendGroup(e GroupChange) {
	select {
	case s.groupCh <- e:
	default:
	}
}

func (s *Subscription) sendLoopMode(e LoopModeChange) {
	select {
	case s.loopCh <- e:
	default:
	}
}

func (s *Subscription) sendStatus(e Status) {
	select {
	case s.statusCh <- e:
	default:
	}
}
