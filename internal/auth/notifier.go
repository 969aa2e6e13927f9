package auth

import (
	"sync"
	"time"
)

// EventType names a session change.
type EventType string

const (
	EventSignedIn      EventType = "signed_in"
	EventSignedOut     EventType = "signed_out"
	EventPasswordReset EventType = "password_reset"
)

// Event is published on every session change.
type Event struct {
	Type   EventType `json:"type"`
	UserID uint      `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	At     time.Time `json:"at"`
}

const subscriptionBuffer = 8

// Subscription receives events until Close is called.
type Subscription struct {
	C <-chan Event

	ch       chan Event
	userID   uint
	id       uint64
	notifier *Notifier
	once     sync.Once
}

// Close detaches the subscription and closes C. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.notifier.remove(s.id)
	})
}

// Notifier fans session events out to subscribers.
type Notifier struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*Subscription
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uint64]*Subscription)}
}

// Subscribe registers for events of userID, or of every user when userID is 0.
func (n *Notifier) Subscribe(userID uint) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	ch := make(chan Event, subscriptionBuffer)
	sub := &Subscription{C: ch, ch: ch, userID: userID, id: n.nextID, notifier: n}
	n.subs[sub.id] = sub
	return sub
}

// Publish delivers ev to matching subscribers. Slow subscribers drop events.
func (n *Notifier) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		if sub.userID != 0 && sub.userID != ev.UserID {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Len returns the number of live subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if sub, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(sub.ch)
	}
}
