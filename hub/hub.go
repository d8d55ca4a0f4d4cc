package hub

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

const defaultBufferSize = 100

// Event is a fired store event as delivered to [Hub] subscribers.
type Event struct {
	// ID uniquely identifies this delivery.
	ID string `json:"id"`

	// Name is the event name, e.g. "draw.deleted".
	Name string `json:"name"`

	// Payload is the value passed to Fire, shared by all subscribers.
	Payload any `json:"payload"`

	// FiredAt is when Fire was called.
	FiredAt time.Time `json:"fired_at"`
}

// Hub is a publish-subscribe event sink.
//
// Every call to [Hub.Fire] is wrapped in an [Event] and offered to all
// current subscribers. Delivery never blocks: if a subscriber's buffer is
// full, the event is dropped for that subscriber and counted in
// [Hub.Dropped].
type Hub struct {
	subscribers *xsync.MapOf[<-chan Event, *subscriber]
	bufferSize  int
	now         func() time.Time
	dropped     atomic.Int64
}

type subscriber struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

// hubConfig holds mutable state during Hub construction.
type hubConfig struct {
	bufferSize int
	now        func() time.Time
}

// Option configures a [Hub] during construction.
type Option func(*hubConfig) error

// WithBufferSize sets the channel buffer of each subscription.
// Defaults to 100.
//
// Returns an error if n is zero or negative.
func WithBufferSize(n int) Option {
	return func(cfg *hubConfig) error {
		if n <= 0 {
			return errors.New("buffer size must be positive")
		}
		cfg.bufferSize = n
		return nil
	}
}

// WithClock sets the function used to stamp [Event.FiredAt].
//
// Returns an error if now is nil.
func WithClock(now func() time.Time) Option {
	return func(cfg *hubConfig) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.now = now
		return nil
	}
}

// New creates a [Hub] with no subscribers.
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Hub, error) {
	cfg := &hubConfig{
		bufferSize: defaultBufferSize,
		now:        time.Now,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return &Hub{
		subscribers: xsync.NewMapOf[<-chan Event, *subscriber](),
		bufferSize:  cfg.bufferSize,
		now:         cfg.now,
	}, nil
}

// Fire publishes an event to all subscribers.
func (h *Hub) Fire(name string, payload any) {
	ev := Event{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: payload,
		FiredAt: h.now(),
	}

	h.subscribers.Range(func(_ <-chan Event, sub *subscriber) bool {
		if !sub.send(ev) {
			h.dropped.Add(1)
		}
		return true
	})
}

// Subscribe creates a new subscription and returns its channel.
//
// Caller must call [Hub.Unsubscribe] when done to prevent resource leaks.
func (h *Hub) Subscribe() <-chan Event {
	ch := make(chan Event, h.bufferSize)
	h.subscribers.Store(ch, &subscriber{ch: ch})
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (h *Hub) Unsubscribe(ch <-chan Event) {
	if sub, ok := h.subscribers.LoadAndDelete(ch); ok {
		sub.close()
	}
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	return h.subscribers.Size()
}

// Dropped returns how many deliveries were dropped because a subscriber's
// buffer was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// send offers ev without blocking. Reports false if the buffer was full.
// A closed subscriber silently ignores the event.
func (s *subscriber) send(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return true
	}
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
