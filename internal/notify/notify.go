// Package notify keeps the list of user-visible notifications. A Center is
// created once by the application and passed to whoever reports outcomes.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a notification stays visible unless told otherwise.
const DefaultDuration = 4 * time.Second

// Kind classifies a notification.
type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

// Notification is one message. A zero Duration keeps it until dismissed.
type Notification struct {
	ID       string
	Kind     Kind
	Message  string
	Duration time.Duration
	Created  time.Time
}

// Expired reports whether the notification should be hidden at now.
func (n Notification) Expired(now time.Time) bool {
	return n.Duration > 0 && !now.Before(n.Created.Add(n.Duration))
}

// Listener receives the active notifications after every change.
type Listener func([]Notification)

// Center stores active notifications and fans changes out to listeners.
type Center struct {
	mu        sync.Mutex
	items     []Notification
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
	logger    *log.Logger
}

// NewCenter returns an empty center. A nil logger discards listener failures.
func NewCenter(logger *log.Logger) *Center {
	return &Center{
		listeners: make(map[int]Listener),
		now:       time.Now,
		logger:    logger,
	}
}

// Subscribe registers fn and returns a function that removes it.
func (c *Center) Subscribe(fn Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Show adds a notification and returns its id.
func (c *Center) Show(kind Kind, message string, d time.Duration) string {
	n := Notification{
		ID:       uuid.NewString(),
		Kind:     kind,
		Message:  message,
		Duration: d,
		Created:  c.now(),
	}
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
	c.publish()
	return n.ID
}

func (c *Center) Info(message string) string    { return c.Show(Info, message, DefaultDuration) }
func (c *Center) Success(message string) string { return c.Show(Success, message, DefaultDuration) }
func (c *Center) Warning(message string) string { return c.Show(Warning, message, DefaultDuration) }
func (c *Center) Error(message string) string   { return c.Show(Error, message, DefaultDuration) }

// Dismiss removes one notification. Unknown ids are ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, n := range c.items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	changed := len(kept) != len(c.items)
	c.items = kept
	c.mu.Unlock()
	if changed {
		c.publish()
	}
}

// DismissAll clears every notification.
func (c *Center) DismissAll() {
	c.mu.Lock()
	changed := len(c.items) > 0
	c.items = nil
	c.mu.Unlock()
	if changed {
		c.publish()
	}
}

// Prune drops expired notifications and reports whether any were removed.
func (c *Center) Prune(now time.Time) bool {
	c.mu.Lock()
	kept := c.items[:0]
	for _, n := range c.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	changed := len(kept) != len(c.items)
	c.items = kept
	c.mu.Unlock()
	if changed {
		c.publish()
	}
	return changed
}

// Active returns a copy of the current notifications, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.items...)
}

func (c *Center) publish() {
	c.mu.Lock()
	snapshot := append([]Notification(nil), c.items...)
	listeners := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()
	for _, fn := range listeners {
		c.call(fn, snapshot)
	}
}

func (c *Center) call(fn Listener, snapshot []Notification) {
	defer func() {
		if r := recover(); r != nil && c.logger != nil {
			c.logger.Printf("notification listener panicked: %v", r)
		}
	}()
	fn(snapshot)
}
