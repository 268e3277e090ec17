// Package notifier fans database lifecycle events out to the open
// browser sessions so they can reload a consistent view.
package notifier

import "sync"

// Reason says why subscribers should refresh.
type Reason string

const (
	// DatabaseRestored fires after a reset reloaded the canonical backup.
	DatabaseRestored Reason = "database-restored"
	// BackupChanged fires when the canonical backup changes on disk.
	BackupChanged Reason = "backup-changed"
)

// Event is one refresh notification.
type Event struct {
	Reason Reason
}

// Notifier broadcasts events to all subscribed listeners. Every event
// means the subscriber's current view may be stale.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives events as they happen.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast delivers an event to all listeners.
// Non-blocking: a listener with a full buffer refreshes on the pending
// event instead, which already forces a full reload.
func (n *Notifier) Broadcast(reason Reason) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	ev := Event{Reason: reason}
	for ch := range n.listeners {
		select {
		case ch <- ev:
		default:
		}
	}
}
