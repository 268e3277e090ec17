package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	n := New()
	a := n.Subscribe()
	b := n.Subscribe()
	defer n.Unsubscribe(a)
	defer n.Unsubscribe(b)

	n.Broadcast(DatabaseRestored)

	select {
	case ev := <-a:
		assert.Equal(t, DatabaseRestored, ev.Reason)
	default:
		t.Fatal("listener a did not receive the event")
	}
	select {
	case ev := <-b:
		assert.Equal(t, DatabaseRestored, ev.Reason)
	default:
		t.Fatal("listener b did not receive the event")
	}
}

func TestBroadcastNonBlockingWhenFull(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// Two broadcasts against a buffer of one must not block.
	n.Broadcast(BackupChanged)
	n.Broadcast(BackupChanged)

	<-ch
	select {
	case <-ch:
		t.Fatal("second event should have been dropped")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	n.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after unsubscribe must not panic.
	n.Broadcast(DatabaseRestored)
}
