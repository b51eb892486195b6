package inbox

import (
	"context"
	"errors"
	"sync"

	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/network"
)

// ErrDisconnected is returned by the await calls once a connection's reader
// has stopped and no message from it remains at the head of the queue.
var ErrDisconnected = errors.New("connection closed")

// Entry is one received frame, tagged with the connection it came from.
type Entry struct {
	ConnID  string
	Payload string
}

// Inbox is the single FIFO queue every connection reader feeds. Consumers
// take from the head; waiting is done through a broadcast channel that is
// closed and replaced on every insertion or connection close.
type Inbox struct {
	mu      sync.Mutex
	entries []Entry
	closed  map[string]bool
	signal  chan struct{}
}

func New() *Inbox {
	return &Inbox{
		closed: make(map[string]bool),
		signal: make(chan struct{}),
	}
}

// Put appends a frame and wakes every waiter.
func (b *Inbox) Put(connID, payload string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{ConnID: connID, Payload: payload})
	b.wakeLocked()
}

// MarkClosed records that the connection's reader has stopped, waking
// waiters so they can observe the disconnect.
func (b *Inbox) MarkClosed(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed[connID] = true
	b.wakeLocked()
}

// Closed reports whether the connection's reader has stopped.
func (b *Inbox) Closed(connID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed[connID]
}

// TakeOldest pops the head entry, if any.
func (b *Inbox) TakeOldest() (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 {
		return Entry{}, false
	}
	head := b.entries[0]
	b.entries = b.entries[1:]
	return head, true
}

// TakeOldestFor pops the head entry only when it belongs to the given
// connection. A head from another connection stays in place.
func (b *Inbox) TakeOldestFor(connID string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 || b.entries[0].ConnID != connID {
		return Entry{}, false
	}
	head := b.entries[0]
	b.entries = b.entries[1:]
	return head, true
}

// Reset drops every queued entry. Connection close marks survive.
func (b *Inbox) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// AwaitAny blocks until any entry is available or the context ends.
func (b *Inbox) AwaitAny(ctx context.Context) (Entry, error) {
	for {
		b.mu.Lock()
		if len(b.entries) > 0 {
			head := b.entries[0]
			b.entries = b.entries[1:]
			b.mu.Unlock()
			return head, nil
		}
		sig := b.signal
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return Entry{}, ctx.Err()
		case <-sig:
		}
	}
}

// AwaitFrom blocks until the head entry belongs to the given connection,
// discarding out-of-turn heads from other connections so the queue keeps
// moving. Returns ErrDisconnected once the connection's reader has stopped
// and nothing from it is queued.
func (b *Inbox) AwaitFrom(ctx context.Context, connID string) (Entry, error) {
	for {
		b.mu.Lock()
		if len(b.entries) > 0 {
			head := b.entries[0]
			b.entries = b.entries[1:]
			b.mu.Unlock()
			if head.ConnID == connID {
				return head, nil
			}
			logger.Log.Warnw("discarded out-of-turn message", "connection", head.ConnID, "payload", head.Payload)
			continue
		}
		if b.closed[connID] {
			b.mu.Unlock()
			return Entry{}, ErrDisconnected
		}
		sig := b.signal
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return Entry{}, ctx.Err()
		case <-sig:
		}
	}
}

// StartReader spawns the reader goroutine for a connection: every decoded
// frame is queued, and the first read error marks the connection closed.
func (b *Inbox) StartReader(connID string, conn network.Connection, onFrame func(payload string)) {
	go func() {
		for {
			payload, err := conn.ReadFrame()
			if err != nil {
				logger.Log.Infow("connection reader stopped", "connection", connID, "error", err)
				b.MarkClosed(connID)
				return
			}
			if onFrame != nil {
				onFrame(payload)
			}
			b.Put(connID, payload)
		}
	}()
}

func (b *Inbox) wakeLocked() {
	close(b.signal)
	b.signal = make(chan struct{})
}
