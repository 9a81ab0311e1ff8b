// Package stream implements the live vote-results hub.
//
// The hub replaces a poll-and-diff loop with push-based distribution: the
// vote service publishes the fresh tally synchronously after every
// successful cast, and the hub fans the serialized snapshot out to every
// connected subscriber. No polling and no redundant recomputation: a snapshot
// is produced exactly when the data changes.
//
// Change suppression still applies at the hub: a published tally whose
// serialized form is byte-for-byte identical to the last broadcast is
// dropped, so subscribers never see two consecutive identical snapshots.
//
// Subscriptions are per-connection and stateless. A new subscriber
// immediately receives the current snapshot once, then only broadcasts made
// after it connected, never a backlog. Cancellation is explicit: each
// subscriber's channel is closed when its connection context is cancelled.
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind than this misses intermediate snapshots; every later
// snapshot supersedes earlier ones, so only the lag is lost, not the state.
const subscriberBuffer = 8

// Hub broadcasts serialized tally snapshots to subscribers.
type Hub struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[chan []byte]struct{}
	last []byte // serialized form of the last broadcast snapshot
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		subs:   make(map[chan []byte]struct{}),
	}
}

// Publish serializes the tally and broadcasts it to every subscriber,
// unless it is identical to the previous broadcast. json.Marshal sorts map
// keys, so equal tallies always serialize to equal bytes.
func (h *Hub) Publish(tally map[string]int) {
	payload, err := json.Marshal(tally)
	if err != nil {
		// Cannot happen for map[string]int; log and move on.
		h.logger.Error("failed to serialize tally", slog.String("error", err.Error()))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if bytes.Equal(payload, h.last) {
		return
	}
	h.last = payload

	for ch := range h.subs {
		select {
		case ch <- payload:
		default:
			// Subscriber is not keeping up; skip this frame for it.
		}
	}
}

// Subscribe registers a subscriber bound to ctx. The returned channel first
// yields the current snapshot (the last broadcast, or current serialized as
// the new baseline when nothing has been broadcast yet), then every
// subsequent change. The channel is closed when ctx is cancelled.
func (h *Hub) Subscribe(ctx context.Context, current map[string]int) <-chan []byte {
	ch := make(chan []byte, subscriberBuffer)

	h.mu.Lock()
	if h.last == nil {
		if payload, err := json.Marshal(current); err == nil {
			h.last = payload
		}
	}
	ch <- h.last // buffered, cannot block: the channel is fresh
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch) // safe: Publish only sends while holding the mutex
		h.mu.Unlock()
	}()

	return ch
}

// Subscribers reports the number of connected subscribers. Used in logs.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
