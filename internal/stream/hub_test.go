package stream

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func recvSnapshot(t *testing.T, ch <-chan []byte) map[string]int {
	t.Helper()
	select {
	case payload, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		var tally map[string]int
		if err := json.Unmarshal(payload, &tally); err != nil {
			t.Fatalf("invalid snapshot payload: %v", err)
		}
		return tally
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func assertNoSnapshot(t *testing.T, ch <-chan []byte) {
	t.Helper()
	select {
	case payload := <-ch:
		t.Fatalf("unexpected snapshot: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeReceivesCurrentSnapshot(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, map[string]int{"r1": 3})

	got := recvSnapshot(t, ch)
	if want := map[string]int{"r1": 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("initial snapshot = %v, want %v", got, want)
	}
}

func TestPublishFansOutChanges(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := h.Subscribe(ctx, map[string]int{})
	b := h.Subscribe(ctx, map[string]int{})
	recvSnapshot(t, a)
	recvSnapshot(t, b)

	h.Publish(map[string]int{"r1": 1})

	want := map[string]int{"r1": 1}
	if got := recvSnapshot(t, a); !reflect.DeepEqual(got, want) {
		t.Errorf("subscriber a got %v, want %v", got, want)
	}
	if got := recvSnapshot(t, b); !reflect.DeepEqual(got, want) {
		t.Errorf("subscriber b got %v, want %v", got, want)
	}
}

func TestPublishSuppressesIdenticalSnapshots(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := h.Subscribe(ctx, map[string]int{})
	recvSnapshot(t, ch)

	h.Publish(map[string]int{"r1": 2, "r2": 1})
	recvSnapshot(t, ch)

	h.Publish(map[string]int{"r1": 2, "r2": 1})
	assertNoSnapshot(t, ch)

	h.Publish(map[string]int{"r1": 2, "r2": 2})
	if got := recvSnapshot(t, ch); got["r2"] != 2 {
		t.Errorf("expected changed snapshot, got %v", got)
	}
}

func TestSubscriberOnlySeesBroadcastsAfterConnect(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.Publish(map[string]int{"r1": 1})
	h.Publish(map[string]int{"r1": 2})

	ch := h.Subscribe(ctx, map[string]int{"r1": 2})

	// Only the current state arrives, not the earlier broadcasts.
	if got := recvSnapshot(t, ch); got["r1"] != 2 {
		t.Errorf("initial snapshot = %v, want r1=2", got)
	}
	assertNoSnapshot(t, ch)
}

func TestCancelClosesSubscriberChannel(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())

	ch := h.Subscribe(ctx, map[string]int{})
	recvSnapshot(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel close, got a value")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}

	// Publishing after unsubscribe must not panic.
	h.Publish(map[string]int{"r1": 9})
}
