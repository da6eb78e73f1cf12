package slot

import (
	"context"
	"testing"
	"time"
)

func TestHub_WriteReachesOtherContexts(t *testing.T) {
	hub := NewHub()
	a := hub.Open("k")
	b := hub.Open("k")
	other := hub.Open("other")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	aChanges, _ := a.Watch(ctx)
	bChanges, _ := b.Watch(ctx)
	otherChanges, _ := other.Watch(ctx)

	if err := a.Write(ctx, []byte("one")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := a.Write(ctx, []byte("two")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	for _, want := range []string{"one", "two"} {
		change := waitChange(t, bChanges)
		if string(change.Value) != want {
			t.Fatalf("b saw %q, want %q", change.Value, want)
		}
	}
	assertNoChange(t, aChanges)
	assertNoChange(t, otherChanges)

	got, _ := b.Read(ctx)
	if string(got) != "two" {
		t.Fatalf("b.Read = %q, want %q", got, "two")
	}
}

func TestHub_ValuesAreCopied(t *testing.T) {
	hub := NewHub()
	s := hub.Open("")
	if s.Key() != DefaultKey {
		t.Fatalf("Key = %q, want %q", s.Key(), DefaultKey)
	}
	buf := []byte("abc")
	_ = s.Write(context.Background(), buf)
	buf[0] = 'z'
	got, _ := s.Read(context.Background())
	if string(got) != "abc" {
		t.Fatalf("Read = %q, want %q", got, "abc")
	}
}

func TestHub_DeleteNotifiesEveryone(t *testing.T) {
	hub := NewHub()
	a := hub.Open("k")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, _ := a.Watch(ctx)

	_ = a.Write(ctx, []byte("v"))
	hub.Delete("k")

	change := waitChange(t, changes)
	if !change.Deleted {
		t.Fatalf("change = %+v, want deletion", change)
	}
	got, _ := a.Read(ctx)
	if got != nil {
		t.Fatalf("Read after delete = %q, want nil", got)
	}
}

func TestHub_CancelledWatcherIsRemoved(t *testing.T) {
	hub := NewHub()
	a := hub.Open("k")
	b := hub.Open("k")

	ctx, cancel := context.WithCancel(context.Background())
	changes, _ := b.Watch(ctx)
	cancel()
	for range changes {
	}

	// Must not block or panic with nobody listening.
	if err := a.Write(context.Background(), []byte("v")); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestHub_CancelDuringWrites(t *testing.T) {
	hub := NewHub()
	a := hub.Open("k")
	b := hub.Open("k")

	ctx, cancel := context.WithCancel(context.Background())
	changes, _ := b.Watch(ctx)

	// More writes than the watcher buffers, with nobody reading, so the
	// writer is parked in a send when the watcher is cancelled.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = a.Write(context.Background(), []byte{byte(i)})
		}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer still blocked after the watcher was cancelled")
	}
	for range changes {
	}
}

func assertNoChange(t *testing.T, changes <-chan Change) {
	t.Helper()
	select {
	case change := <-changes:
		t.Fatalf("unexpected change %+v", change)
	case <-time.After(50 * time.Millisecond):
	}
}
