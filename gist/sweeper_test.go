package gist

import (
	"context"
	"testing"
	"time"
)

func TestSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := NewMemoryStore()

	for _, g := range []*Gist{
		{ID: "old", Ephemeral: true, CreatedAt: now.Add(-11 * time.Minute)},
		{ID: "new", Ephemeral: true, CreatedAt: now.Add(-9 * time.Minute)},
		{ID: "saved", Ephemeral: false, CreatedAt: now.Add(-time.Hour)},
	} {
		if err := store.Put(ctx, g); err != nil {
			t.Fatal(err)
		}
	}

	s := &Sweeper{
		Store:     store,
		Retention: 10 * time.Minute,
		Now:       func() time.Time { return now },
	}
	n, err := s.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if _, err := store.Get(ctx, "old"); err == nil {
		t.Error("expired gist survived")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Put(context.Background(), &Gist{ID: "x", Ephemeral: true, CreatedAt: time.Now().Add(-time.Hour)}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Sweeper{Store: store, Retention: time.Minute, Interval: 5 * time.Millisecond}

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for store.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper never removed the expired gist")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil on cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
