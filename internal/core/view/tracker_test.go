package view

import (
	"context"
	"errors"
	"testing"

	"github.com/safecall/crm-console/internal/core/domain"
)

func TestTracker_CommitStoresSnapshot(t *testing.T) {
	tr := NewTracker[int]()

	load := tr.Begin(context.Background(), "dashboard")
	defer load.Release()

	if err := load.Commit(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := tr.Last("dashboard")
	if !ok || got != 7 {
		t.Fatalf("expected snapshot 7, got %v (ok=%v)", got, ok)
	}
}

func TestTracker_SupersededLoadIsDiscarded(t *testing.T) {
	tr := NewTracker[string]()

	first := tr.Begin(context.Background(), "tickets")
	second := tr.Begin(context.Background(), "tickets")
	defer first.Release()
	defer second.Release()

	if first.Context().Err() == nil {
		t.Fatalf("first load should be cancelled once superseded")
	}
	if err := second.Commit("new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := first.Commit("old"); !errors.Is(err, domain.ErrStaleView) {
		t.Fatalf("expected ErrStaleView, got %v", err)
	}
	if got, _ := tr.Last("tickets"); got != "new" {
		t.Fatalf("stale result overwrote snapshot: %q", got)
	}
}

func TestTracker_AbandonedLoadIsDiscarded(t *testing.T) {
	tr := NewTracker[int]()
	parent, cancel := context.WithCancel(context.Background())

	load := tr.Begin(parent, "calls")
	defer load.Release()
	cancel()

	if err := load.Commit(1); !errors.Is(err, domain.ErrStaleView) {
		t.Fatalf("expected ErrStaleView after navigating away, got %v", err)
	}
	if _, ok := tr.Last("calls"); ok {
		t.Fatalf("no snapshot should be stored")
	}
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tr := NewTracker[int]()
	a := tr.Begin(context.Background(), "a")
	b := tr.Begin(context.Background(), "b")
	defer a.Release()
	defer b.Release()

	if a.Context().Err() != nil {
		t.Fatalf("loading another view must not cancel this one")
	}
	if err := a.Commit(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTracker_Forget(t *testing.T) {
	tr := NewTracker[int]()
	load := tr.Begin(context.Background(), "k")
	_ = load.Commit(3)
	load.Release()

	tr.Forget("k")
	if _, ok := tr.Last("k"); ok {
		t.Fatalf("expected snapshot to be dropped")
	}
}

func TestSection_Resolve(t *testing.T) {
	boom := errors.New("boom")

	first := Resolve(Section[int]{}, 0, boom)
	if first.Loaded || first.Stale || first.Error != "boom" {
		t.Fatalf("first-load failure should be an error state: %+v", first)
	}

	ok := Resolve(Section[int]{}, 5, nil)
	if !ok.Loaded || ok.Data != 5 || ok.Error != "" {
		t.Fatalf("unexpected fresh section: %+v", ok)
	}

	kept := Resolve(ok, 0, boom)
	if !kept.Loaded || !kept.Stale || kept.Data != 5 || kept.Error != "boom" {
		t.Fatalf("failed refresh should keep previous data: %+v", kept)
	}
}
