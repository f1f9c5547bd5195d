package state_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/state"
)

// failingKV returns err from every call.
type failingKV struct{ err error }

func (f failingKV) Get(ctx context.Context, key string) ([]byte, error)     { return nil, f.err }
func (f failingKV) Set(ctx context.Context, key string, value []byte) error { return f.err }
func (f failingKV) Delete(ctx context.Context, key string) error            { return f.err }

func TestDismissedSet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	d := state.NewDismissedSet(state.NewMemoryKV())

	if ids, _ := d.List(ctx, "s1"); len(ids) != 0 {
		t.Fatalf("Expected empty set, got %v", ids)
	}

	_, _ = d.Dismiss(ctx, "s1", "a")
	ids, err := d.Dismiss(ctx, "s1", "b")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", ids)
	}

	if ids, _ := d.Dismiss(ctx, "s1", "a"); len(ids) != 2 {
		t.Errorf("Expected dismissing twice to be a no-op, got %v", ids)
	}

	ids, _ = d.Undo(ctx, "s1", "a")
	if !reflect.DeepEqual(ids, []string{"b"}) {
		t.Errorf("Expected undo to remove a, got %v", ids)
	}
	if ids, _ := d.List(ctx, "s1"); slices.Contains(ids, "a") {
		t.Error("Expected a not to be dismissed after undo")
	}

	if err := d.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if ids, _ := d.List(ctx, "s1"); len(ids) != 0 {
		t.Errorf("Expected empty set after clear, got %v", ids)
	}
}

func TestDismissedSet_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	d := state.NewDismissedSet(state.NewMemoryKV())

	_, _ = d.Dismiss(ctx, "s1", "a")
	if ids, _ := d.List(ctx, "s2"); len(ids) != 0 {
		t.Errorf("Expected other session untouched, got %v", ids)
	}
}

func TestDismissedSet_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("backend down")
	d := state.NewDismissedSet(failingKV{err: boom})
	if _, err := d.Dismiss(context.Background(), "s1", "a"); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped backend error, got %v", err)
	}
}

func TestViewPreference(t *testing.T) {
	ctx := context.Background()
	p := state.NewViewPreference(state.NewMemoryKV())

	if mode, _ := p.Get(ctx, "s1"); mode != domain.ViewGrid {
		t.Errorf("Expected grid default, got %s", mode)
	}
	if err := p.Set(ctx, "s1", domain.ViewCalendar); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if mode, _ := p.Get(ctx, "s1"); mode != domain.ViewCalendar {
		t.Errorf("Expected calendar, got %s", mode)
	}
	if err := p.Set(ctx, "s1", domain.ViewMode("list")); !domain.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestLocationStore(t *testing.T) {
	ctx := context.Background()
	kv := state.NewMemoryKV()
	s := state.NewLocationStore(kv)

	if loc, err := s.Load(ctx, "s1"); loc != nil || err != nil {
		t.Fatalf("Expected nothing stored, got %+v (%v)", loc, err)
	}

	want := domain.UserLocation{City: "Seattle", State: "WA", Latitude: 47.6, Longitude: -122.3, Status: domain.StatusIPFallback, Message: "approx"}
	if err := s.Save(ctx, "s1", want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if raw, err := kv.Get(ctx, state.Key(state.NamespaceLocation, "s1")); err != nil || len(raw) == 0 {
		t.Errorf("Expected value under namespaced key, got %q (%v)", raw, err)
	}

	got, _ := s.Load(ctx, "s1")
	if got == nil || *got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	_ = s.Clear(ctx, "s1")
	if loc, _ := s.Load(ctx, "s1"); loc != nil {
		t.Errorf("Expected cleared location, got %+v", loc)
	}
}

func TestSQLiteKV(t *testing.T) {
	ctx := context.Background()
	kv, err := state.OpenSQLite(ctx, filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer kv.Close()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, state.ErrMissing) {
		t.Errorf("Expected ErrMissing, got %v", err)
	}
	if err := kv.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if v, _ := kv.Get(ctx, "k"); string(v) != "v2" {
		t.Errorf("Expected v2, got %q", v)
	}

	d := state.NewDismissedSet(kv)
	_, _ = d.Dismiss(ctx, "s1", "evt")
	if ids, _ := d.List(ctx, "s1"); !slices.Contains(ids, "evt") {
		t.Error("Expected dismissal to persist in sqlite")
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, state.ErrMissing) {
		t.Errorf("Expected ErrMissing after delete, got %v", err)
	}
}
