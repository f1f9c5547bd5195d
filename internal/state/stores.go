package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"smorg/backend/internal/domain"
)

func loadJSON(ctx context.Context, kv KV, key string, out interface{}) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrMissing) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, kv KV, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// LocationStore persists the resolved UserLocation of each session.
type LocationStore struct {
	kv KV
}

func NewLocationStore(kv KV) *LocationStore {
	return &LocationStore{kv: kv}
}

func (s *LocationStore) Load(ctx context.Context, session string) (*domain.UserLocation, error) {
	var loc domain.UserLocation
	ok, err := loadJSON(ctx, s.kv, Key(NamespaceLocation, session), &loc)
	if err != nil || !ok {
		return nil, err
	}
	return &loc, nil
}

func (s *LocationStore) Save(ctx context.Context, session string, loc domain.UserLocation) error {
	return saveJSON(ctx, s.kv, Key(NamespaceLocation, session), loc)
}

func (s *LocationStore) Clear(ctx context.Context, session string) error {
	return s.kv.Delete(ctx, Key(NamespaceLocation, session))
}

// ViewPreference persists the grid/calendar choice. Grid is the default.
type ViewPreference struct {
	kv KV
}

func NewViewPreference(kv KV) *ViewPreference {
	return &ViewPreference{kv: kv}
}

func (p *ViewPreference) Get(ctx context.Context, session string) (domain.ViewMode, error) {
	var mode domain.ViewMode
	ok, err := loadJSON(ctx, p.kv, Key(NamespaceViewMode, session), &mode)
	if err != nil {
		return domain.ViewGrid, err
	}
	if !ok {
		return domain.ViewGrid, nil
	}
	if _, err := domain.ParseViewMode(string(mode)); err != nil {
		return domain.ViewGrid, nil
	}
	return mode, nil
}

func (p *ViewPreference) Set(ctx context.Context, session string, mode domain.ViewMode) error {
	if _, err := domain.ParseViewMode(string(mode)); err != nil {
		return err
	}
	return saveJSON(ctx, p.kv, Key(NamespaceViewMode, session), mode)
}

// DismissedSet persists the ids a session has hidden.
type DismissedSet struct {
	kv KV
	mu sync.Mutex
}

func NewDismissedSet(kv KV) *DismissedSet {
	return &DismissedSet{kv: kv}
}

func (d *DismissedSet) List(ctx context.Context, session string) ([]string, error) {
	ids := []string{}
	if _, err := loadJSON(ctx, d.kv, Key(NamespaceDismissed, session), &ids); err != nil {
		return []string{}, err
	}
	return ids, nil
}

// Dismiss adds id and returns the new set.
func (d *DismissedSet) Dismiss(ctx context.Context, session, id string) ([]string, error) {
	return d.mutate(ctx, session, func(ids []string) []string {
		if slices.Contains(ids, id) {
			return ids
		}
		return append(ids, id)
	})
}

// Undo removes id and returns the new set.
func (d *DismissedSet) Undo(ctx context.Context, session, id string) ([]string, error) {
	return d.mutate(ctx, session, func(ids []string) []string {
		return slices.DeleteFunc(ids, func(v string) bool { return v == id })
	})
}

func (d *DismissedSet) Clear(ctx context.Context, session string) error {
	_, err := d.mutate(ctx, session, func([]string) []string { return []string{} })
	return err
}

func (d *DismissedSet) mutate(ctx context.Context, session string, fn func([]string) []string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids, err := d.List(ctx, session)
	if err != nil {
		return nil, err
	}
	ids = fn(ids)
	if err := saveJSON(ctx, d.kv, Key(NamespaceDismissed, session), ids); err != nil {
		return nil, err
	}
	return ids, nil
}
