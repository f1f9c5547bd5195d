package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
	"smorg/backend/internal/repository"
)

// withFirestore runs testFunc against the emulator and wipes the events
// collection before and after.
func withFirestore(t *testing.T, testFunc func(t *testing.T, client *firestore.Client)) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("Skipping integration test: FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "local-project-id")
	if err != nil {
		t.Fatalf("Failed to create firestore client: %v", err)
	}
	cleanupFirestore(t, client)
	t.Cleanup(func() {
		cleanupFirestore(t, client)
		client.Close()
	})

	testFunc(t, client)
}

func cleanupFirestore(t *testing.T, client *firestore.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	iter := client.Collection(repository.CollectionEvents).Documents(ctx)
	defer iter.Stop()

	bw := client.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			t.Fatalf("Failed to iterate events: %v", err)
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			t.Fatalf("Failed to queue delete: %v", err)
		}
	}
	bw.End()
}

func intPtr(v int) *int { return &v }

func seedEvent(id string, start time.Time, cost float64, energy *int) *domain.Event {
	return &domain.Event{
		Id:          id,
		Title:       "Event " + id,
		Date:        start,
		City:        "Seattle",
		State:       "WA",
		Latitude:    47.6,
		Longitude:   -122.3,
		Cost:        cost,
		EnergyLevel: energy,
		EventTypes:  []string{"Music"},
		Vibes:       []string{"chill"},
		CreatedAt:   time.Now().UTC(),
	}
}

func TestEventRepository_QueryPushdown(t *testing.T) {
	withFirestore(t, func(t *testing.T, client *firestore.Client) {
		repo := repository.NewEventRepository(client)
		ctx := context.Background()
		now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

		// 10 future events with energy 2, 10 future with energy 4, 10 past.
		var events []*domain.Event
		for i := 0; i < 10; i++ {
			events = append(events,
				seedEvent(fmt.Sprintf("low_%d", i), now.Add(time.Duration(i+1)*time.Hour), 0, intPtr(2)),
				seedEvent(fmt.Sprintf("high_%d", i), now.Add(time.Duration(i+1)*time.Hour), 20, intPtr(4)),
				seedEvent(fmt.Sprintf("past_%d", i), now.Add(-time.Duration(i+1)*time.Hour), 0, intPtr(2)),
			)
		}
		if err := repo.BatchSave(ctx, events); err != nil {
			t.Fatalf("Batch seed failed: %v", err)
		}

		all, err := repo.Query(ctx, filter.Pushdown{MinDate: now})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(all) != 20 {
			t.Errorf("Expected 20 future events, got %d", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i].Date.Before(all[i-1].Date) {
				t.Fatalf("Expected date order, got %v before %v", all[i-1].Date, all[i].Date)
			}
		}

		low, err := repo.Query(ctx, filter.Pushdown{MinDate: now, EnergyLevels: []int{2}})
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		if len(low) != 10 {
			t.Errorf("Expected 10 low energy events, got %d", len(low))
		}
	})
}

func TestEventRepository_CRUDAndPrune(t *testing.T) {
	withFirestore(t, func(t *testing.T, client *firestore.Client) {
		repo := repository.NewEventRepository(client)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Millisecond)

		if err := repo.Save(ctx, seedEvent("keep", now.Add(time.Hour), 5, nil)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.Save(ctx, seedEvent("old", now.Add(-48*time.Hour), 5, nil)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := repo.GetByID(ctx, "keep")
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.EnergyLevel != nil || !got.Date.Equal(now.Add(time.Hour)) {
			t.Errorf("Unexpected round trip %+v", got)
		}

		if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}

		n, err := repo.DeleteBefore(ctx, now.Add(-24*time.Hour))
		if err != nil || n != 1 {
			t.Errorf("Expected 1 pruned, got %d (%v)", n, err)
		}
		if _, err := repo.GetByID(ctx, "old"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Expected pruned event gone, got %v", err)
		}

		if err := repo.Delete(ctx, "keep"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := repo.Delete(ctx, "keep"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
		}
	})
}
