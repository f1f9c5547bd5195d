package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
)

const CollectionEvents = "events"

// maxInValues is the Firestore limit on the "in" operator.
const maxInValues = 30

// EventRepository is the event store. Query may apply any subset of the
// pushdown predicates; callers re-apply all of them.
type EventRepository interface {
	Query(ctx context.Context, p filter.Pushdown) ([]domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Save(ctx context.Context, event *domain.Event) error
	BatchSave(ctx context.Context, events []*domain.Event) error
	Delete(ctx context.Context, id string) error
	DeleteBefore(ctx context.Context, before time.Time) (int, error)
}

type eventRepo struct {
	client *firestore.Client
}

func NewEventRepository(client *firestore.Client) EventRepository {
	return &eventRepo{client: client}
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(CollectionEvents).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	_, err := ref.Delete(ctx)
	return err
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	doc, err := r.client.Collection(CollectionEvents).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var event domain.Event
	if err := doc.DataTo(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Save(ctx context.Context, event *domain.Event) error {
	_, err := r.client.Collection(CollectionEvents).Doc(event.Id).Set(ctx, event)
	return err
}

func (r *eventRepo) BatchSave(ctx context.Context, events []*domain.Event) error {
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(events))
	for _, e := range events {
		job, err := bw.Set(r.client.Collection(CollectionEvents).Doc(e.Id), e)
		if err != nil {
			bw.End()
			return fmt.Errorf("queue %s: %w", e.Id, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("write %s: %w", events[i].Id, err)
		}
	}
	return nil
}

// Query pushes down the date bound and the energy levels. Cost is left to
// the caller since Firestore cannot order by date with a range on cost.
func (r *eventRepo) Query(ctx context.Context, p filter.Pushdown) ([]domain.Event, error) {
	q := r.client.Collection(CollectionEvents).Where("date", ">=", p.MinDate)
	if n := len(p.EnergyLevels); n > 0 && n <= maxInValues {
		q = q.Where("energy_level", "in", p.EnergyLevels)
	}
	q = q.OrderBy("date", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	events := []domain.Event{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var e domain.Event
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", doc.Ref.ID, err)
		}
		if e.Id == "" {
			e.Id = doc.Ref.ID
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *eventRepo) DeleteBefore(ctx context.Context, before time.Time) (int, error) {
	iter := r.client.Collection(CollectionEvents).Where("date", "<", before).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	defer bw.End()

	n := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return n, err
		}
		if _, err := bw.Delete(doc.Ref); err != nil {
			return n, fmt.Errorf("queue delete %s: %w", doc.Ref.ID, err)
		}
		n++
	}
	bw.Flush()
	return n, nil
}
