package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/filter"
)

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return pool, nil
}

const eventColumns = `id, title, COALESCE(description, ''), date, end_date,
	COALESCE(venue_name, ''), COALESCE(address, ''), city, state, latitude, longitude,
	cost, COALESCE(cost_display, ''), COALESCE(image_url, ''), COALESCE(source_url, ''),
	energy_level, COALESCE(event_types, '{}'), COALESCE(vibes, '{}'), created_at`

type pgEventRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository reads and writes the events table. Every
// pushdown predicate is applied in SQL.
func NewPostgresEventRepository(pool *pgxpool.Pool) EventRepository {
	return &pgEventRepo{pool: pool}
}

func (r *pgEventRepo) Query(ctx context.Context, p filter.Pushdown) ([]domain.Event, error) {
	where := []string{"date >= $1"}
	args := []interface{}{p.MinDate}
	if p.PriceMin != nil {
		args = append(args, *p.PriceMin)
		where = append(where, fmt.Sprintf("cost >= $%d", len(args)))
	}
	if p.PriceMax != nil {
		args = append(args, *p.PriceMax)
		where = append(where, fmt.Sprintf("cost <= $%d", len(args)))
	}
	if len(p.EnergyLevels) > 0 {
		args = append(args, p.EnergyLevels)
		where = append(where, fmt.Sprintf("energy_level = ANY($%d)", len(args)))
	}

	sql := `SELECT ` + eventColumns + ` FROM events WHERE ` + strings.Join(where, " AND ") + ` ORDER BY date ASC`
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *pgEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

const upsertEvent = `
	INSERT INTO events (id, title, description, date, end_date, venue_name, address,
		city, state, latitude, longitude, cost, cost_display, image_url, source_url,
		energy_level, event_types, vibes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title, description = EXCLUDED.description, date = EXCLUDED.date,
		end_date = EXCLUDED.end_date, venue_name = EXCLUDED.venue_name, address = EXCLUDED.address,
		city = EXCLUDED.city, state = EXCLUDED.state, latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude, cost = EXCLUDED.cost, cost_display = EXCLUDED.cost_display,
		image_url = EXCLUDED.image_url, source_url = EXCLUDED.source_url,
		energy_level = EXCLUDED.energy_level, event_types = EXCLUDED.event_types,
		vibes = EXCLUDED.vibes`

func upsertArgs(e *domain.Event) []interface{} {
	return []interface{}{
		e.Id, e.Title, e.Description, e.Date, e.EndDate, e.VenueName, e.Address,
		e.City, e.State, e.Latitude, e.Longitude, e.Cost, e.CostDisplay, e.ImageURL, e.SourceURL,
		e.EnergyLevel, e.EventTypes, e.Vibes, e.CreatedAt,
	}
}

func (r *pgEventRepo) Save(ctx context.Context, event *domain.Event) error {
	if _, err := r.pool.Exec(ctx, upsertEvent, upsertArgs(event)...); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (r *pgEventRepo) BatchSave(ctx context.Context, events []*domain.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(upsertEvent, upsertArgs(e)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("batch save: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *pgEventRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *pgEventRepo) DeleteBefore(ctx context.Context, before time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE date < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.Id, &e.Title, &e.Description, &e.Date, &e.EndDate,
		&e.VenueName, &e.Address, &e.City, &e.State, &e.Latitude, &e.Longitude,
		&e.Cost, &e.CostDisplay, &e.ImageURL, &e.SourceURL,
		&e.EnergyLevel, &e.EventTypes, &e.Vibes, &e.CreatedAt,
	)
	return e, err
}
