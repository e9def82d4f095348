package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Postgres keeps each entity as a JSONB document next to the columns it is
// filtered or sorted on.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS owners (
	id    TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	doc   JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS owners_email_idx ON owners (email);

CREATE TABLE IF NOT EXISTS snakes (
	id  TEXT PRIMARY KEY,
	doc JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS cages (
	id                     TEXT PRIMARY KEY,
	price                  DOUBLE PRECISION NOT NULL,
	square_meters          DOUBLE PRECISION NOT NULL,
	allow_dangerous_snakes BOOLEAN NOT NULL DEFAULT FALSE,
	doc                    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS cages_price_idx ON cages (price, square_meters DESC);
`

// EnsurePostgresSchema creates the tables if they do not exist
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// NewPostgresStore wires the PostgreSQL repositories onto pool
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Owners: NewPostgresOwnerRepository(pool),
		Snakes: NewPostgresSnakeRepository(pool),
		Cages:  NewPostgresCageRepository(pool),
	}
}

// PostgresOwnerRepository implements OwnerRepository using pgxpool
type PostgresOwnerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOwnerRepository creates a new PostgresOwnerRepository
func NewPostgresOwnerRepository(pool *pgxpool.Pool) *PostgresOwnerRepository {
	return &PostgresOwnerRepository{pool: pool}
}

func (r *PostgresOwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.owner.create")
	defer span.End()

	owner.ID = uuid.NewString()
	doc, err := json.Marshal(owner)
	if err != nil {
		return fmt.Errorf("failed to encode owner: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `INSERT INTO owners (id, email, doc) VALUES ($1, $2, $3)`,
		owner.ID, owner.Email, doc); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

func (r *PostgresOwnerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	return r.queryOne(ctx, `SELECT doc FROM owners WHERE id = $1`, id)
}

func (r *PostgresOwnerRepository) GetByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	return r.queryOne(ctx,
		`SELECT doc FROM owners WHERE email = $1 ORDER BY doc->>'registered_date' LIMIT 1`, email)
}

func (r *PostgresOwnerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.owner.update")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", owner.ID))

	doc, err := json.Marshal(owner)
	if err != nil {
		return fmt.Errorf("failed to encode owner: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `UPDATE owners SET email = $2, doc = $3 WHERE id = $1`, owner.ID, owner.Email, doc)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to update owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOwnerNotFound
	}
	return nil
}

func (r *PostgresOwnerRepository) queryOne(ctx context.Context, query string, arg any) (*domain.Owner, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	var owner domain.Owner
	if err := json.Unmarshal(raw, &owner); err != nil {
		return nil, fmt.Errorf("failed to decode owner: %w", err)
	}
	return &owner, nil
}

// PostgresSnakeRepository implements SnakeRepository using pgxpool
type PostgresSnakeRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSnakeRepository creates a new PostgresSnakeRepository
func NewPostgresSnakeRepository(pool *pgxpool.Pool) *PostgresSnakeRepository {
	return &PostgresSnakeRepository{pool: pool}
}

func (r *PostgresSnakeRepository) Create(ctx context.Context, snake *domain.Snake) error {
	snake.ID = uuid.NewString()
	doc, err := json.Marshal(snake)
	if err != nil {
		return fmt.Errorf("failed to encode snake: %w", err)
	}
	if _, err := r.pool.Exec(ctx, `INSERT INTO snakes (id, doc) VALUES ($1, $2)`, snake.ID, doc); err != nil {
		return fmt.Errorf("failed to create snake: %w", err)
	}
	return nil
}

func (r *PostgresSnakeRepository) GetByID(ctx context.Context, id string) (*domain.Snake, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, `SELECT doc FROM snakes WHERE id = $1`, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnakeNotFound
		}
		return nil, fmt.Errorf("failed to find snake: %w", err)
	}
	var snake domain.Snake
	if err := json.Unmarshal(raw, &snake); err != nil {
		return nil, fmt.Errorf("failed to decode snake: %w", err)
	}
	return &snake, nil
}

func (r *PostgresSnakeRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Snake, error) {
	if len(ids) == 0 {
		return []*domain.Snake{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT doc FROM snakes WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list snakes: %w", err)
	}
	snakes, err := scanDocs[domain.Snake](rows)
	if err != nil {
		return nil, err
	}
	return orderByIDs(ids, snakes, func(s *domain.Snake) string { return s.ID }), nil
}

// PostgresCageRepository implements CageRepository using pgxpool
type PostgresCageRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCageRepository creates a new PostgresCageRepository
func NewPostgresCageRepository(pool *pgxpool.Pool) *PostgresCageRepository {
	return &PostgresCageRepository{pool: pool}
}

func (r *PostgresCageRepository) Create(ctx context.Context, cage *domain.Cage) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.cage.create")
	defer span.End()

	cage.ID = uuid.NewString()
	if cage.Bookings == nil {
		cage.Bookings = []domain.Booking{}
	}
	doc, err := json.Marshal(cage)
	if err != nil {
		return fmt.Errorf("failed to encode cage: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO cages (id, price, square_meters, allow_dangerous_snakes, doc)
		VALUES ($1, $2, $3, $4, $5)`,
		cage.ID, cage.Price, cage.SquareMeters, cage.AllowDangerousSnakes, doc); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to create cage: %w", err)
	}
	return nil
}

func (r *PostgresCageRepository) GetByID(ctx context.Context, id string) (*domain.Cage, error) {
	var raw []byte
	if err := r.pool.QueryRow(ctx, `SELECT doc FROM cages WHERE id = $1`, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCageNotFound
		}
		return nil, fmt.Errorf("failed to find cage: %w", err)
	}
	return decodeCage(raw)
}

func (r *PostgresCageRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Cage, error) {
	if len(ids) == 0 {
		return []*domain.Cage{}, nil
	}
	cages, err := r.query(ctx, `SELECT doc FROM cages WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return orderByIDs(ids, cages, func(c *domain.Cage) string { return c.ID }), nil
}

func (r *PostgresCageRepository) AppendWindow(ctx context.Context, cageID string, window domain.Booking) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.cage.append_window")
	defer span.End()
	span.SetAttributes(attribute.String("cage_id", cageID))

	elem, err := json.Marshal([]domain.Booking{window})
	if err != nil {
		return fmt.Errorf("failed to encode window: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE cages
		SET doc = jsonb_set(doc, '{bookings}', COALESCE(doc->'bookings', '[]'::jsonb) || $2::jsonb)
		WHERE id = $1`, cageID, string(elem))
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to append window: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCageNotFound
	}
	return nil
}

func (r *PostgresCageRepository) FindCandidates(ctx context.Context, q CageQuery) ([]*domain.Cage, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.cage.find_candidates")
	defer span.End()

	cages, err := r.query(ctx, `
		SELECT doc FROM cages c
		WHERE c.square_meters >= $1
		  AND (NOT $2 OR c.allow_dangerous_snakes)
		  AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(c.doc->'bookings') AS b(elem)
			WHERE (b.elem->>'check_in_date')::timestamptz <= $3
			  AND (b.elem->>'check_out_date')::timestamptz >= $4
			  AND COALESCE(b.elem->>'guest_snake_id', '') = ''
		  )
		ORDER BY c.price ASC, c.square_meters DESC`,
		q.MinSquareMeters, q.RequireDangerous, q.CheckIn, q.CheckOut)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("candidates", len(cages)))
	return cages, nil
}

func (r *PostgresCageRepository) FindByGuestOwner(ctx context.Context, ownerID string) ([]*domain.Cage, error) {
	return r.query(ctx, `
		SELECT doc FROM cages c
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(c.doc->'bookings') AS b(elem)
			WHERE b.elem->>'guest_owner_id' = $1
		)
		ORDER BY c.id`, ownerID)
}

// ReserveWindow locks the cage row and re-checks the window before writing
func (r *PostgresCageRepository) ReserveWindow(ctx context.Context, cageID string, index int, expected, reserved domain.Booking) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.cage.reserve_window")
	defer span.End()
	span.SetAttributes(attribute.String("cage_id", cageID), attribute.Int("window_index", index))

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	if err := tx.QueryRow(ctx, `SELECT doc FROM cages WHERE id = $1 FOR UPDATE`, cageID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCageNotFound
		}
		return fmt.Errorf("failed to lock cage: %w", err)
	}
	cage, err := decodeCage(raw)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(cage.Bookings) || !sameWindow(cage.Bookings[index], expected) {
		telemetry.RecordError(span, domain.ErrAvailabilityConflict)
		return domain.ErrAvailabilityConflict
	}
	cage.Bookings[index] = reserved

	doc, err := json.Marshal(cage)
	if err != nil {
		return fmt.Errorf("failed to encode cage: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE cages SET doc = $2 WHERE id = $1`, cageID, doc); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to reserve window: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}
	return nil
}

func (r *PostgresCageRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Cage, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cages: %w", err)
	}
	cages, err := scanDocs[domain.Cage](rows)
	if err != nil {
		return nil, err
	}
	for _, c := range cages {
		if c.Bookings == nil {
			c.Bookings = []domain.Booking{}
		}
	}
	return cages, nil
}

func decodeCage(raw []byte) (*domain.Cage, error) {
	var cage domain.Cage
	if err := json.Unmarshal(raw, &cage); err != nil {
		return nil, fmt.Errorf("failed to decode cage: %w", err)
	}
	if cage.Bookings == nil {
		cage.Bookings = []domain.Booking{}
	}
	return &cage, nil
}

func scanDocs[T any](rows pgx.Rows) ([]*T, error) {
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode row: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}
