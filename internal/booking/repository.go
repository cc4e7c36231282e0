package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for booking records. It also satisfies
// the engine's Reader interface, so validation and persistence share one
// source of truth.
type Repository interface {
	Insert(ctx context.Context, b *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	ListByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) ([]*Record, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Insert(ctx context.Context, b *Record) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("owner_id", "requester_name", "requester_email", "date", "start_time", "end_time", "duration_minutes").
		Values(b.OwnerID, b.RequesterName, b.RequesterEmail, b.Date, b.StartTime, b.EndTime, b.DurationMinutes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "owner_id", "requester_name", "requester_email",
		"date", "start_time", "end_time", "duration_minutes", "created_at", "updated_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanRecord(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) ([]*Record, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "owner_id", "requester_name", "requester_email",
		"date", "start_time", "end_time", "duration_minutes", "created_at", "updated_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		b, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		records = append(records, b)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (*Record, error) {
	var b Record
	if err := row.Scan(
		&b.ID,
		&b.OwnerID,
		&b.RequesterName,
		&b.RequesterEmail,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.DurationMinutes,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
