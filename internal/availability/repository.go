package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/timespan"
)

// Repository defines storage access for availability windows.
type Repository interface {
	Create(ctx context.Context, w *Window) error
	GetByID(ctx context.Context, id string) (*Window, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Window, error)
	Update(ctx context.Context, w *Window) error
	Delete(ctx context.Context, id string) error

	// HasWindowContaining reports whether the owner holds at least one window
	// that fully contains the span. Any single match is sufficient; an owner
	// may hold multiple overlapping windows.
	HasWindowContaining(ctx context.Context, ownerID string, span timespan.Span) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, w *Window) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_windows").
		Columns("owner_id", "from_time", "to_time", "slot_minutes").
		Values(w.OwnerID, w.Span.Start(), w.Span.End(), w.SlotMinutes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create window query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateWindow
		}
		return fmt.Errorf("create window failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "owner_id", "from_time", "to_time", "slot_minutes", "created_at", "updated_at",
	).
		From("public.availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get window query failed: %w", err)
	}

	w, err := scanWindow(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "owner_id", "from_time", "to_time", "slot_minutes", "created_at", "updated_at",
	).
		From("public.availability_windows").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("from_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []*Window
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, w *Window) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_windows").
		Set("from_time", w.Span.Start()).
		Set("to_time", w.Span.End()).
		Set("slot_minutes", w.SlotMinutes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": w.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update window query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateWindow
		}
		return fmt.Errorf("update window failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete window query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete window failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasWindowContaining(ctx context.Context, ownerID string, span timespan.Span) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.availability_windows").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.LtOrEq{"from_time": span.Start()}).
		Where(squirrel.GtOrEq{"to_time": span.End()})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build window containment query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("window containment query failed: %w", err)
	}
	return exists, nil
}

func scanWindow(row pgx.Row) (*Window, error) {
	var (
		w        Window
		from, to time.Time
	)
	if err := row.Scan(&w.ID, &w.OwnerID, &from, &to, &w.SlotMinutes, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}

	span, err := timespan.New(from, to)
	if err != nil {
		return nil, fmt.Errorf("stored window %s has invalid span: %w", w.ID, err)
	}
	w.Span = span
	return &w, nil
}
