package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"cerrajeria_backend/internal/orders/domain"
	"cerrajeria_backend/platform/apperr"
)

const dispatcherNotFoundMessage = "dispatcher not found"

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

func scanDispatcher(row pgx.Row) (Dispatcher, error) {
	var d Dispatcher
	var createdAt time.Time
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Available, &createdAt)
	if err != nil {
		return Dispatcher{}, err
	}
	d.CreatedAt = createdAt.Format(time.RFC3339)
	return d, nil
}

// GetDispatcher retrieves a dispatcher by ID.
func (r *Repo) GetDispatcher(ctx context.Context, id int64) (Dispatcher, error) {
	query := `SELECT id, name, phone, available, created_at FROM dispatchers WHERE id = $1`

	d, err := scanDispatcher(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dispatcher{}, apperr.NotFound(dispatcherNotFoundMessage)
		}
		return Dispatcher{}, fmt.Errorf("get dispatcher: %w", err)
	}
	return d, nil
}

// ListDispatchers retrieves all dispatchers ordered by name, with the
// unassigned sentinel first.
func (r *Repo) ListDispatchers(ctx context.Context) ([]Dispatcher, error) {
	query := `
		SELECT id, name, phone, available, created_at
		FROM dispatchers
		ORDER BY name = $1 DESC, name ASC`

	rows, err := r.pool.Query(ctx, query, domain.UnassignedDispatcherName)
	if err != nil {
		return nil, fmt.Errorf("list dispatchers: %w", err)
	}
	defer rows.Close()

	var results []Dispatcher
	for rows.Next() {
		d, err := scanDispatcher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispatcher: %w", err)
		}
		results = append(results, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list dispatchers: %w", rows.Err())
	}

	return results, nil
}

// CreateDispatcher inserts a new dispatcher.
func (r *Repo) CreateDispatcher(ctx context.Context, params DispatcherParams) (Dispatcher, error) {
	query := `
		INSERT INTO dispatchers (name, phone)
		VALUES ($1, $2)
		RETURNING id, name, phone, available, created_at`

	d, err := scanDispatcher(r.pool.QueryRow(ctx, query, params.Name, params.Phone))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Dispatcher{}, apperr.Conflict("dispatcher name already exists")
		}
		return Dispatcher{}, fmt.Errorf("create dispatcher: %w", err)
	}
	return d, nil
}

// UpdateDispatcher edits a dispatcher. The unassigned sentinel cannot be
// renamed.
func (r *Repo) UpdateDispatcher(ctx context.Context, id int64, params DispatcherParams) (Dispatcher, error) {
	current, err := r.GetDispatcher(ctx, id)
	if err != nil {
		return Dispatcher{}, err
	}
	if current.Name == domain.UnassignedDispatcherName && params.Name != domain.UnassignedDispatcherName {
		return Dispatcher{}, apperr.Conflict("the unassigned dispatcher cannot be renamed")
	}

	query := `
		UPDATE dispatchers SET name = $1, phone = $2
		WHERE id = $3
		RETURNING id, name, phone, available, created_at`

	d, err := scanDispatcher(r.pool.QueryRow(ctx, query, params.Name, params.Phone, id))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Dispatcher{}, apperr.Conflict("dispatcher name already exists")
		}
		return Dispatcher{}, fmt.Errorf("update dispatcher: %w", err)
	}
	return d, nil
}

// SetDispatcherAvailable toggles a dispatcher's availability flag.
func (r *Repo) SetDispatcherAvailable(ctx context.Context, id int64, available bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE dispatchers SET available = $1 WHERE id = $2`,
		available, id,
	)
	if err != nil {
		return fmt.Errorf("set dispatcher availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(dispatcherNotFoundMessage)
	}
	return nil
}

// DeleteDispatcher removes a dispatcher that is not the sentinel and has no
// assigned requests.
func (r *Repo) DeleteDispatcher(ctx context.Context, id int64) error {
	current, err := r.GetDispatcher(ctx, id)
	if err != nil {
		return err
	}
	if current.Name == domain.UnassignedDispatcherName {
		return apperr.Conflict("the unassigned dispatcher cannot be deleted")
	}

	var hasRequests bool
	err = r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM service_requests WHERE dispatcher_id = $1)`, id,
	).Scan(&hasRequests)
	if err != nil {
		return fmt.Errorf("check dispatcher requests: %w", err)
	}
	if hasRequests {
		return apperr.Conflict("dispatcher has assigned requests")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM dispatchers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dispatcher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(dispatcherNotFoundMessage)
	}
	return nil
}
