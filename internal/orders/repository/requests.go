package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"cerrajeria_backend/internal/orders/domain"
	"cerrajeria_backend/platform/apperr"
)

const requestNotFoundMessage = "service request not found"

const requestColumns = `
	r.id, r.requested_date::text, r.requested_time::text, r.service_type, r.status,
	r.payment_amount::float8, r.payment_method, r.payment_detail,
	r.customer_id, r.dispatcher_id, c.name, c.phone, d.name, r.created_at`

const requestJoins = `
	FROM service_requests r
	JOIN customers c ON c.id = r.customer_id
	JOIN dispatchers d ON d.id = r.dispatcher_id`

func scanRequest(row pgx.Row) (ServiceRequest, error) {
	var req ServiceRequest
	var createdAt time.Time
	err := row.Scan(
		&req.ID, &req.RequestedDate, &req.RequestedTime, &req.ServiceType, &req.Status,
		&req.PaymentAmount, &req.PaymentMethod, &req.PaymentDetail,
		&req.CustomerID, &req.DispatcherID, &req.CustomerName, &req.CustomerPhone,
		&req.DispatcherName, &createdAt,
	)
	if err != nil {
		return ServiceRequest{}, err
	}
	req.CreatedAt = createdAt.Format(time.RFC3339)
	return req, nil
}

// GetRequest retrieves a service request with customer and dispatcher names.
func (r *Repo) GetRequest(ctx context.Context, id int64) (ServiceRequest, error) {
	query := `SELECT` + requestColumns + requestJoins + ` WHERE r.id = $1`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ServiceRequest{}, apperr.NotFound(requestNotFoundMessage)
		}
		return ServiceRequest{}, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// ListRequests retrieves service requests with filters and pagination,
// newest first.
func (r *Repo) ListRequests(ctx context.Context, params ListRequestsParams) ([]ServiceRequest, int, error) {
	var statusParam interface{}
	if params.Status != nil {
		statusParam = string(*params.Status)
	}
	var cityParam interface{}
	if params.City != "" {
		cityParam = params.City
	}
	var dispatcherParam interface{}
	if params.DispatcherID != nil {
		dispatcherParam = *params.DispatcherID
	}
	var fromParam interface{}
	if params.DateFrom != "" {
		fromParam = params.DateFrom
	}
	var toParam interface{}
	if params.DateTo != "" {
		toParam = params.DateTo
	}

	where := `
	WHERE ($1::text IS NULL OR r.status = $1)
	  AND ($2::text IS NULL OR c.city = $2)
	  AND ($3::bigint IS NULL OR r.dispatcher_id = $3)
	  AND ($4::date IS NULL OR r.requested_date >= $4)
	  AND ($5::date IS NULL OR r.requested_date <= $5)`

	args := []interface{}{statusParam, cityParam, dispatcherParam, fromParam, toParam}

	var total int
	countQuery := `SELECT COUNT(*)` + requestJoins + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	query := `SELECT` + requestColumns + requestJoins + where +
		` ORDER BY r.created_at DESC OFFSET $6 LIMIT $7`
	rows, err := r.pool.Query(ctx, query, append(args, params.Offset, params.Limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var results []ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan request: %w", err)
		}
		results = append(results, req)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("list requests: %w", rows.Err())
	}

	return results, total, nil
}

// UpdateRequestStatus moves a request through its lifecycle. The row is
// locked so racing dashboard updates serialize; the transition matrix is
// enforced against the locked value. Returns the previous status.
func (r *Repo) UpdateRequestStatus(ctx context.Context, id int64, next domain.Status) (domain.Status, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin status update: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var current domain.Status
	err = tx.QueryRow(ctx,
		`SELECT status FROM service_requests WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound(requestNotFoundMessage)
		}
		return "", fmt.Errorf("lock request: %w", err)
	}

	if !current.CanTransitionTo(next) {
		return "", apperr.Conflict(fmt.Sprintf("cannot change status from %s to %s", current, next))
	}

	_, err = tx.Exec(ctx,
		`UPDATE service_requests SET status = $1 WHERE id = $2`,
		next, id,
	)
	if err != nil {
		return "", fmt.Errorf("update status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit status update: %w", err)
	}
	return current, nil
}

// AssignDispatcher reassigns a request to a dispatcher.
func (r *Repo) AssignDispatcher(ctx context.Context, id, dispatcherID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE service_requests SET dispatcher_id = $1 WHERE id = $2`,
		dispatcherID, id,
	)
	if err != nil {
		return fmt.Errorf("assign dispatcher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(requestNotFoundMessage)
	}
	return nil
}

// RecordPayment stores the collected amount and method for a request.
func (r *Repo) RecordPayment(ctx context.Context, id int64, amount float64, method string) error {
	var detail interface{}
	if method != "efectivo" {
		detail = domain.PaymentDetailNA
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE service_requests SET payment_amount = $1, payment_method = $2, payment_detail = $3 WHERE id = $4`,
		amount, method, detail, id,
	)
	if err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(requestNotFoundMessage)
	}
	return nil
}

// DeleteRequest removes a cancelled request.
func (r *Repo) DeleteRequest(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM service_requests WHERE id = $1 AND status = $2`,
		id, domain.StatusCancelled,
	)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either absent or not cancelled; look up which.
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM service_requests WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		if !exists {
			return apperr.NotFound(requestNotFoundMessage)
		}
		return apperr.Conflict("only cancelled requests can be deleted")
	}
	return nil
}
