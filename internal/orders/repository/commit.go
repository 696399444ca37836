package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cerrajeria_backend/internal/orders/domain"
)

// CommitOrder upserts the customer and inserts the service request in one
// transaction. The customer row is locked for the duration so two concurrent
// confirms for the same phone serialize on the upsert.
func (r *Repo) CommitOrder(ctx context.Context, params CommitParams) (CommitResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CommitResult{}, fmt.Errorf("begin commit: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var result CommitResult

	var customerID int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM customers WHERE phone = $1 FOR UPDATE`,
		params.Phone,
	).Scan(&customerID)
	switch {
	case err == nil:
		_, err = tx.Exec(ctx,
			`UPDATE customers SET name = $1, address = $2, city = $3, updated_at = now() WHERE id = $4`,
			params.Name, params.Address, params.City, customerID,
		)
		if err != nil {
			return CommitResult{}, fmt.Errorf("update customer: %w", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		err = tx.QueryRow(ctx,
			`INSERT INTO customers (name, phone, address, city) VALUES ($1, $2, $3, $4) RETURNING id`,
			params.Name, params.Phone, params.Address, params.City,
		).Scan(&customerID)
		if err != nil {
			return CommitResult{}, fmt.Errorf("insert customer: %w", err)
		}
		result.CustomerCreated = true
	default:
		return CommitResult{}, fmt.Errorf("lookup customer: %w", err)
	}

	var dispatcherID int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM dispatchers WHERE name = $1`,
		domain.UnassignedDispatcherName,
	).Scan(&dispatcherID)
	if err != nil {
		return CommitResult{}, fmt.Errorf("lookup unassigned dispatcher: %w", err)
	}

	var requestID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO service_requests
		     (requested_date, requested_time, service_type, status, payment_amount,
		      payment_method, payment_detail, customer_id, dispatcher_id)
		 VALUES ($1, $2, $3, $4, 0, $5, $6, $7, $8)
		 RETURNING id`,
		params.RequestedDate, params.RequestedTime, params.ServiceType,
		domain.StatusPending, params.PaymentMethod, params.PaymentDetail,
		customerID, dispatcherID,
	).Scan(&requestID)
	if err != nil {
		return CommitResult{}, fmt.Errorf("insert service request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return CommitResult{}, fmt.Errorf("commit order: %w", err)
	}

	result.RequestID = requestID
	result.CustomerID = customerID
	return result, nil
}
