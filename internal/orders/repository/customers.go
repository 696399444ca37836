package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"cerrajeria_backend/platform/apperr"
)

const customerNotFoundMessage = "customer not found"

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	var createdAt, updatedAt time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.City, &createdAt, &updatedAt)
	if err != nil {
		return Customer{}, err
	}
	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)
	return c, nil
}

// GetCustomer retrieves a customer by ID.
func (r *Repo) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	query := `
		SELECT id, name, phone, COALESCE(address, ''), COALESCE(city, ''), created_at, updated_at
		FROM customers
		WHERE id = $1`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListCustomers retrieves customers matching an optional name or phone
// search, newest first.
func (r *Repo) ListCustomers(ctx context.Context, search string, offset, limit int) ([]Customer, int, error) {
	var searchParam interface{}
	if search != "" {
		searchParam = "%" + search + "%"
	}

	where := ` WHERE ($1::text IS NULL OR name ILIKE $1 OR phone LIKE $1)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, searchParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `
		SELECT id, name, phone, COALESCE(address, ''), COALESCE(city, ''), created_at, updated_at
		FROM customers` + where + `
		ORDER BY created_at DESC OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, searchParam, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var results []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		results = append(results, c)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("list customers: %w", rows.Err())
	}

	return results, total, nil
}

// ListCustomerRequests retrieves every request for one customer, newest first.
func (r *Repo) ListCustomerRequests(ctx context.Context, customerID int64) ([]ServiceRequest, error) {
	query := `SELECT` + requestColumns + requestJoins + `
	WHERE r.customer_id = $1
	ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer requests: %w", err)
	}
	defer rows.Close()

	var results []ServiceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		results = append(results, req)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("list customer requests: %w", rows.Err())
	}

	return results, nil
}

// UpdateCustomer applies a partial dashboard edit.
func (r *Repo) UpdateCustomer(ctx context.Context, params UpdateCustomerParams) (Customer, error) {
	query := `
		UPDATE customers SET
			name = COALESCE($1, name),
			address = COALESCE($2, address),
			city = COALESCE($3, city),
			updated_at = now()
		WHERE id = $4
		RETURNING id, name, phone, COALESCE(address, ''), COALESCE(city, ''), created_at, updated_at`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, params.Name, params.Address, params.City, params.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// DeleteCustomer removes a customer with no remaining requests.
func (r *Repo) DeleteCustomer(ctx context.Context, id int64) error {
	var hasRequests bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM service_requests WHERE customer_id = $1)`, id,
	).Scan(&hasRequests)
	if err != nil {
		return fmt.Errorf("check customer requests: %w", err)
	}
	if hasRequests {
		return apperr.Conflict("customer has service requests")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(customerNotFoundMessage)
	}
	return nil
}
