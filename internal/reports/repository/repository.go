// Package repository provides aggregation queries for dashboard reports.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusCount is the number of requests in one status.
type StatusCount struct {
	Status string
	Count  int
}

// RevenueByMethod is the completed revenue collected per payment method.
type RevenueByMethod struct {
	Method string
	Total  float64
	Count  int
}

// CityCount is the number of requests originating in one city.
type CityCount struct {
	City  string
	Count int
}

// DailyVolume is the number of requests created on one day.
type DailyVolume struct {
	Date  string
	Count int
}

// Repository runs report aggregations against the orders tables.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new reports repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CountByStatus groups all requests by status.
func (r *Repository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM service_requests
		GROUP BY status
		ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// RevenueByMethod sums recorded payments on completed requests per method.
func (r *Repository) RevenueByMethod(ctx context.Context) ([]RevenueByMethod, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT payment_method, SUM(payment_amount)::float8, COUNT(*)
		FROM service_requests
		WHERE status = 'completed' AND payment_method IS NOT NULL
		GROUP BY payment_method
		ORDER BY payment_method`)
	if err != nil {
		return nil, fmt.Errorf("revenue by method: %w", err)
	}
	defer rows.Close()

	var out []RevenueByMethod
	for rows.Next() {
		var rb RevenueByMethod
		if err := rows.Scan(&rb.Method, &rb.Total, &rb.Count); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

// CountByCity groups all requests by the customer's city.
func (r *Repository) CountByCity(ctx context.Context) ([]CityCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.city, COUNT(*)
		FROM service_requests sr
		JOIN customers c ON c.id = sr.customer_id
		GROUP BY c.city
		ORDER BY COUNT(*) DESC, c.city`)
	if err != nil {
		return nil, fmt.Errorf("count by city: %w", err)
	}
	defer rows.Close()

	var out []CityCount
	for rows.Next() {
		var cc CityCount
		if err := rows.Scan(&cc.City, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan city count: %w", err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// DailyVolume counts requests created per day over the trailing window.
func (r *Repository) DailyVolume(ctx context.Context, days int) ([]DailyVolume, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT created_at::date::text, COUNT(*)
		FROM service_requests
		WHERE created_at >= now() - ($1 || ' days')::interval
		GROUP BY created_at::date
		ORDER BY created_at::date`,
		days)
	if err != nil {
		return nil, fmt.Errorf("daily volume: %w", err)
	}
	defer rows.Close()

	var out []DailyVolume
	for rows.Next() {
		var dv DailyVolume
		if err := rows.Scan(&dv.Date, &dv.Count); err != nil {
			return nil, fmt.Errorf("scan daily volume: %w", err)
		}
		out = append(out, dv)
	}
	return out, rows.Err()
}
