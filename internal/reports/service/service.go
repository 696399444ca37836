package service

import (
	"context"

	"cerrajeria_backend/internal/reports/repository"
	"cerrajeria_backend/internal/reports/transport"

	"golang.org/x/sync/errgroup"
)

const (
	defaultVolumeDays = 30
	maxVolumeDays     = 365
)

// Service assembles the dashboard summary report.
type Service struct {
	repo *repository.Repository
}

// New creates a new reports service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Summary runs the report aggregations concurrently and assembles the result.
// The daily volume series covers the trailing days window, defaulting to 30.
func (s *Service) Summary(ctx context.Context, days int) (transport.SummaryResponse, error) {
	if days <= 0 {
		days = defaultVolumeDays
	}
	if days > maxVolumeDays {
		days = maxVolumeDays
	}

	var (
		statuses []repository.StatusCount
		revenue  []repository.RevenueByMethod
		cities   []repository.CityCount
		daily    []repository.DailyVolume
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statuses, err = s.repo.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = s.repo.RevenueByMethod(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cities, err = s.repo.CountByCity(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.repo.DailyVolume(gctx, days)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.SummaryResponse{}, err
	}

	resp := transport.SummaryResponse{
		ByStatus:    make([]transport.StatusCount, 0, len(statuses)),
		Revenue:     make([]transport.RevenueByMethod, 0, len(revenue)),
		ByCity:      make([]transport.CityCount, 0, len(cities)),
		DailyVolume: make([]transport.DailyVolume, 0, len(daily)),
	}
	for _, sc := range statuses {
		resp.TotalRequests += sc.Count
		resp.ByStatus = append(resp.ByStatus, transport.StatusCount{Status: sc.Status, Count: sc.Count})
	}
	for _, rb := range revenue {
		resp.TotalRevenue += rb.Total
		resp.Revenue = append(resp.Revenue, transport.RevenueByMethod{
			Method: rb.Method,
			Total:  rb.Total,
			Count:  rb.Count,
		})
	}
	for _, cc := range cities {
		resp.ByCity = append(resp.ByCity, transport.CityCount{City: cc.City, Count: cc.Count})
	}
	for _, dv := range daily {
		resp.DailyVolume = append(resp.DailyVolume, transport.DailyVolume{Date: dv.Date, Count: dv.Count})
	}
	return resp, nil
}
