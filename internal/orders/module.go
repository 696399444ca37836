// Package orders provides the dispatch bounded context: committed service
// requests, the customers they belong to, and the dispatchers they get
// assigned to, plus the dashboard endpoints that manage them.
package orders

import (
	"fmt"

	apphttp "cerrajeria_backend/internal/http"
	"cerrajeria_backend/internal/orders/handler"
	"cerrajeria_backend/internal/orders/repository"
	"cerrajeria_backend/internal/orders/service"
	"cerrajeria_backend/platform/config"
	"cerrajeria_backend/platform/events"
	"cerrajeria_backend/platform/logger"
	"cerrajeria_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the orders bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the orders module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, cfg config.BusinessConfig) (*Module, error) {
	repo := repository.New(pool)
	svc, err := service.New(repo, bus, log, cfg)
	if err != nil {
		return nil, fmt.Errorf("init orders service: %w", err)
	}
	h := handler.New(svc, validator.New())

	return &Module{
		handler: h,
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "orders"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the dashboard routes on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRequestRoutes(ctx.Protected.Group("/requests"))
	m.handler.RegisterCustomerRoutes(ctx.Protected.Group("/customers"))
	m.handler.RegisterDispatcherRoutes(ctx.Protected.Group("/dispatchers"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
