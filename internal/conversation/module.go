// Package conversation provides the WhatsApp intake bounded context: the
// persisted-session model, message dedup, the dialog state machine, and the
// webhook endpoint that drives them.
package conversation

import (
	"cerrajeria_backend/internal/conversation/handler"
	"cerrajeria_backend/internal/conversation/repository"
	"cerrajeria_backend/internal/conversation/service"
	apphttp "cerrajeria_backend/internal/http"
	"cerrajeria_backend/platform/config"
	"cerrajeria_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the conversation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the conversation module. The committer is
// implemented by the orders module behind an adapter.
func NewModule(pool *pgxpool.Pool, committer service.OrderCommitter, cfg config.ConversationConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, committer, log, cfg.GetDedupWindowSize())
	h := handler.New(svc, log)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "conversation"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public webhook endpoint on the root engine.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	webhook := ctx.Engine.Group("/webhook")
	webhook.Use(ctx.WebhookRateLimiter.RateLimit())
	webhook.POST("/whatsapp", m.handler.HandleInbound)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
