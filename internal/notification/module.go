// Package notification bridges domain events to outbound email alerts.
package notification

import (
	"context"
	"fmt"

	"cerrajeria_backend/internal/email"
	"cerrajeria_backend/platform/config"
	"cerrajeria_backend/platform/events"
	"cerrajeria_backend/platform/logger"
)

// Module subscribes to order events and forwards them to the dispatch inbox.
type Module struct {
	sender email.Sender
	cfg    config.EmailConfig
	log    *logger.Logger
}

// NewModule creates the notification module and registers its event handlers.
func NewModule(bus events.Bus, cfg config.EmailConfig, log *logger.Logger) *Module {
	var sender email.Sender = email.NoopSender{}
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		)
	}

	m := &Module{sender: sender, cfg: cfg, log: log}
	bus.Subscribe(events.ServiceRequestCreated{}.EventName(), events.HandlerFunc(m.onRequestCreated))
	return m
}

func (m *Module) onRequestCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.ServiceRequestCreated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	err := m.sender.SendNewRequestAlert(ctx, m.cfg.GetDispatchInboxAddress(), email.NewRequestData{
		RequestID:     created.RequestID,
		CustomerName:  created.CustomerName,
		CustomerPhone: created.CustomerPhone,
		City:          created.City,
		Address:       created.Address,
		ServiceType:   created.ServiceType,
		PaymentMethod: created.PaymentMethod,
	})
	if err != nil {
		m.log.Error("new request alert failed", "request_id", created.RequestID, "error", err)
		return err
	}
	return nil
}
