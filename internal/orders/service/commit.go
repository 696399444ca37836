package service

import (
	"context"
	"fmt"
	"time"

	"cerrajeria_backend/internal/orders/domain"
	"cerrajeria_backend/internal/orders/repository"
	"cerrajeria_backend/platform/events"
	"cerrajeria_backend/platform/phone"
)

type timeSource struct {
	loc *time.Location
}

func newTimeSource(timezone string) (timeSource, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return timeSource{}, err
	}
	return timeSource{loc: loc}, nil
}

func (t timeSource) now() time.Time {
	return time.Now().In(t.loc)
}

// CommitOrderInput carries a completed conversation ready to be persisted.
type CommitOrderInput struct {
	SenderID      string
	Name          string
	City          string
	Address       string
	ServiceType   string
	PaymentMethod string
}

// CommitOrder persists a confirmed conversation as a customer record plus a
// pending service request, in a single transaction, and publishes a creation
// event on success. The request is stamped with the current date and time in
// the business timezone and starts assigned to the unassigned sentinel.
func (s *Service) CommitOrder(ctx context.Context, in CommitOrderInput) (int64, error) {
	normalized := phone.NormalizeSender(in.SenderID, s.phoneRegion)
	now := s.loc.now()

	params := repository.CommitParams{
		Phone:         normalized,
		Name:          in.Name,
		Address:       in.Address,
		City:          in.City,
		RequestedDate: now.Format("2006-01-02"),
		RequestedTime: now.Format("15:04:05"),
		ServiceType:   in.ServiceType,
		PaymentMethod: in.PaymentMethod,
	}
	// Cash is settled in person, so the detail column stays empty until the
	// dashboard records the collected amount. Everything else gets N/A.
	if in.PaymentMethod != "efectivo" {
		na := domain.PaymentDetailNA
		params.PaymentDetail = &na
	}

	result, err := s.repo.CommitOrder(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}

	s.log.Info("service request committed",
		"request_id", result.RequestID,
		"customer_id", result.CustomerID,
		"customer_created", result.CustomerCreated,
		"city", in.City,
	)

	s.bus.Publish(ctx, events.ServiceRequestCreated{
		BaseEvent:     events.NewBaseEvent(),
		RequestID:     result.RequestID,
		CustomerName:  in.Name,
		CustomerPhone: normalized,
		City:          in.City,
		Address:       in.Address,
		ServiceType:   in.ServiceType,
		PaymentMethod: in.PaymentMethod,
	})
	return result.RequestID, nil
}
