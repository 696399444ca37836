// Package adapters contains anti-corruption adapters that bridge bounded
// contexts without letting them import each other's internals.
package adapters

import (
	"context"

	conversation "cerrajeria_backend/internal/conversation/service"
	orders "cerrajeria_backend/internal/orders/service"
)

// OrderCommitter adapts the orders service to the narrow committer
// interface the conversation module depends on.
type OrderCommitter struct {
	orders *orders.Service
}

// NewOrderCommitter creates the conversation-to-orders bridge.
func NewOrderCommitter(svc *orders.Service) *OrderCommitter {
	return &OrderCommitter{orders: svc}
}

// CommitOrder translates a completed conversation into an order commit.
func (a *OrderCommitter) CommitOrder(ctx context.Context, req conversation.CommitRequest) (int64, error) {
	return a.orders.CommitOrder(ctx, orders.CommitOrderInput{
		SenderID:      req.SenderID,
		Name:          req.Name,
		City:          req.City,
		Address:       req.Address,
		ServiceType:   req.ServiceType,
		PaymentMethod: req.PaymentMethod,
	})
}

// Compile-time check that the adapter satisfies the conversation interface.
var _ conversation.OrderCommitter = (*OrderCommitter)(nil)
