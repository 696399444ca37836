// Package email delivers operational notifications over SMTP.
package email

import "context"

// NewRequestData carries the fields rendered into the new-request alert.
type NewRequestData struct {
	RequestID     int64
	CustomerName  string
	CustomerPhone string
	City          string
	Address       string
	ServiceType   string
	PaymentMethod string
}

// Sender delivers dispatch notifications.
type Sender interface {
	SendNewRequestAlert(ctx context.Context, toEmail string, data NewRequestData) error
}

// NoopSender discards every notification. Used when SMTP is not configured.
type NoopSender struct{}

// SendNewRequestAlert does nothing.
func (NoopSender) SendNewRequestAlert(ctx context.Context, toEmail string, data NewRequestData) error {
	return nil
}

var _ Sender = NoopSender{}
