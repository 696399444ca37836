// Package domain holds the order lifecycle rules shared by the commit path
// and the dashboard.
package domain

// Status is the lifecycle state of a service request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether the value is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the dashboard status lifecycle. Completed and
// cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// UnassignedDispatcherName is the sentinel assignee every new request starts
// with. The row is seeded by migration and never deleted.
const UnassignedDispatcherName = "Por Asignar"

// PaymentDetailNA is stored when the payment method needs no extra detail.
const PaymentDetailNA = "N/A"
