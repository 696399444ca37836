// Package domain holds the conversation state machine and its types. The
// engine is a pure function over the session; all I/O lives in the service
// and repository layers.
package domain

// State identifies where a conversation currently is.
type State string

const (
	StateStart                    State = "start"
	StateAwaitingName             State = "awaiting_name"
	StateAwaitingCity             State = "awaiting_city"
	StateAwaitingAddress          State = "awaiting_address"
	StateAwaitingServiceType      State = "awaiting_service_type"
	StateAwaitingPaymentMethod    State = "awaiting_payment_method"
	StateAwaitingConfirmation     State = "awaiting_confirmation"
	StateAwaitingCorrectionChoice State = "awaiting_correction_choice"
	StateAwaitingCorrectionValue  State = "awaiting_correction_value"
)

// Valid reports whether the persisted state value is one the engine knows.
func (s State) Valid() bool {
	switch s {
	case StateStart, StateAwaitingName, StateAwaitingCity, StateAwaitingAddress,
		StateAwaitingServiceType, StateAwaitingPaymentMethod, StateAwaitingConfirmation,
		StateAwaitingCorrectionChoice, StateAwaitingCorrectionValue:
		return true
	}
	return false
}

// Fields is the service request under construction. ServiceType is a 1-based
// index into Catalog; zero means not yet collected.
type Fields struct {
	Name          string `json:"name,omitempty"`
	City          string `json:"city,omitempty"`
	Address       string `json:"address,omitempty"`
	ServiceType   int    `json:"service_type,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// Complete reports whether every field needed for a commit is collected.
func (f Fields) Complete() bool {
	return f.Name != "" && f.City != "" && f.Address != "" &&
		f.ServiceType >= 1 && f.ServiceType <= len(Catalog) &&
		f.PaymentMethod != ""
}

// Session is the persisted conversation state for one sender. It is stored
// as a single JSONB blob and replaced wholesale on every write.
type Session struct {
	State            State    `json:"state"`
	Fields           Fields   `json:"fields"`
	RecentMessageIDs []string `json:"recent_message_ids,omitempty"`
	CorrectionTarget string   `json:"correction_target,omitempty"`
}

// NewSession returns a freshly initialized session.
func NewSession() Session {
	return Session{State: StateStart}
}

// Seen reports whether the message identifier was already processed.
func (s *Session) Seen(messageID string) bool {
	for _, id := range s.RecentMessageIDs {
		if id == messageID {
			return true
		}
	}
	return false
}

// MarkProcessed appends the message identifier to the dedup window and trims
// the window to capacity, oldest first.
func (s *Session) MarkProcessed(messageID string, capacity int) {
	s.RecentMessageIDs = append(s.RecentMessageIDs, messageID)
	if capacity > 0 && len(s.RecentMessageIDs) > capacity {
		s.RecentMessageIDs = s.RecentMessageIDs[len(s.RecentMessageIDs)-capacity:]
	}
}
