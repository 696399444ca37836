// Package service orchestrates one webhook turn: load session, suppress
// duplicate deliveries, run the state machine, execute its side effect, and
// persist the result in a single write.
package service

import (
	"context"

	"cerrajeria_backend/internal/conversation/domain"
	"cerrajeria_backend/platform/logger"
)

// SessionStore is the durable conversation state keyed by sender identity.
type SessionStore interface {
	Get(ctx context.Context, senderID string) (domain.Session, error)
	Save(ctx context.Context, senderID string, sess domain.Session) error
	Delete(ctx context.Context, senderID string) error
}

// CommitRequest carries the collected fields into the order commit.
type CommitRequest struct {
	SenderID      string
	Name          string
	City          string
	Address       string
	ServiceType   string
	PaymentMethod string
}

// OrderCommitter writes a completed conversation into relational records.
type OrderCommitter interface {
	CommitOrder(ctx context.Context, req CommitRequest) (int64, error)
}

// Service handles inbound conversation messages.
type Service struct {
	sessions   SessionStore
	committer  OrderCommitter
	log        *logger.Logger
	windowSize int
}

// New creates a conversation service. windowSize bounds the dedup window.
func New(sessions SessionStore, committer OrderCommitter, log *logger.Logger, windowSize int) *Service {
	return &Service{
		sessions:   sessions,
		committer:  committer,
		log:        log,
		windowSize: windowSize,
	}
}

// HandleMessage processes one inbound message and returns the reply text.
// An empty reply with a nil error means a suppressed duplicate: the caller
// must still acknowledge the gateway with an empty envelope. A non-nil error
// means storage failed before any state was durably changed; the caller
// replies with a generic retry-later message.
func (s *Service) HandleMessage(ctx context.Context, senderID, body, messageID string) (string, error) {
	// Malformed sender identity degrades to an anonymous, stateless exchange.
	if senderID == "" {
		out := domain.Transition(domain.NewSession(), body)
		return out.Reply, nil
	}

	sess, err := s.sessions.Get(ctx, senderID)
	if err != nil {
		s.log.DatabaseError("session_get", err)
		return "", err
	}

	if messageID != "" && sess.Seen(messageID) {
		s.log.DuplicateMessage(senderID, messageID)
		return "", nil
	}
	if messageID != "" {
		sess.MarkProcessed(messageID, s.windowSize)
	}

	fromState := sess.State
	out := domain.Transition(sess, body)

	switch out.Effect {
	case domain.EffectCancel:
		if err := s.sessions.Delete(ctx, senderID); err != nil {
			s.log.DatabaseError("session_delete", err)
			return "", err
		}

	case domain.EffectCommit:
		label, _ := domain.ServiceLabel(out.Session.Fields.ServiceType)
		_, err := s.committer.CommitOrder(ctx, CommitRequest{
			SenderID:      senderID,
			Name:          out.Session.Fields.Name,
			City:          out.Session.Fields.City,
			Address:       out.Session.Fields.Address,
			ServiceType:   label,
			PaymentMethod: out.Session.Fields.PaymentMethod,
		})
		if err != nil {
			// The session is left untouched in storage: the message is not
			// marked processed and the confirmation state survives, so the
			// user (or a gateway retry) can confirm again.
			s.log.Error("order commit failed", "sender_id", senderID, "error", err)
			return domain.MsgCommitFailed, nil
		}
		if err := s.sessions.Delete(ctx, senderID); err != nil {
			// The order is committed; a stale session is the lesser harm.
			s.log.DatabaseError("session_delete", err)
		}

	default:
		if err := s.sessions.Save(ctx, senderID, out.Session); err != nil {
			s.log.DatabaseError("session_save", err)
			return "", err
		}
	}

	s.log.ConversationTurn(senderID, string(fromState), string(out.Session.State))
	return out.Reply, nil
}
