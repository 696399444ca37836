package service

import (
	"context"
	"errors"
	"testing"

	"cerrajeria_backend/internal/conversation/domain"
	"cerrajeria_backend/platform/logger"
)

type fakeStore struct {
	sessions map[string]domain.Session
	getErr   error
	saveErr  error
	saves    int
	deletes  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]domain.Session)}
}

func (f *fakeStore) Get(ctx context.Context, senderID string) (domain.Session, error) {
	if f.getErr != nil {
		return domain.Session{}, f.getErr
	}
	if sess, ok := f.sessions[senderID]; ok {
		return sess, nil
	}
	return domain.NewSession(), nil
}

func (f *fakeStore) Save(ctx context.Context, senderID string, sess domain.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.sessions[senderID] = sess
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, senderID string) error {
	f.deletes++
	delete(f.sessions, senderID)
	return nil
}

type fakeCommitter struct {
	err      error
	requests []CommitRequest
}

func (f *fakeCommitter) CommitOrder(ctx context.Context, req CommitRequest) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.requests = append(f.requests, req)
	return int64(len(f.requests)), nil
}

func newTestService(store *fakeStore, committer *fakeCommitter) *Service {
	return New(store, committer, logger.New("development"), 20)
}

const sender = "whatsapp:+573001112233"

func TestHandleMessage_FullConversationCommits(t *testing.T) {
	store := newFakeStore()
	committer := &fakeCommitter{}
	svc := newTestService(store, committer)
	ctx := context.Background()

	inputs := []string{"hola", "juan pérez", "bucaramanga", "Calle 10 #5-20", "3", "efectivo", "confirmar"}
	var reply string
	for i, input := range inputs {
		var err error
		reply, err = svc.HandleMessage(ctx, sender, input, messageID(i))
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}

	if reply != domain.MsgConfirmed {
		t.Fatalf("expected confirmation, got %q", reply)
	}
	if len(committer.requests) != 1 {
		t.Fatalf("expected one commit, got %d", len(committer.requests))
	}

	req := committer.requests[0]
	if req.SenderID != sender {
		t.Errorf("unexpected sender %q", req.SenderID)
	}
	if req.Name != "Juan Pérez" || req.City != "Bucaramanga" || req.Address != "Calle 10 #5-20" {
		t.Errorf("unexpected commit fields %+v", req)
	}
	if req.ServiceType != "Apertura de candado" {
		t.Errorf("expected catalog label, got %q", req.ServiceType)
	}
	if req.PaymentMethod != "efectivo" {
		t.Errorf("unexpected payment method %q", req.PaymentMethod)
	}

	if _, ok := store.sessions[sender]; ok {
		t.Error("expected session deleted after commit")
	}
}

func TestHandleMessage_DuplicateDeliverySuppressed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeCommitter{})
	ctx := context.Background()

	first, err := svc.HandleMessage(ctx, sender, "hola", "SM1")
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if first != domain.MsgWelcome {
		t.Fatalf("expected welcome, got %q", first)
	}

	replay, err := svc.HandleMessage(ctx, sender, "hola", "SM1")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replay != "" {
		t.Fatalf("expected empty reply for duplicate, got %q", replay)
	}

	// A replay must not advance the state machine.
	if store.sessions[sender].State != domain.StateAwaitingName {
		t.Errorf("expected state unchanged, got %s", store.sessions[sender].State)
	}
}

func TestHandleMessage_MissingMessageIDProcessedNormally(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeCommitter{})
	ctx := context.Background()

	if _, err := svc.HandleMessage(ctx, sender, "hola", ""); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	reply, err := svc.HandleMessage(ctx, sender, "hola", "")
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a reply when no message id is present")
	}
	if len(store.sessions[sender].RecentMessageIDs) != 0 {
		t.Errorf("expected empty dedup window, got %v", store.sessions[sender].RecentMessageIDs)
	}
}

func TestHandleMessage_EmptySenderIsStateless(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeCommitter{})

	reply, err := svc.HandleMessage(context.Background(), "", "hola", "SM1")
	if err != nil {
		t.Fatalf("anonymous turn: %v", err)
	}
	if reply != domain.MsgWelcome {
		t.Fatalf("expected welcome, got %q", reply)
	}
	if store.saves != 0 {
		t.Errorf("expected no session writes, got %d", store.saves)
	}
}

func TestHandleMessage_StorageFailureSurfacesError(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	svc := newTestService(store, &fakeCommitter{})

	reply, err := svc.HandleMessage(context.Background(), sender, "hola", "SM1")
	if err == nil {
		t.Fatal("expected error when session load fails")
	}
	if reply != "" {
		t.Fatalf("expected empty reply on storage failure, got %q", reply)
	}
}

func TestHandleMessage_CommitFailureRetainsSession(t *testing.T) {
	store := newFakeStore()
	committer := &fakeCommitter{err: errors.New("deadlock detected")}
	svc := newTestService(store, committer)
	ctx := context.Background()

	inputs := []string{"hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi"}
	for i, input := range inputs {
		if _, err := svc.HandleMessage(ctx, sender, input, messageID(i)); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}

	reply, err := svc.HandleMessage(ctx, sender, "confirmar", "SM-confirm")
	if err != nil {
		t.Fatalf("confirm turn: %v", err)
	}
	if reply != domain.MsgCommitFailed {
		t.Fatalf("expected commit-failed reply, got %q", reply)
	}

	// The confirmation state must survive and the message must stay unmarked
	// so a retry can reach the committer again.
	sess := store.sessions[sender]
	if sess.State != domain.StateAwaitingConfirmation {
		t.Fatalf("expected awaiting_confirmation retained, got %s", sess.State)
	}
	if sess.Seen("SM-confirm") {
		t.Error("expected failed commit message to stay unmarked")
	}

	committer.err = nil
	retry, err := svc.HandleMessage(ctx, sender, "confirmar", "SM-confirm")
	if err != nil {
		t.Fatalf("retry turn: %v", err)
	}
	if retry != domain.MsgConfirmed {
		t.Fatalf("expected confirmation on retry, got %q", retry)
	}
	if len(committer.requests) != 1 {
		t.Fatalf("expected exactly one successful commit, got %d", len(committer.requests))
	}
}

func TestHandleMessage_CancelDeletesSession(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeCommitter{})
	ctx := context.Background()

	if _, err := svc.HandleMessage(ctx, sender, "hola", "SM1"); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	reply, err := svc.HandleMessage(ctx, sender, "salir", "SM2")
	if err != nil {
		t.Fatalf("cancel turn: %v", err)
	}
	if reply != domain.MsgCancelled {
		t.Fatalf("expected cancel reply, got %q", reply)
	}
	if store.deletes != 1 {
		t.Errorf("expected one delete, got %d", store.deletes)
	}
	if _, ok := store.sessions[sender]; ok {
		t.Error("expected session removed after cancel")
	}
}

func messageID(i int) string {
	return "SM" + string(rune('A'+i))
}
