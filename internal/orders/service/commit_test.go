package service

import (
	"context"
	"testing"

	"cerrajeria_backend/internal/orders/repository"
	"cerrajeria_backend/platform/events"
	"cerrajeria_backend/platform/logger"
)

// fakeCommitRepo records commit parameters; the embedded interface leaves the
// dashboard methods unimplemented.
type fakeCommitRepo struct {
	repository.Repository
	committed []repository.CommitParams
}

func (f *fakeCommitRepo) CommitOrder(_ context.Context, params repository.CommitParams) (repository.CommitResult, error) {
	f.committed = append(f.committed, params)
	return repository.CommitResult{RequestID: 7, CustomerID: 3, CustomerCreated: true}, nil
}

type staticConfig struct {
	timezone string
	region   string
}

func (c staticConfig) GetBusinessTimezone() string   { return c.timezone }
func (c staticConfig) GetDefaultPhoneRegion() string { return c.region }

func TestCommitOrder_UsesConfiguredPhoneRegion(t *testing.T) {
	tests := []struct {
		name      string
		region    string
		senderID  string
		wantPhone string
	}{
		{"colombian sender", "CO", "whatsapp:+573001234567", "3001234567"},
		{"region applied to bare nationals", "US", "whatsapp:2025550123", "2025550123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeCommitRepo{}
			svc, err := New(repo, events.NewInMemoryBus(logger.New("development")), logger.New("development"), staticConfig{
				timezone: "America/Bogota",
				region:   tt.region,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			id, err := svc.CommitOrder(context.Background(), CommitOrderInput{
				SenderID:      tt.senderID,
				Name:          "Ana",
				City:          "Bucaramanga",
				Address:       "Calle 1",
				ServiceType:   "Apertura de puerta",
				PaymentMethod: "nequi",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != 7 {
				t.Fatalf("expected request id 7, got %d", id)
			}
			if len(repo.committed) != 1 {
				t.Fatalf("expected 1 commit, got %d", len(repo.committed))
			}
			if got := repo.committed[0].Phone; got != tt.wantPhone {
				t.Errorf("expected phone %q, got %q", tt.wantPhone, got)
			}
		})
	}
}

func TestNew_RejectsUnknownTimezone(t *testing.T) {
	_, err := New(&fakeCommitRepo{}, events.NewInMemoryBus(logger.New("development")), logger.New("development"), staticConfig{
		timezone: "Mars/Olympus",
		region:   "CO",
	})
	if err == nil {
		t.Fatal("expected an error for an unknown timezone")
	}
}
