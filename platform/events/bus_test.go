package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cerrajeria_backend/platform/logger"
)

func TestInMemoryBus_PublishSyncDispatchesByName(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var got []int64
	bus.Subscribe(ServiceRequestCreated{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		created := event.(ServiceRequestCreated)
		got = append(got, created.RequestID)
		return nil
	}))
	bus.Subscribe(RequestStatusChanged{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		t.Error("status handler must not see creation events")
		return nil
	}))

	err := bus.PublishSync(context.Background(), ServiceRequestCreated{BaseEvent: NewBaseEvent(), RequestID: 42})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("expected [42], got %v", got)
	}
}

func TestInMemoryBus_PublishSyncReturnsHandlerError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	wantErr := errors.New("smtp down")
	bus.Subscribe(ServiceRequestCreated{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		return wantErr
	}))

	err := bus.PublishSync(context.Background(), ServiceRequestCreated{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestInMemoryBus_PublishIsAsynchronous(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe(ServiceRequestCreated{}.EventName(), HandlerFunc(func(ctx context.Context, event Event) error {
		defer wg.Done()
		// The handler must survive cancellation of the publish context.
		if ctx.Err() != nil {
			t.Error("expected detached context")
		}
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, ServiceRequestCreated{BaseEvent: NewBaseEvent()})
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}
