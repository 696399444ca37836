package domain

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestMarkProcessed_TrimsOldestFirst(t *testing.T) {
	sess := NewSession()
	for i := 1; i <= 25; i++ {
		sess.MarkProcessed(fmt.Sprintf("SM%d", i), 20)
	}

	if len(sess.RecentMessageIDs) != 20 {
		t.Fatalf("expected window of 20, got %d", len(sess.RecentMessageIDs))
	}
	if sess.Seen("SM5") {
		t.Error("expected SM5 evicted")
	}
	if !sess.Seen("SM6") {
		t.Error("expected SM6 retained")
	}
	if !sess.Seen("SM25") {
		t.Error("expected newest id retained")
	}
}

func TestMarkProcessed_ZeroCapacityKeepsEverything(t *testing.T) {
	sess := NewSession()
	for i := 0; i < 30; i++ {
		sess.MarkProcessed(fmt.Sprintf("SM%d", i), 0)
	}
	if len(sess.RecentMessageIDs) != 30 {
		t.Fatalf("expected unbounded window, got %d", len(sess.RecentMessageIDs))
	}
}

func TestSeen_EmptyWindow(t *testing.T) {
	sess := NewSession()
	if sess.Seen("SM1") {
		t.Error("expected nothing seen in a fresh session")
	}
}

func TestSession_JSONRoundTrip(t *testing.T) {
	original := Session{
		State: StateAwaitingCorrectionValue,
		Fields: Fields{
			Name:          "Juan Pérez",
			City:          "Bucaramanga",
			Address:       "Calle 10 #5-20",
			ServiceType:   3,
			PaymentMethod: "efectivo",
		},
		RecentMessageIDs: []string{"SM1", "SM2"},
		CorrectionTarget: CorrectionCity,
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Session
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.State != original.State {
		t.Errorf("state mismatch: %s vs %s", decoded.State, original.State)
	}
	if decoded.Fields != original.Fields {
		t.Errorf("fields mismatch: %+v vs %+v", decoded.Fields, original.Fields)
	}
	if decoded.CorrectionTarget != original.CorrectionTarget {
		t.Errorf("correction target mismatch: %q vs %q", decoded.CorrectionTarget, original.CorrectionTarget)
	}
	if len(decoded.RecentMessageIDs) != 2 || !decoded.Seen("SM2") {
		t.Errorf("dedup window not preserved: %v", decoded.RecentMessageIDs)
	}
}

func TestFieldsComplete(t *testing.T) {
	complete := Fields{Name: "Ana", City: "Piedecuesta", Address: "Calle 1", ServiceType: 1, PaymentMethod: "nequi"}
	if !complete.Complete() {
		t.Error("expected complete")
	}

	tests := []struct {
		name   string
		mutate func(*Fields)
	}{
		{"missing name", func(f *Fields) { f.Name = "" }},
		{"missing city", func(f *Fields) { f.City = "" }},
		{"missing address", func(f *Fields) { f.Address = "" }},
		{"zero service", func(f *Fields) { f.ServiceType = 0 }},
		{"service out of range", func(f *Fields) { f.ServiceType = len(Catalog) + 1 }},
		{"missing payment", func(f *Fields) { f.PaymentMethod = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := complete
			tt.mutate(&f)
			if f.Complete() {
				t.Errorf("expected incomplete: %+v", f)
			}
		})
	}
}

func TestStateValid(t *testing.T) {
	for _, s := range []State{StateStart, StateAwaitingName, StateAwaitingConfirmation, StateAwaitingCorrectionValue} {
		if !s.Valid() {
			t.Errorf("expected %s valid", s)
		}
	}
	if State("collecting_phone").Valid() {
		t.Error("expected unknown state invalid")
	}
}
