package domain

import (
	"strings"
	"sync"
	"testing"
)

// drive runs the inputs through the engine in sequence and returns the final outcome.
func drive(t *testing.T, inputs ...string) Outcome {
	t.Helper()
	out := Outcome{Session: NewSession()}
	for _, input := range inputs {
		out = Transition(out.Session, input)
	}
	return out
}

func TestTransition_HappyPathCommits(t *testing.T) {
	out := drive(t, "hola", "juan pérez", "bucaramanga", "Calle 10 #5-20", "3", "efectivo", "confirmar")

	if out.Effect != EffectCommit {
		t.Fatalf("expected commit effect, got %v", out.Effect)
	}
	if out.Reply != MsgConfirmed {
		t.Fatalf("expected confirmation reply, got %q", out.Reply)
	}

	f := out.Session.Fields
	if f.Name != "Juan Pérez" {
		t.Errorf("expected title-cased name, got %q", f.Name)
	}
	if f.City != "Bucaramanga" {
		t.Errorf("expected canonical city, got %q", f.City)
	}
	if f.Address != "Calle 10 #5-20" {
		t.Errorf("unexpected address %q", f.Address)
	}
	if f.ServiceType != 3 {
		t.Errorf("expected service index 3, got %d", f.ServiceType)
	}
	if f.PaymentMethod != "efectivo" {
		t.Errorf("unexpected payment method %q", f.PaymentMethod)
	}
	if !f.Complete() {
		t.Error("expected complete fields at confirmation")
	}
}

func TestTransition_FirstMessageContentIsIgnored(t *testing.T) {
	out := Transition(NewSession(), "necesito un cerrajero urgente")

	if out.Session.State != StateAwaitingName {
		t.Fatalf("expected awaiting_name, got %s", out.Session.State)
	}
	if out.Reply != MsgWelcome {
		t.Fatalf("expected welcome, got %q", out.Reply)
	}
}

func TestTransition_EmptyNameReprompts(t *testing.T) {
	out := drive(t, "hola", "   ")

	if out.Session.State != StateAwaitingName {
		t.Fatalf("expected to stay in awaiting_name, got %s", out.Session.State)
	}
	if out.Reply != MsgEmptyName {
		t.Fatalf("expected empty-name prompt, got %q", out.Reply)
	}
}

func TestTransition_CityValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCity string
		wantOK   bool
	}{
		{"canonical", "Bucaramanga", "Bucaramanga", true},
		{"lowercase", "piedecuesta", "Piedecuesta", true},
		{"uppercase", "FLORIDABLANCA", "Floridablanca", true},
		{"padded", "  bucaramanga  ", "Bucaramanga", true},
		{"unserved", "Bogotá", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := drive(t, "hola", "Ana", tt.input)
			if tt.wantOK {
				if out.Session.State != StateAwaitingAddress {
					t.Fatalf("expected awaiting_address, got %s", out.Session.State)
				}
				if out.Session.Fields.City != tt.wantCity {
					t.Fatalf("expected city %q, got %q", tt.wantCity, out.Session.Fields.City)
				}
			} else {
				if out.Session.State != StateAwaitingCity {
					t.Fatalf("expected to stay in awaiting_city, got %s", out.Session.State)
				}
				if out.Reply != MsgInvalidCity {
					t.Fatalf("expected invalid-city prompt, got %q", out.Reply)
				}
			}
		})
	}
}

func TestTransition_ServiceIndexBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIndex int
		wantReply string
	}{
		{"lower bound", "1", 1, ""},
		{"upper bound", "13", 13, ""},
		{"zero", "0", 0, MsgInvalidServiceIndex()},
		{"above range", "14", 0, MsgInvalidServiceIndex()},
		{"negative", "-1", 0, MsgInvalidServiceIndex()},
		{"non numeric", "apertura", 0, MsgServiceNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := drive(t, "hola", "Ana", "bucaramanga", "Calle 1", tt.input)
			if tt.wantIndex > 0 {
				if out.Session.State != StateAwaitingPaymentMethod {
					t.Fatalf("expected awaiting_payment_method, got %s", out.Session.State)
				}
				if out.Session.Fields.ServiceType != tt.wantIndex {
					t.Fatalf("expected index %d, got %d", tt.wantIndex, out.Session.Fields.ServiceType)
				}
			} else {
				if out.Session.State != StateAwaitingServiceType {
					t.Fatalf("expected to stay in awaiting_service_type, got %s", out.Session.State)
				}
				if out.Reply != tt.wantReply {
					t.Fatalf("expected reply %q, got %q", tt.wantReply, out.Reply)
				}
			}
		})
	}
}

func TestTransition_SummaryListsCollectedFields(t *testing.T) {
	out := drive(t, "hola", "Ana María", "floridablanca", "Carrera 7 #12-30", "9", "nequi")

	if out.Session.State != StateAwaitingConfirmation {
		t.Fatalf("expected awaiting_confirmation, got %s", out.Session.State)
	}
	for _, want := range []string{"Ana María", "Floridablanca", "Carrera 7 #12-30", "Duplicado de llave", "nequi"} {
		if !strings.Contains(out.Reply, want) {
			t.Errorf("summary missing %q:\n%s", want, out.Reply)
		}
	}
}

func TestTransition_CancelFromAnyState(t *testing.T) {
	prefixes := [][]string{
		{"hola"},
		{"hola", "Ana"},
		{"hola", "Ana", "bucaramanga"},
		{"hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi"},
		{"hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi", "corregir"},
	}

	for _, prefix := range prefixes {
		out := drive(t, append(prefix, "SALIR")...)
		if out.Effect != EffectCancel {
			t.Fatalf("expected cancel effect after %v, got %v", prefix, out.Effect)
		}
		if out.Reply != MsgCancelled {
			t.Fatalf("expected cancel reply, got %q", out.Reply)
		}
	}
}

func TestTransition_RestartKeepsDedupWindow(t *testing.T) {
	out := drive(t, "hola", "Ana", "bucaramanga")
	out.Session.MarkProcessed("SM1", 20)
	out.Session.MarkProcessed("SM2", 20)

	restarted := Transition(out.Session, "reiniciar")

	if restarted.Session.State != StateAwaitingName {
		t.Fatalf("expected awaiting_name after restart, got %s", restarted.Session.State)
	}
	if restarted.Reply != MsgWelcome {
		t.Fatalf("expected welcome after restart, got %q", restarted.Reply)
	}
	if restarted.Session.Fields != (Fields{}) {
		t.Errorf("expected cleared fields, got %+v", restarted.Session.Fields)
	}
	if !restarted.Session.Seen("SM1") || !restarted.Session.Seen("SM2") {
		t.Error("expected dedup window to survive restart")
	}
}

func TestTransition_CorrectionChangesOnlyTargetField(t *testing.T) {
	out := drive(t, "hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi",
		"corregir", "ciudad", "piedecuesta")

	if out.Session.State != StateAwaitingConfirmation {
		t.Fatalf("expected return to confirmation, got %s", out.Session.State)
	}
	f := out.Session.Fields
	if f.City != "Piedecuesta" {
		t.Errorf("expected corrected city, got %q", f.City)
	}
	if f.Name != "Ana" || f.Address != "Calle 1" || f.ServiceType != 2 || f.PaymentMethod != "nequi" {
		t.Errorf("expected other fields untouched, got %+v", f)
	}
	if out.Session.CorrectionTarget != "" {
		t.Errorf("expected cleared correction target, got %q", out.Session.CorrectionTarget)
	}
}

func TestTransition_CorrectionRejectsUnknownField(t *testing.T) {
	out := drive(t, "hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi",
		"corregir", "telefono")

	if out.Session.State != StateAwaitingCorrectionChoice {
		t.Fatalf("expected to stay choosing, got %s", out.Session.State)
	}
	if out.Reply != MsgInvalidCorrection {
		t.Fatalf("expected invalid-correction prompt, got %q", out.Reply)
	}
}

func TestTransition_InvalidCorrectionValueReprompts(t *testing.T) {
	out := drive(t, "hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi",
		"corregir", "ciudad", "medellín")

	if out.Session.State != StateAwaitingCorrectionValue {
		t.Fatalf("expected to stay in correction value state, got %s", out.Session.State)
	}
	if out.Session.CorrectionTarget != CorrectionCity {
		t.Fatalf("expected remembered target, got %q", out.Session.CorrectionTarget)
	}
	if out.Reply != MsgInvalidCity {
		t.Fatalf("expected invalid-city prompt, got %q", out.Reply)
	}
}

func TestTransition_ConfirmationRejectsOtherInput(t *testing.T) {
	out := drive(t, "hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi", "sí")

	if out.Effect != EffectNone {
		t.Fatalf("expected no effect, got %v", out.Effect)
	}
	if out.Reply != MsgConfirmOptions {
		t.Fatalf("expected options prompt, got %q", out.Reply)
	}
}

func TestTransition_UnknownStateResetsButKeepsWindow(t *testing.T) {
	sess := Session{State: State("migrated_away"), RecentMessageIDs: []string{"SM9"}}

	out := Transition(sess, "hola")

	if out.Session.State != StateStart {
		t.Fatalf("expected fresh start state, got %s", out.Session.State)
	}
	if out.Reply != MsgSessionReset {
		t.Fatalf("expected reset notice, got %q", out.Reply)
	}
	if !out.Session.Seen("SM9") {
		t.Error("expected dedup window to survive the reset")
	}
}

func TestTransition_CorruptCorrectionTargetResets(t *testing.T) {
	sess := Session{
		State:            StateAwaitingCorrectionValue,
		CorrectionTarget: "telefono",
		RecentMessageIDs: []string{"SM1"},
	}

	out := Transition(sess, "cualquier cosa")

	if out.Session.State != StateStart {
		t.Fatalf("expected fresh session, got %s", out.Session.State)
	}
	if out.Reply != MsgSessionReset {
		t.Fatalf("expected reset notice, got %q", out.Reply)
	}
	if !out.Session.Seen("SM1") {
		t.Error("expected dedup window to survive the reset")
	}
}

func TestTransition_KeywordsAreCaseInsensitive(t *testing.T) {
	out := drive(t, "hola", "Ana", "bucaramanga", "Calle 1", "2", "nequi", "  CONFIRMAR  ")

	if out.Effect != EffectCommit {
		t.Fatalf("expected commit effect, got %v", out.Effect)
	}
}

// Webhook handlers call Transition concurrently for different senders; the
// title-casing path must hold up under the race detector.
func TestTransition_ConcurrentNameCollection(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess := NewSession()
			sess.State = StateAwaitingName
			out := Transition(sess, "juan pérez")
			results[i] = out.Session.Fields.Name
		}(i)
	}
	wg.Wait()

	for i, name := range results {
		if name != "Juan Pérez" {
			t.Errorf("goroutine %d: expected %q, got %q", i, "Juan Pérez", name)
		}
	}
}
