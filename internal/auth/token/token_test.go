package token

import "testing"

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateRandomToken(48)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a == "" || a == b {
		t.Errorf("expected distinct non-empty tokens, got %q and %q", a, b)
	}
}

func TestHashSHA256(t *testing.T) {
	got := HashSHA256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("HashSHA256(\"abc\") = %q, want %q", got, want)
	}
	if HashSHA256("abc") != got {
		t.Error("expected a deterministic digest")
	}
}
