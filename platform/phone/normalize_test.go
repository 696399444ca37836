package phone

import "testing"

func TestNormalizeSender(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"channel qualified", "whatsapp:+573001234567", "CO", "3001234567"},
		{"bare e164", "+573001234567", "CO", "3001234567"},
		{"national digits", "3001234567", "CO", "3001234567"},
		{"padded", "  whatsapp:+573001234567  ", "CO", "3001234567"},
		{"garbage degrades to digits", "whatsapp:abc123", "CO", "123"},
		{"empty", "", "CO", ""},
		{"colon only", "whatsapp:", "CO", ""},
		{"empty region falls back", "whatsapp:+573001234567", "", "3001234567"},
		{"configured region", "whatsapp:2025550123", "US", "2025550123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSender(tt.input, tt.region); got != tt.want {
				t.Errorf("NormalizeSender(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
		})
	}
}

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"national mobile", "3001234567", "CO", "+573001234567"},
		{"already e164", "+573001234567", "CO", "+573001234567"},
		{"unparseable returns input", "not-a-number", "CO", "not-a-number"},
		{"empty", "", "CO", ""},
		{"configured region", "2025550123", "US", "+12025550123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input, tt.region); got != tt.want {
				t.Errorf("NormalizeE164(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
		})
	}
}
