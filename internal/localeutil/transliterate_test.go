package localeutil

import "testing"

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"café", "cafe"},
		{"naïve", "naive"},
		{"hello", "hello"},
		{"Müller", "Muller"},
	}

	for _, tt := range tests {
		if got := Transliterate(tt.in); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
