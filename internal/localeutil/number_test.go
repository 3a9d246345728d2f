package localeutil

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in        string
		wantVal   float64
		wantInt   bool
		wantOK    bool
	}{
		{"42", 42, true, true},
		{"-7", -7, true, true},
		{"3.14", 3.14, false, true},
		{"-0.5", -0.5, false, true},
		{"", 0, false, false},
		{"-", 0, false, false},
		{"12.34.56", 0, false, false},
		{"12a", 0, false, false},
	}

	for _, tt := range tests {
		val, isInt, ok := ParseNumber(tt.in)
		if ok != tt.wantOK {
			t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
		}

		if !ok {
			continue
		}

		if val != tt.wantVal || isInt != tt.wantInt {
			t.Errorf("ParseNumber(%q) = (%v, %v), want (%v, %v)", tt.in, val, isInt, tt.wantVal, tt.wantInt)
		}
	}
}

func TestShouldUseYearForm(t *testing.T) {
	tests := []struct {
		n    int64
		want bool
	}{
		{1000, false},
		{1001, true},
		{1984, true},
		{2999, true},
		{3000, false},
		{500, false},
		{-1984, false},
	}

	for _, tt := range tests {
		if got := ShouldUseYearForm(tt.n); got != tt.want {
			t.Errorf("ShouldUseYearForm(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestSpellYear(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1984, "nineteen eighty-four"},
		{1905, "nineteen oh five"},
		{1900, "nineteen hundred"},
		{2000, "twenty hundred"},
		{2024, "twenty twenty-four"},
	}

	for _, tt := range tests {
		if got := SpellYear(tt.n); got != tt.want {
			t.Errorf("SpellYear(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSpellCardinal(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{42, "forty-two"},
		{100, "one hundred"},
		{101, "one hundred one"},
		{3500, "three thousand five hundred"},
		{-5, "negative five"},
	}

	for _, tt := range tests {
		if got := SpellCardinal(tt.n); got != tt.want {
			t.Errorf("SpellCardinal(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSpell_RoutesYearVsCardinal(t *testing.T) {
	if got := Spell(1984, true); got != "nineteen eighty-four" {
		t.Errorf("Spell(1984, true) = %q, want year form", got)
	}

	if got := Spell(500, true); got != "five hundred" {
		t.Errorf("Spell(500, true) = %q, want cardinal form", got)
	}

	if got := Spell(3.5, false); got != "three point five" {
		t.Errorf("Spell(3.5, false) = %q, want %q", got, "three point five")
	}
}
