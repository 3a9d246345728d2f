package localeutil

import "testing"

func TestSentences(t *testing.T) {
	got := Sentences("Hello there. How are you? Fine!")
	if len(got) != 3 {
		t.Fatalf("Sentences() = %v, want 3 sentences", got)
	}
}

func TestSentences_Empty(t *testing.T) {
	if got := Sentences(""); len(got) != 0 {
		t.Fatalf("Sentences(\"\") = %v, want empty", got)
	}
}

func TestSentences_PreservesLeadingSpace(t *testing.T) {
	// A caller-prepended leading space (the text normalizer's own
	// preprocessing step) must survive segmentation untrimmed; only
	// whitespace-only segments are dropped, never whitespace within a
	// kept segment.
	got := Sentences(" hello there.")
	if len(got) != 1 {
		t.Fatalf("Sentences() = %v, want 1 sentence", got)
	}

	if got[0][0] != ' ' {
		t.Errorf("Sentences()[0] = %q, want it to retain its leading space", got[0])
	}
}

func TestSentences_DropsWhitespaceOnlySegments(t *testing.T) {
	got := Sentences("hello.   ")
	for _, s := range got {
		if s == "" {
			t.Errorf("Sentences() contains an empty segment: %v", got)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("it costs 42 dollars.")

	if len(got) == 0 {
		t.Fatal("Words() returned nothing")
	}

	var sawNumeric bool

	for _, w := range got {
		if w.Text == "42" {
			sawNumeric = true
			if !w.IsNumeric {
				t.Error("word '42' should be classified numeric")
			}
		}
	}

	if !sawNumeric {
		t.Fatalf("expected to find token '42' in %v", got)
	}
}

func TestGraphemes(t *testing.T) {
	got := Graphemes("abc")
	if len(got) != 3 {
		t.Fatalf("Graphemes(abc) = %v, want 3 clusters", got)
	}
}
