package textproc

import (
	"strings"
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "CYCLONE PAM", "cyclone pam"},
		{"strips diacritics", "Médecins Sans Frontières", "medecins sans frontieres"},
		{"collapses whitespace", "  a \t b\n\nc  ", "a b c"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_noMarksNoUppercase(t *testing.T) {
	inputs := []string{"Ångström", "naïve café", "PORT VILA — Nuku'alofa", "Ça va très bien"}
	for _, in := range inputs {
		got := Normalize(in)
		for _, r := range got {
			if unicode.IsUpper(r) {
				t.Errorf("Normalize(%q) contains uppercase rune %q", in, r)
			}
			if unicode.Is(unicode.Mn, r) {
				t.Errorf("Normalize(%q) contains combining mark %q", in, r)
			}
		}
	}
}

func TestNormalize_idempotent(t *testing.T) {
	inputs := []string{"Événement   Cyclonique", "plain text", "  MIXED  Case\twords "}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps case and punctuation", "Rebuild: roads, bridges!", "Rebuild: roads, bridges!"},
		{"strips specials", "cost@#$ estimate", "cost estimate"},
		{"collapses periods", "wait..... done", "wait... done"},
		{"collapses hyphens", "a ----- b", "a -- b"},
		{"trims", "  x  ", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_idempotent(t *testing.T) {
	inputs := []string{"a....b --- c @@ d", "Plan (draft) -- v2...", "Émergence #1"}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	text := "Recovery recovery RECOVERY housing housing plan for the island"
	got := ExtractKeywords(text, 3)
	if len(got) == 0 {
		t.Fatal("expected keywords")
	}
	if got[0] != "recovery" {
		t.Errorf("most frequent first: got %q", got[0])
	}
	if got[1] != "housing" {
		t.Errorf("second most frequent: got %q", got[1])
	}
}

func TestExtractKeywords_filters(t *testing.T) {
	got := ExtractKeywords("the and is at of reconstruction aid", 3)
	for _, kw := range got {
		if _, stop := stopWords[kw]; stop {
			t.Errorf("stop word %q returned", kw)
		}
		if len(kw) < 3 {
			t.Errorf("keyword %q shorter than min length", kw)
		}
	}
	found := false
	for _, kw := range got {
		if kw == "reconstruction" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'reconstruction' in keywords")
	}
}

func TestExtractKeywords_tieOrder(t *testing.T) {
	// Equal counts keep first-seen order.
	got := ExtractKeywords("alpha beta gamma", 3)
	want := []string{"alpha", "beta", "gamma"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractKeywords_cap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		for j := 0; j <= i; j++ {
			b.WriteString("word")
			b.WriteByte(byte('a' + i%26))
			b.WriteString(string(rune('a' + i/26)))
			b.WriteByte(' ')
		}
	}
	got := ExtractKeywords(b.String(), 3)
	if len(got) > MaxKeywords {
		t.Errorf("expected at most %d keywords, got %d", MaxKeywords, len(got))
	}
}
