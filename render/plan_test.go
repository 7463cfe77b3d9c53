package render

import "testing"

func TestPlanLines(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLine1  int
		maxLine2  int
		wantLine1 string
		wantLine2 string
	}{
		// Single word: line2 always empty
		{"single word", "Alexandra", 15, 15, "Alexandra", ""},
		{"single word over cap", "Bartholomew", 10, 10, "Bartholome.", ""},
		{"empty name", "", 15, 15, "", ""},
		{"whitespace only", "   \t  ", 15, 15, "", ""},

		// Two words: single split point, valid when both fit
		{"two words", "Alexander Smith", 10, 10, "Alexander", "Smith"},
		{"two words default caps", "Alexander Smith", 15, 15, "Alexander", "Smith"},

		// Three words: best-balanced split wins, earliest split on ties.
		// "Maria" / "Garcia Lopez" and "Maria Garcia" / "Lopez" both
		// have diff 7; the earlier split is kept.
		{"tie broken by earliest split", "Maria Garcia Lopez", 15, 15, "Maria", "Garcia Lopez"},
		{"later split wins on balance", "Ab Cd Efg", 15, 15, "Ab Cd", "Efg"},
		{"early split dropped by cap", "Jo Anne Featherstone", 15, 15, "Jo Anne", "Featherstone"},

		// Internal whitespace runs collapse before splitting
		{"collapsed whitespace", "Maria   Garcia \t Lopez", 15, 15, "Maria", "Garcia Lopez"},

		// Caps filter out splits before balancing
		{"cap forces unbalanced split", "Anna Christiansen", 15, 15, "Anna", "Christiansen"},

		// Greedy fallback when no split satisfies both caps
		{"fallback first word too long", "Bartholomew Montgomery Fitzgerald", 10, 10, "Bartholome.", "Montgomery."},
		{"fallback packs line1", "Ana Lou Montgomeryshire Fitzwilliam", 8, 10, "Ana Lou", "Montgomery."},

		// Caps below 1 clamp to 1
		{"zero caps clamp", "Jo Li", 0, 0, "J.", "L."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanLines(tt.input, tt.maxLine1, tt.maxLine2)
			if got.Line1 != tt.wantLine1 || got.Line2 != tt.wantLine2 {
				t.Errorf("PlanLines(%q, %d, %d) = {%q, %q}, want {%q, %q}",
					tt.input, tt.maxLine1, tt.maxLine2,
					got.Line1, got.Line2, tt.wantLine1, tt.wantLine2)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     string
	}{
		{"fits unchanged", "Maria", 15, "Maria"},
		{"exact fit unchanged", "Maria", 5, "Maria"},
		{"cut appends marker", "Bartholomew", 10, "Bartholome."},
		{"cut strips trailing whitespace", "Jo  Anne", 4, "Jo."},
		{"zero cap", "Maria", 0, ""},
		{"negative cap", "Maria", -3, ""},
		{"empty text", "", 5, ""},
		{"multibyte runes", "Łukasz Grzegorz", 8, "Łukasz G."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.maxChars); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.maxChars, got, tt.want)
			}
		})
	}
}

// Truncating an already-truncated string again must yield the same
// string: the marker pushes the length to cap+1, and a second pass cuts
// back to the cap and re-appends the same marker.
func TestTruncateIdempotent(t *testing.T) {
	inputs := []string{"Bartholomew", "Montgomery Fitzgerald", "Jo", "Christiansen  "}
	caps := []int{1, 4, 10, 15}

	for _, in := range inputs {
		for _, max := range caps {
			once := Truncate(in, max)
			twice := Truncate(once, max)
			if once != twice {
				t.Errorf("Truncate not idempotent at cap %d: %q -> %q -> %q", max, in, once, twice)
			}
		}
	}
}
