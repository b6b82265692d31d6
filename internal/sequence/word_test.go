package sequence

import "testing"

func TestSimplify(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"", ""},
		{"A", "A"},
		{"AAAA", "A"},
		{"ABAB", "AB"},
		{"ABCABC", "ABC"},
		{"ABC", "ABC"},
		{"ABCAB", "ABCAB"},   // 5 has no period <= n/2
		{"ABAABA", "ABA"},    // period 3, not 2
		{"AABAAB", "AAB"},
		{"ABBA", "ABBA"},     // palindrome, not periodic
		{"αβαβ", "αβ"},       // multi-byte letters count as one symbol
	}
	for _, tt := range tests {
		if got := Simplify(tt.word); got != tt.want {
			t.Errorf("Simplify(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestSimplifyPrefersSmallestPeriod(t *testing.T) {
	// "AAAAAA" has periods 1, 2 and 3; the ascending scan must pick 1.
	if got := Simplify("AAAAAA"); got != "A" {
		t.Fatalf("Simplify(AAAAAA) = %q, want A", got)
	}
}

func TestWordConcatenatesRegularBeats(t *testing.T) {
	seq := NewSequence("test")
	seq = seq.AppendBeat(BeatData{Number: 1, Letter: "A"})
	seq = seq.AppendBeat(BeatData{Number: 2, Letter: "B"})
	if got := Word(seq); got != "AB" {
		t.Fatalf("Word = %q, want AB", got)
	}
}

func TestWordExcludesStartPosition(t *testing.T) {
	seq := NewSequence("test")
	seq = seq.WithStartPosition(NewStartPositionBeat(PictographData{Letter: "α"}))
	seq = seq.AppendBeat(BeatData{Number: 1, Letter: "A"})
	if got := Word(seq); got != "A" {
		t.Fatalf("Word = %q, want A", got)
	}
}

func TestWordEmptySequence(t *testing.T) {
	if got := Word(NewSequence("empty")); got != "" {
		t.Fatalf("Word(empty) = %q, want empty string", got)
	}
}
