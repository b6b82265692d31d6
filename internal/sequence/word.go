package sequence

import "strings"

// Word concatenates the letters of the regular beats in order. The start
// position never contributes; an empty sequence yields "".
func Word(s SequenceData) string {
	var sb strings.Builder
	for _, b := range s.RegularBeats() {
		sb.WriteString(b.Letter)
	}
	return sb.String()
}

// Simplify reduces word to its minimal repeating unit: the smallest period
// k (1 <= k <= n/2 dividing n) whose block repeats across the whole word.
// Words with no such period come back unchanged. Periods are scanned
// ascending so the smallest wins.
func Simplify(word string) string {
	runes := []rune(word)
	n := len(runes)
	for k := 1; k <= n/2; k++ {
		if n%k != 0 {
			continue
		}
		if repeats(runes, k) {
			return string(runes[:k])
		}
	}
	return word
}

// repeats reports whether runes is the block runes[0:k] repeated end to end.
func repeats(runes []rune, k int) bool {
	for i := k; i < len(runes); i++ {
		if runes[i] != runes[i-k] {
			return false
		}
	}
	return true
}
