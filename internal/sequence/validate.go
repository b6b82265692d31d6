package sequence

import "fmt"

// ValidationError reports an invariant violation on a beat or sequence.
// Index is the offending position within the sequence's beats, or -1 when
// the error is not positional.
type ValidationError struct {
	Index int
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return "invalid beat: " + e.Msg
	}
	return fmt.Sprintf("invalid sequence at beat index %d: %s", e.Index, e.Msg)
}

func beatErr(msg string) error         { return &ValidationError{Index: -1, Msg: msg} }
func seqErr(i int, msg string) error   { return &ValidationError{Index: i, Msg: msg} }
func seqErrf(i int, format string, args ...any) error {
	return &ValidationError{Index: i, Msg: fmt.Sprintf(format, args...)}
}

// ValidateBeat checks a single beat's required fields.
func ValidateBeat(b BeatData) error {
	if b.Number < 0 {
		return beatErr(fmt.Sprintf("beat number %d is negative", b.Number))
	}
	if b.Letter == "" {
		return beatErr("letter is required")
	}
	return nil
}

// ValidateSequence checks the sequence-wide numbering invariants: an
// optional flagged start position first, then regular beats running a
// contiguous 1..N with no gaps or duplicates. The first offending index is
// reported.
func ValidateSequence(s SequenceData) error {
	next := 1
	for i, b := range s.Beats {
		if b.Number == 0 {
			if i != 0 {
				return seqErr(i, "start position must be the first entry")
			}
			if !b.IsStartPosition() {
				return seqErr(i, "beat number 0 is reserved for the start position")
			}
			continue
		}
		if b.IsStartPosition() {
			return seqErrf(i, "start position carries beat number %d, want 0", b.Number)
		}
		if b.Number != next {
			return seqErrf(i, "beat number %d out of order, want %d", b.Number, next)
		}
		next++
	}
	return nil
}
