package sequence

// NextBeatNumber returns the number the next regular beat should take.
// An empty sequence starts at 1. When the sequence opens with a flagged
// start position, that entry is excluded from the count.
func NextBeatNumber(s SequenceData) int {
	if len(s.Beats) == 0 {
		return 1
	}
	if _, ok := s.StartPosition(); ok {
		return len(s.Beats)
	}
	return len(s.Beats) + 1
}

// NewBeatFromPictograph builds the next regular beat for the sequence:
// number from NextBeatNumber, unit duration, letter taken from the
// pictograph.
func NewBeatFromPictograph(p PictographData, s SequenceData) BeatData {
	return BeatData{
		Number:     NextBeatNumber(s),
		Letter:     p.Letter,
		Pictograph: p.Clone(),
		Duration:   1.0,
		Metadata:   map[string]any{},
	}
}

// NewStartPositionBeat wraps a pictograph as the reserved zero-numbered
// start-position beat.
func NewStartPositionBeat(p PictographData) BeatData {
	return BeatData{
		Number:     0,
		Letter:     p.Letter,
		Pictograph: p.Clone(),
		Duration:   1.0,
		Metadata:   map[string]any{MetaStartPosition: true},
	}
}
