// Package transform implements the circular (CAP) builder and the
// whole-sequence transformations. Transforms act at position-label
// granularity: coarse start/end positions map through the grid tables and
// the channel swap exchanges motion records verbatim; motion trajectories
// otherwise carry over unchanged.
package transform

import "github.com/jask/jaskseq/internal/sequence"

// rotateBeat maps both coarse positions 180 degrees around the grid.
// Letters, numbering and motions stay put.
func rotateBeat(b sequence.BeatData) sequence.BeatData {
	out := b.Clone()
	out.Pictograph.StartPos = sequence.RotatePosition(out.Pictograph.StartPos)
	out.Pictograph.EndPos = sequence.RotatePosition(out.Pictograph.EndPos)
	return out
}

// mirrorBeat reflects both coarse positions across the vertical axis.
func mirrorBeat(b sequence.BeatData) sequence.BeatData {
	out := b.Clone()
	out.Pictograph.StartPos = sequence.MirrorPosition(out.Pictograph.StartPos)
	out.Pictograph.EndPos = sequence.MirrorPosition(out.Pictograph.EndPos)
	return out
}

// swapBeat exchanges the blue and red motion records. A channel absent on
// one side ends up absent on the other.
func swapBeat(b sequence.BeatData) sequence.BeatData {
	out := b.Clone()
	if out.Pictograph.Motions == nil {
		return out
	}
	blue, hasBlue := out.Pictograph.Motions[sequence.ChannelBlue]
	red, hasRed := out.Pictograph.Motions[sequence.ChannelRed]
	delete(out.Pictograph.Motions, sequence.ChannelBlue)
	delete(out.Pictograph.Motions, sequence.ChannelRed)
	if hasBlue {
		out.Pictograph.Motions[sequence.ChannelRed] = blue
	}
	if hasRed {
		out.Pictograph.Motions[sequence.ChannelBlue] = red
	}
	return out
}

// complementaryBeat rotates then mirrors. The two tables commute, so this
// is its own inverse like the others.
func complementaryBeat(b sequence.BeatData) sequence.BeatData {
	return mirrorBeat(rotateBeat(b))
}

// Mirror reflects every beat of the sequence, start position included.
func Mirror(s sequence.SequenceData) sequence.SequenceData {
	return mapBeats(s, mirrorBeat)
}

// Rotate turns every beat of the sequence 180 degrees, start position
// included.
func Rotate(s sequence.SequenceData) sequence.SequenceData {
	return mapBeats(s, rotateBeat)
}

// SwapChannels exchanges the blue and red motions on every beat, start
// position included.
func SwapChannels(s sequence.SequenceData) sequence.SequenceData {
	return mapBeats(s, swapBeat)
}

func mapBeats(s sequence.SequenceData, f func(sequence.BeatData) sequence.BeatData) sequence.SequenceData {
	beats := make([]sequence.BeatData, len(s.Beats))
	for i, b := range s.Beats {
		beats[i] = f(b)
	}
	return s.WithBeats(beats)
}
