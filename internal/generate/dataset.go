// Package generate produces base beat patterns from a built-in pictograph
// vocabulary. The freeform generator chains vocabulary entries so every
// beat starts where the previous one ended; the transformation engine then
// extends such bases into circular sequences.
package generate

import (
	"fmt"

	"github.com/jask/jaskseq/internal/sequence"
)

// Dataset is the diamond-mode pictograph vocabulary: twelve letters over
// the four cardinal alpha and beta positions, plus the static Greek
// entries used as start positions. Entries are immutable; callers receive
// clones.
type Dataset struct {
	all     []sequence.PictographData
	byStart map[sequence.Position][]sequence.PictographData
	starts  []sequence.PictographData
}

// NewDataset builds the vocabulary.
func NewDataset() *Dataset {
	d := &Dataset{byStart: make(map[sequence.Position][]sequence.PictographData)}
	for _, k := range []int{1, 3, 5, 7} {
		d.add(alphaToAlpha(k)...)
		d.add(alphaToBeta(k)...)
		d.add(betaToBeta(k)...)
		d.add(betaToAlpha(k)...)
	}
	d.starts = []sequence.PictographData{
		staticEntry("α", sequence.PosAlpha1, sequence.LocNorth, sequence.LocSouth),
		staticEntry("β", sequence.PosBeta5, sequence.LocSouth, sequence.LocSouth),
		staticEntry("Γ", sequence.PosGamma11, sequence.LocEast, sequence.LocSouth),
	}
	return d
}

// All returns every regular vocabulary entry.
func (d *Dataset) All() []sequence.PictographData {
	out := make([]sequence.PictographData, 0, len(d.all))
	for _, p := range d.all {
		out = append(out, p.Clone())
	}
	return out
}

// OptionsFrom returns the entries whose start position matches pos — the
// legal continuations for a sequence currently ending there.
func (d *Dataset) OptionsFrom(pos sequence.Position) []sequence.PictographData {
	entries := d.byStart[pos]
	out := make([]sequence.PictographData, 0, len(entries))
	for _, p := range entries {
		out = append(out, p.Clone())
	}
	return out
}

// StartPositions returns the static Greek entries offered when a sequence
// has no start position yet.
func (d *Dataset) StartPositions() []sequence.PictographData {
	out := make([]sequence.PictographData, 0, len(d.starts))
	for _, p := range d.starts {
		out = append(out, p.Clone())
	}
	return out
}

func (d *Dataset) add(entries ...sequence.PictographData) {
	for _, p := range entries {
		d.all = append(d.all, p)
		d.byStart[p.StartPos] = append(d.byStart[p.StartPos], p)
	}
}

// wrap keeps a compass index on the 1..8 ring.
func wrap(k int) int { return (k-1+8)%8 + 1 }

func alphaPos(k int) sequence.Position { return sequence.Position(fmt.Sprintf("alpha%d", wrap(k))) }
func betaPos(k int) sequence.Position  { return sequence.Position(fmt.Sprintf("beta%d", wrap(k))) }

// compassLoc maps a position index to its grid point.
var compassLoc = map[int]sequence.Location{
	1: sequence.LocNorth, 2: sequence.LocNortheast,
	3: sequence.LocEast, 4: sequence.LocSoutheast,
	5: sequence.LocSouth, 6: sequence.LocSouthwest,
	7: sequence.LocWest, 8: sequence.LocNorthwest,
}

func loc(k int) sequence.Location { return compassLoc[wrap(k)] }

func pro(from, to int) sequence.MotionData {
	return sequence.MotionData{
		MotionType: sequence.MotionPro, RotDir: sequence.RotationCW,
		StartLoc: loc(from), EndLoc: loc(to),
		StartOri: sequence.OrientIn, EndOri: sequence.OrientIn,
	}
}

func anti(from, to int) sequence.MotionData {
	return sequence.MotionData{
		MotionType: sequence.MotionAnti, RotDir: sequence.RotationCCW,
		StartLoc: loc(from), EndLoc: loc(to),
		StartOri: sequence.OrientIn, EndOri: sequence.OrientIn,
	}
}

func static(at int) sequence.MotionData {
	return sequence.MotionData{
		MotionType: sequence.MotionStatic, RotDir: sequence.RotationNone,
		StartLoc: loc(at), EndLoc: loc(at),
		StartOri: sequence.OrientIn, EndOri: sequence.OrientIn,
	}
}

func dash(from, to int) sequence.MotionData {
	return sequence.MotionData{
		MotionType: sequence.MotionDash, RotDir: sequence.RotationNone,
		StartLoc: loc(from), EndLoc: loc(to),
		StartOri: sequence.OrientIn, EndOri: sequence.OrientIn,
	}
}

func entry(letter string, start, end sequence.Position, blue, red sequence.MotionData) sequence.PictographData {
	return sequence.PictographData{
		Letter:   letter,
		StartPos: start,
		EndPos:   end,
		Motions: map[sequence.Channel]sequence.MotionData{
			sequence.ChannelBlue: blue,
			sequence.ChannelRed:  red,
		},
	}
}

func staticEntry(letter string, pos sequence.Position, blueAt, redAt sequence.Location) sequence.PictographData {
	blue := sequence.MotionData{MotionType: sequence.MotionStatic, RotDir: sequence.RotationNone,
		StartLoc: blueAt, EndLoc: blueAt, StartOri: sequence.OrientIn, EndOri: sequence.OrientIn}
	red := sequence.MotionData{MotionType: sequence.MotionStatic, RotDir: sequence.RotationNone,
		StartLoc: redAt, EndLoc: redAt, StartOri: sequence.OrientIn, EndOri: sequence.OrientIn}
	return entry(letter, pos, pos, blue, red)
}

// alphaToAlpha: hands opposite throughout. A quarter-turns clockwise,
// B counter-clockwise, C crosses to the far side.
func alphaToAlpha(k int) []sequence.PictographData {
	return []sequence.PictographData{
		entry("A", alphaPos(k), alphaPos(k+2), pro(k, k+2), pro(k+4, k+6)),
		entry("B", alphaPos(k), alphaPos(k-2), anti(k, k-2), anti(k+4, k+2)),
		entry("C", alphaPos(k), alphaPos(k+4), pro(k, k+4), anti(k+4, k)),
	}
}

// alphaToBeta: the hands converge onto one point.
func alphaToBeta(k int) []sequence.PictographData {
	return []sequence.PictographData{
		entry("J", alphaPos(k), betaPos(k+2), pro(k, k+2), anti(k+4, k+2)),
		entry("K", alphaPos(k), betaPos(k-2), anti(k, k-2), pro(k+4, k+6)),
		entry("L", alphaPos(k), betaPos(k+4), pro(k, k+4), static(k+4)),
	}
}

// betaToBeta: hands stay together and orbit.
func betaToBeta(k int) []sequence.PictographData {
	return []sequence.PictographData{
		entry("G", betaPos(k), betaPos(k+2), pro(k, k+2), pro(k, k+2)),
		entry("H", betaPos(k), betaPos(k-2), anti(k, k-2), anti(k, k-2)),
		entry("I", betaPos(k), betaPos(k+4), pro(k, k+4), anti(k, k+4)),
	}
}

// betaToAlpha: the hands split apart again.
func betaToAlpha(k int) []sequence.PictographData {
	return []sequence.PictographData{
		entry("D", betaPos(k), alphaPos(k+2), pro(k, k+2), anti(k, k+6)),
		entry("E", betaPos(k), alphaPos(k-2), anti(k, k-2), pro(k, k+2)),
		entry("F", betaPos(k), alphaPos(k), static(k), dash(k, k+4)),
	}
}
