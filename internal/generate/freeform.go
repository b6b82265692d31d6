package generate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jask/jaskseq/internal/sequence"
)

// Freeform is the seeded base generator: a random walk through the
// vocabulary where every beat begins at the previous beat's end position.
// The same seed always yields the same walk.
type Freeform struct {
	data *Dataset
	rng  *rand.Rand
}

// NewFreeform returns a generator over data seeded with seed.
func NewFreeform(data *Dataset, seed int64) *Freeform {
	return &Freeform{data: data, rng: rand.New(rand.NewSource(seed))}
}

// Generate returns length beats numbered 1..length, chained so each beat
// starts where the previous ended.
func (g *Freeform) Generate(length int) ([]sequence.BeatData, error) {
	if length < 1 {
		return nil, fmt.Errorf("generate %d beats: length must be at least 1", length)
	}
	cur := g.start()
	beats := make([]sequence.BeatData, 0, length)
	for i := 0; i < length; i++ {
		options := g.data.OptionsFrom(cur)
		if len(options) == 0 {
			return nil, fmt.Errorf("generate beat %d: no continuation from %s", i+1, cur)
		}
		pick := options[g.rng.Intn(len(options))]
		beats = append(beats, sequence.BeatData{
			Number:     i + 1,
			Letter:     pick.Letter,
			Pictograph: pick,
			Duration:   1,
		})
		cur = pick.EndPos
	}
	return beats, nil
}

// start picks among the Greek entries whose position has continuations.
// Γ sits on the gamma ring, outside the diamond vocabulary, so in practice
// the walk opens from α or β.
func (g *Freeform) start() sequence.Position {
	candidates := make([]sequence.Position, 0, 3)
	for _, p := range g.data.StartPositions() {
		if len(g.data.byStart[p.EndPos]) > 0 {
			candidates = append(candidates, p.EndPos)
		}
	}
	if len(candidates) == 0 {
		return sequence.PosAlpha1
	}
	return candidates[g.rng.Intn(len(candidates))]
}

// StartPositionFor derives the static Greek pictograph anchoring the first
// beat of a generated base, so a fresh sequence can open with a start
// position matching where its beats begin.
func StartPositionFor(first sequence.BeatData) sequence.PictographData {
	pos := first.Pictograph.StartPos
	motions := make(map[sequence.Channel]sequence.MotionData, len(first.Pictograph.Motions))
	for ch, m := range first.Pictograph.Motions {
		motions[ch] = sequence.MotionData{
			MotionType: sequence.MotionStatic,
			RotDir:     sequence.RotationNone,
			StartLoc:   m.StartLoc,
			EndLoc:     m.StartLoc,
			StartOri:   m.StartOri,
			EndOri:     m.StartOri,
		}
	}
	return sequence.PictographData{
		Letter:   greekFor(pos),
		StartPos: pos,
		EndPos:   pos,
		Motions:  motions,
	}
}

func greekFor(pos sequence.Position) string {
	switch {
	case strings.HasPrefix(string(pos), "beta"):
		return "β"
	case strings.HasPrefix(string(pos), "gamma"):
		return "Γ"
	}
	return "α"
}
