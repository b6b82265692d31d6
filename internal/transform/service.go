package transform

import (
	"fmt"

	"github.com/jask/jaskseq/internal/generate"
	"github.com/jask/jaskseq/internal/sequence"
)

// Operation names a transformation the service can apply to the current
// sequence.
type Operation string

const (
	OpMirror   Operation = "mirror"
	OpRotate   Operation = "rotate"
	OpSwap     Operation = "swap"
	OpCircular Operation = "circular"
	OpFreeform Operation = "freeform"
)

// Params carries the operation inputs. CAP and Slice matter only to the
// circular build; Length only to the generating operations.
type Params struct {
	CAP    CAPType
	Slice  SliceSize
	Length int
}

// Transformer applies operations over sequences. The whole-sequence
// transforms rework the current beats in place; the generating operations
// replace them with fresh material from the base generator.
type Transformer struct {
	gen BaseGenerator
}

// NewTransformer returns a Transformer drawing generated bases from gen.
func NewTransformer(gen BaseGenerator) *Transformer {
	return &Transformer{gen: gen}
}

// Apply dispatches op over cur and returns the resulting sequence. The
// sequence identity and name carry over; generated results open with a
// start position anchoring their first beat.
func (t *Transformer) Apply(cur sequence.SequenceData, op Operation, p Params) (sequence.SequenceData, error) {
	switch op {
	case OpMirror:
		return Mirror(cur), nil
	case OpRotate:
		return Rotate(cur), nil
	case OpSwap:
		return SwapChannels(cur), nil
	case OpCircular:
		beats, err := Circular(t.gen, CAPParams{Type: p.CAP, Slice: p.Slice, Length: p.Length})
		if err != nil {
			return sequence.SequenceData{}, err
		}
		return t.generated(cur, beats), nil
	case OpFreeform:
		if p.Length < 1 {
			return sequence.SequenceData{}, fmt.Errorf("freeform build: length %d, need at least 1", p.Length)
		}
		beats, err := t.gen.Generate(p.Length)
		if err != nil {
			return sequence.SequenceData{}, fmt.Errorf("freeform build: %w", err)
		}
		return t.generated(cur, beats), nil
	}
	return sequence.SequenceData{}, fmt.Errorf("unknown transformation %q", op)
}

// generated swaps cur's beats for the generated run and anchors it with a
// derived start position.
func (t *Transformer) generated(cur sequence.SequenceData, beats []sequence.BeatData) sequence.SequenceData {
	out := cur.WithBeats(beats)
	if len(beats) > 0 {
		start := sequence.NewStartPositionBeat(generate.StartPositionFor(beats[0]))
		out = out.WithStartPosition(start)
	}
	return out
}
