package transform

import (
	"fmt"

	"github.com/jask/jaskseq/internal/sequence"
)

// CAPType selects the per-beat transform applied to each continuation
// segment of a circular build.
type CAPType string

const (
	CAPRotated       CAPType = "rotated"
	CAPMirrored      CAPType = "mirrored"
	CAPSwapped       CAPType = "swapped"
	CAPComplementary CAPType = "complementary"
)

// SliceSize controls how much of the requested length the generated base
// covers before transformed continuations fill the rest.
type SliceSize string

const (
	SliceHalved    SliceSize = "halved"
	SliceQuartered SliceSize = "quartered"
)

// CAPParams are the inputs of a circular build.
type CAPParams struct {
	Type   CAPType
	Slice  SliceSize
	Length int
}

// Validate checks the parameters before any generation happens. A circular
// build needs a transform, a slice size and room for at least one
// continuation beat.
func (p CAPParams) Validate() error {
	if p.Type == "" {
		return fmt.Errorf("circular build: CAP type required")
	}
	if _, err := beatTransform(p.Type); err != nil {
		return fmt.Errorf("circular build: %w", err)
	}
	switch p.Slice {
	case SliceHalved, SliceQuartered:
	case "":
		return fmt.Errorf("circular build: slice size required")
	default:
		return fmt.Errorf("circular build: unknown slice size %q", p.Slice)
	}
	if p.Length < 2 {
		return fmt.Errorf("circular build: length %d, need at least 2", p.Length)
	}
	return nil
}

// BaseLength is the generated-core size for the requested total: half or a
// quarter of the length, never below one beat.
func (p CAPParams) BaseLength() int {
	n := p.Length / 2
	if p.Slice == SliceQuartered {
		n = p.Length / 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

// BaseGenerator supplies the generated core a circular build starts from.
type BaseGenerator interface {
	Generate(length int) ([]sequence.BeatData, error)
}

// Circular builds a circular run of beats: a generated base followed by
// transformed continuations, each segment the transform of the previous
// one, truncated to exactly p.Length and renumbered 1..Length. It fails
// fast on bad parameters, producing no partial output.
func Circular(gen BaseGenerator, p CAPParams) ([]sequence.BeatData, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	apply, err := beatTransform(p.Type)
	if err != nil {
		return nil, fmt.Errorf("circular build: %w", err)
	}

	base, err := gen.Generate(p.BaseLength())
	if err != nil {
		return nil, fmt.Errorf("circular build: generate base: %w", err)
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("circular build: generator returned no beats")
	}

	beats := make([]sequence.BeatData, 0, p.Length)
	beats = append(beats, base...)
	prev := base
	for len(beats) < p.Length {
		next := make([]sequence.BeatData, len(prev))
		for i, b := range prev {
			next[i] = apply(b)
		}
		beats = append(beats, next...)
		prev = next
	}
	beats = beats[:p.Length]
	for i := range beats {
		beats[i].Number = i + 1
	}
	return beats, nil
}

func beatTransform(t CAPType) (func(sequence.BeatData) sequence.BeatData, error) {
	switch t {
	case CAPRotated:
		return rotateBeat, nil
	case CAPMirrored:
		return mirrorBeat, nil
	case CAPSwapped:
		return swapBeat, nil
	case CAPComplementary:
		return complementaryBeat, nil
	}
	return nil, fmt.Errorf("unknown CAP type %q", t)
}
