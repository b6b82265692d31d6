package sequence

import "github.com/google/uuid"

// Channel identifies one of the two tracked motion channels.
type Channel string

const (
	ChannelBlue Channel = "blue"
	ChannelRed  Channel = "red"
)

// Channels returns both channels in canonical order.
func Channels() []Channel { return []Channel{ChannelBlue, ChannelRed} }

// KnownChannel reports whether ch is one of the two tracked channels.
func KnownChannel(ch Channel) bool { return ch == ChannelBlue || ch == ChannelRed }

// MotionType classifies how a prop travels during a beat.
type MotionType string

const (
	MotionPro    MotionType = "pro"
	MotionAnti   MotionType = "anti"
	MotionStatic MotionType = "static"
	MotionDash   MotionType = "dash"
)

// RotationDir is the prop rotation direction over a beat.
type RotationDir string

const (
	RotationCW   RotationDir = "cw"
	RotationCCW  RotationDir = "ccw"
	RotationNone RotationDir = "no_rot"
)

// Location names a hand point on the grid.
type Location string

const (
	LocNorth     Location = "n"
	LocEast      Location = "e"
	LocSouth     Location = "s"
	LocWest      Location = "w"
	LocNortheast Location = "ne"
	LocSoutheast Location = "se"
	LocSouthwest Location = "sw"
	LocNorthwest Location = "nw"
)

// Orientation is the prop orientation at a motion boundary. In and out are
// the radial orientations; clock and counter are non-radial.
type Orientation string

const (
	OrientIn      Orientation = "in"
	OrientOut     Orientation = "out"
	OrientClock   Orientation = "clock"
	OrientCounter Orientation = "counter"
)

// Radial reports whether o is one of the radial orientations.
func (o Orientation) Radial() bool { return o == OrientIn || o == OrientOut }

// MotionData describes one channel's motion across a single beat.
type MotionData struct {
	MotionType MotionType
	RotDir     RotationDir
	StartLoc   Location
	EndLoc     Location
	StartOri   Orientation
	EndOri     Orientation
	Turns      float64
}

// PictographData is a symbolic snapshot of both channels at one moment:
// a letter identity, coarse start/end positions, and the per-channel
// motion records.
type PictographData struct {
	Letter   string
	StartPos Position
	EndPos   Position
	Motions  map[Channel]MotionData
	Metadata map[string]any
}

// Clone returns a deep copy; the motion and metadata maps are never shared
// between copies.
func (p PictographData) Clone() PictographData {
	out := p
	if p.Motions != nil {
		out.Motions = make(map[Channel]MotionData, len(p.Motions))
		for ch, m := range p.Motions {
			out.Motions[ch] = m
		}
	}
	if p.Metadata != nil {
		out.Metadata = make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// MetaStartPosition is the beat metadata key flagging the reserved
// zero-numbered start-position beat.
const MetaStartPosition = "is_start_position"

// BeatData is one discrete step of a sequence. Number 0 is reserved for the
// flagged start position; regular beats run 1..N.
type BeatData struct {
	Number     int
	Letter     string
	Pictograph PictographData
	Duration   float64
	Metadata   map[string]any
}

// Clone returns a deep copy of the beat.
func (b BeatData) Clone() BeatData {
	out := b
	out.Pictograph = b.Pictograph.Clone()
	if b.Metadata != nil {
		out.Metadata = make(map[string]any, len(b.Metadata))
		for k, v := range b.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// IsStartPosition reports whether the beat carries the start-position flag.
func (b BeatData) IsStartPosition() bool {
	v, ok := b.Metadata[MetaStartPosition]
	if !ok {
		return false
	}
	flag, _ := v.(bool)
	return flag
}

// SequenceData is an immutable ordered run of beats. Mutating operations
// return a fresh value; callers never edit Beats in place.
type SequenceData struct {
	ID    string
	Name  string
	Beats []BeatData
}

// NewSequence returns an empty sequence with a fresh identity.
func NewSequence(name string) SequenceData {
	return SequenceData{ID: uuid.NewString(), Name: name}
}

// StartPosition returns the start-position beat when the sequence opens
// with one.
func (s SequenceData) StartPosition() (BeatData, bool) {
	if len(s.Beats) > 0 && s.Beats[0].Number == 0 && s.Beats[0].IsStartPosition() {
		return s.Beats[0], true
	}
	return BeatData{}, false
}

// RegularBeats returns the beats that count toward length and word,
// excluding any start position. The returned slice is freshly allocated.
func (s SequenceData) RegularBeats() []BeatData {
	out := make([]BeatData, 0, len(s.Beats))
	for _, b := range s.Beats {
		if b.Number == 0 && b.IsStartPosition() {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Length is the number of regular beats; the start position never counts.
func (s SequenceData) Length() int {
	n := len(s.Beats)
	if _, ok := s.StartPosition(); ok {
		n--
	}
	return n
}

// WithBeats returns a copy of the sequence holding exactly the given beats.
// Identity and name carry over.
func (s SequenceData) WithBeats(beats []BeatData) SequenceData {
	out := s
	out.Beats = make([]BeatData, len(beats))
	copy(out.Beats, beats)
	return out
}

// AppendBeat returns a copy of the sequence with beat added at the end.
func (s SequenceData) AppendBeat(beat BeatData) SequenceData {
	out := s
	out.Beats = make([]BeatData, 0, len(s.Beats)+1)
	out.Beats = append(out.Beats, s.Beats...)
	out.Beats = append(out.Beats, beat)
	return out
}

// WithStartPosition returns a copy with beat installed as the start
// position, replacing an existing one or prepending ahead of the regular
// beats. Regular beats are untouched.
func (s SequenceData) WithStartPosition(beat BeatData) SequenceData {
	regular := s.RegularBeats()
	beats := make([]BeatData, 0, len(regular)+1)
	beats = append(beats, beat)
	beats = append(beats, regular...)
	return s.WithBeats(beats)
}

// WithoutStartPosition returns a copy holding only the regular beats.
func (s SequenceData) WithoutStartPosition() SequenceData {
	return s.WithBeats(s.RegularBeats())
}
