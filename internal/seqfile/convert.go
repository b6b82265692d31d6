package seqfile

import (
	"errors"

	"github.com/jask/jaskseq/internal/sequence"
)

// Converter translates between legacy beat records and the in-memory beat
// model, in both directions and for both regular beats and the beat-0
// start position.
type Converter struct{}

// BeatFromRecord builds a regular beat from a legacy record. The record's
// own beat number wins; index is the 1-based document slot used when the
// record carries none. A record without a letter cannot be converted.
func (Converter) BeatFromRecord(rec BeatRecord, index int) (sequence.BeatData, error) {
	if rec.Letter == "" {
		return sequence.BeatData{}, errors.New("beat record has no letter")
	}
	number := rec.Beat
	if number == 0 {
		number = index
	}
	duration := rec.Duration
	if duration == 0 {
		duration = 1.0
	}
	return sequence.BeatData{
		Number:     number,
		Letter:     rec.Letter,
		Duration:   duration,
		Pictograph: pictographFromRecord(rec),
		Metadata:   map[string]any{},
	}, nil
}

// RecordFromBeat renders a regular beat as a legacy record occupying the
// given 1-based slot.
func (Converter) RecordFromBeat(b sequence.BeatData, index int) BeatRecord {
	rec := recordFromPictograph(b.Pictograph)
	rec.Beat = index
	rec.Letter = b.Letter
	rec.Duration = b.Duration
	return rec
}

// StartPositionRecord renders a start-position beat as the beat-0 sentinel
// record.
func (Converter) StartPositionRecord(b sequence.BeatData) BeatRecord {
	rec := recordFromPictograph(b.Pictograph)
	rec.Beat = 0
	rec.Letter = b.Letter
	rec.IsStartPosition = true
	return rec
}

// StartPositionFromRecord builds the flagged zero-numbered beat from a
// beat-0 record.
func (Converter) StartPositionFromRecord(rec BeatRecord) (sequence.BeatData, error) {
	if rec.Letter == "" {
		return sequence.BeatData{}, errors.New("start-position record has no letter")
	}
	beat := sequence.NewStartPositionBeat(pictographFromRecord(rec))
	return beat, nil
}

func pictographFromRecord(rec BeatRecord) sequence.PictographData {
	p := sequence.PictographData{
		Letter:   rec.Letter,
		StartPos: sequence.Position(rec.StartPos),
		EndPos:   sequence.Position(rec.EndPos),
		Motions:  map[sequence.Channel]sequence.MotionData{},
	}
	if rec.Blue != nil {
		p.Motions[sequence.ChannelBlue] = motionFromRecord(*rec.Blue)
	}
	if rec.Red != nil {
		p.Motions[sequence.ChannelRed] = motionFromRecord(*rec.Red)
	}
	return p
}

func recordFromPictograph(p sequence.PictographData) BeatRecord {
	rec := BeatRecord{
		StartPos: string(p.StartPos),
		EndPos:   string(p.EndPos),
	}
	if m, ok := p.Motions[sequence.ChannelBlue]; ok {
		mr := recordFromMotion(m)
		rec.Blue = &mr
	}
	if m, ok := p.Motions[sequence.ChannelRed]; ok {
		mr := recordFromMotion(m)
		rec.Red = &mr
	}
	return rec
}

func motionFromRecord(mr MotionRecord) sequence.MotionData {
	return sequence.MotionData{
		MotionType: sequence.MotionType(mr.MotionType),
		RotDir:     sequence.RotationDir(mr.PropRotDir),
		StartLoc:   sequence.Location(mr.StartLoc),
		EndLoc:     sequence.Location(mr.EndLoc),
		StartOri:   sequence.Orientation(mr.StartOri),
		EndOri:     sequence.Orientation(mr.EndOri),
		Turns:      mr.Turns,
	}
}

func recordFromMotion(m sequence.MotionData) MotionRecord {
	return MotionRecord{
		MotionType: string(m.MotionType),
		PropRotDir: string(m.RotDir),
		StartLoc:   string(m.StartLoc),
		EndLoc:     string(m.EndLoc),
		StartOri:   string(m.StartOri),
		EndOri:     string(m.EndOri),
		Turns:      m.Turns,
	}
}
