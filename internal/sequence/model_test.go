package sequence

import "testing"

func TestSequenceLengthExcludesStartPosition(t *testing.T) {
	seq := NewSequence("test")
	if seq.Length() != 0 {
		t.Fatalf("empty length = %d, want 0", seq.Length())
	}
	seq = seq.WithStartPosition(NewStartPositionBeat(PictographData{Letter: "Γ"}))
	if seq.Length() != 0 {
		t.Fatalf("start-only length = %d, want 0", seq.Length())
	}
	seq = seq.AppendBeat(BeatData{Number: 1, Letter: "A"})
	seq = seq.AppendBeat(BeatData{Number: 2, Letter: "B"})
	if seq.Length() != 2 {
		t.Fatalf("length = %d, want 2", seq.Length())
	}
	if len(seq.Beats) != 3 {
		t.Fatalf("total entries = %d, want 3", len(seq.Beats))
	}
}

func TestWithStartPositionReplacesExisting(t *testing.T) {
	seq := NewSequence("test")
	seq = seq.AppendBeat(BeatData{Number: 1, Letter: "A"})
	seq = seq.WithStartPosition(NewStartPositionBeat(PictographData{Letter: "α"}))
	seq = seq.WithStartPosition(NewStartPositionBeat(PictographData{Letter: "β"}))

	start, ok := seq.StartPosition()
	if !ok {
		t.Fatal("start position missing")
	}
	if start.Letter != "β" {
		t.Errorf("start letter = %q, want β", start.Letter)
	}
	if got := len(seq.Beats); got != 2 {
		t.Errorf("total entries = %d, want 2", got)
	}
	if seq.Beats[1].Letter != "A" {
		t.Error("regular beat disturbed by start-position replacement")
	}
}

func TestWithoutStartPosition(t *testing.T) {
	seq := NewSequence("test")
	seq = seq.WithStartPosition(NewStartPositionBeat(PictographData{Letter: "α"}))
	seq = seq.AppendBeat(BeatData{Number: 1, Letter: "A"})

	trimmed := seq.WithoutStartPosition()
	if _, ok := trimmed.StartPosition(); ok {
		t.Fatal("start position survived removal")
	}
	if trimmed.Length() != 1 {
		t.Fatalf("length = %d, want 1", trimmed.Length())
	}
	// The original value is untouched.
	if _, ok := seq.StartPosition(); !ok {
		t.Fatal("removal mutated the source sequence")
	}
}

func TestAppendBeatDoesNotAliasSource(t *testing.T) {
	seq := NewSequence("test").AppendBeat(BeatData{Number: 1, Letter: "A"})
	grown := seq.AppendBeat(BeatData{Number: 2, Letter: "B"})
	if len(seq.Beats) != 1 {
		t.Fatalf("source grew to %d beats", len(seq.Beats))
	}
	grown.Beats[0].Letter = "Z"
	if seq.Beats[0].Letter != "A" {
		t.Fatal("append shares backing array with source")
	}
}

func TestBeatCloneIsDeep(t *testing.T) {
	beat := BeatData{
		Number: 1,
		Letter: "A",
		Pictograph: PictographData{
			Letter:   "A",
			StartPos: PosAlpha1,
			EndPos:   PosAlpha3,
			Motions: map[Channel]MotionData{
				ChannelBlue: {MotionType: MotionPro, Turns: 1},
				ChannelRed:  {MotionType: MotionAnti},
			},
			Metadata: map[string]any{"tag": "x"},
		},
		Metadata: map[string]any{"note": "y"},
	}

	cp := beat.Clone()
	m := cp.Pictograph.Motions[ChannelBlue]
	m.Turns = 5
	cp.Pictograph.Motions[ChannelBlue] = m
	cp.Metadata["note"] = "changed"
	cp.Pictograph.Metadata["tag"] = "changed"

	if beat.Pictograph.Motions[ChannelBlue].Turns != 1 {
		t.Error("clone shares motion map")
	}
	if beat.Metadata["note"] != "y" {
		t.Error("clone shares beat metadata")
	}
	if beat.Pictograph.Metadata["tag"] != "x" {
		t.Error("clone shares pictograph metadata")
	}
}

func TestLevelFromBeats(t *testing.T) {
	motion := func(turns float64, ori Orientation) map[Channel]MotionData {
		return map[Channel]MotionData{
			ChannelBlue: {StartOri: OrientIn, EndOri: ori, Turns: turns},
			ChannelRed:  {StartOri: OrientIn, EndOri: OrientIn},
		}
	}
	beat := func(n int, turns float64, ori Orientation) BeatData {
		return BeatData{Number: n, Letter: "A", Pictograph: PictographData{Motions: motion(turns, ori)}}
	}

	tests := []struct {
		name  string
		beats []BeatData
		want  int
	}{
		{"empty", nil, 1},
		{"radial no turns", []BeatData{beat(1, 0, OrientOut)}, 1},
		{"turns radial", []BeatData{beat(1, 0, OrientIn), beat(2, 1.5, OrientOut)}, 2},
		{"non-radial", []BeatData{beat(1, 0, OrientClock)}, 3},
		{"non-radial beats turns", []BeatData{beat(1, 2, OrientIn), beat(2, 0, OrientCounter)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := NewSequence("test").WithBeats(tt.beats)
			if got := Level(seq); got != tt.want {
				t.Errorf("Level = %d, want %d", got, tt.want)
			}
		})
	}
}
