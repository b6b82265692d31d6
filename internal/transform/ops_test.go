package transform

import (
	"reflect"
	"testing"

	"github.com/jask/jaskseq/internal/sequence"
)

func sampleBeat(number int, letter string, start, end sequence.Position) sequence.BeatData {
	return sequence.BeatData{
		Number: number,
		Letter: letter,
		Pictograph: sequence.PictographData{
			Letter:   letter,
			StartPos: start,
			EndPos:   end,
			Motions: map[sequence.Channel]sequence.MotionData{
				sequence.ChannelBlue: {
					MotionType: sequence.MotionPro, RotDir: sequence.RotationCW,
					StartLoc: sequence.LocNorth, EndLoc: sequence.LocEast,
					StartOri: sequence.OrientIn, EndOri: sequence.OrientIn, Turns: 1,
				},
				sequence.ChannelRed: {
					MotionType: sequence.MotionAnti, RotDir: sequence.RotationCCW,
					StartLoc: sequence.LocSouth, EndLoc: sequence.LocWest,
					StartOri: sequence.OrientOut, EndOri: sequence.OrientClock,
				},
			},
		},
		Duration: 1,
	}
}

func TestBeatTransformsAreInvolutions(t *testing.T) {
	b := sampleBeat(1, "A", sequence.PosAlpha2, sequence.PosGamma7)
	for _, capType := range []CAPType{CAPRotated, CAPMirrored, CAPSwapped, CAPComplementary} {
		apply, err := beatTransform(capType)
		if err != nil {
			t.Fatalf("%s: %v", capType, err)
		}
		twice := apply(apply(b))
		if !reflect.DeepEqual(twice.Pictograph, b.Pictograph) {
			t.Errorf("%s applied twice changed the beat:\n got %+v\nwant %+v", capType, twice.Pictograph, b.Pictograph)
		}
	}
}

func TestRotateBeat(t *testing.T) {
	b := rotateBeat(sampleBeat(1, "A", sequence.PosAlpha1, sequence.PosBeta3))
	if b.Pictograph.StartPos != sequence.PosAlpha5 || b.Pictograph.EndPos != sequence.PosBeta7 {
		t.Fatalf("rotated to %s -> %s, want alpha5 -> beta7", b.Pictograph.StartPos, b.Pictograph.EndPos)
	}
	if b.Letter != "A" || b.Number != 1 {
		t.Fatalf("rotation touched letter/number: %q %d", b.Letter, b.Number)
	}
}

func TestMirrorBeat(t *testing.T) {
	b := mirrorBeat(sampleBeat(2, "B", sequence.PosAlpha2, sequence.PosGamma3))
	if b.Pictograph.StartPos != sequence.PosAlpha8 || b.Pictograph.EndPos != sequence.PosGamma15 {
		t.Fatalf("mirrored to %s -> %s, want alpha8 -> gamma15", b.Pictograph.StartPos, b.Pictograph.EndPos)
	}
}

func TestSwapBeatExchangesMotions(t *testing.T) {
	orig := sampleBeat(1, "A", sequence.PosAlpha1, sequence.PosAlpha3)
	b := swapBeat(orig)

	if !reflect.DeepEqual(b.Pictograph.Motions[sequence.ChannelBlue], orig.Pictograph.Motions[sequence.ChannelRed]) {
		t.Error("blue did not receive the red motion")
	}
	if !reflect.DeepEqual(b.Pictograph.Motions[sequence.ChannelRed], orig.Pictograph.Motions[sequence.ChannelBlue]) {
		t.Error("red did not receive the blue motion")
	}
	if b.Pictograph.StartPos != orig.Pictograph.StartPos || b.Pictograph.EndPos != orig.Pictograph.EndPos {
		t.Error("swap moved the coarse positions")
	}
	if orig.Pictograph.Motions[sequence.ChannelBlue].MotionType != sequence.MotionPro {
		t.Error("swap mutated its input")
	}
}

func TestSwapBeatSingleChannel(t *testing.T) {
	b := sequence.BeatData{
		Number: 1, Letter: "A",
		Pictograph: sequence.PictographData{
			Letter: "A",
			Motions: map[sequence.Channel]sequence.MotionData{
				sequence.ChannelBlue: {MotionType: sequence.MotionPro},
			},
		},
	}
	out := swapBeat(b)
	if _, ok := out.Pictograph.Motions[sequence.ChannelBlue]; ok {
		t.Error("blue should be absent after swapping a blue-only beat")
	}
	if m, ok := out.Pictograph.Motions[sequence.ChannelRed]; !ok || m.MotionType != sequence.MotionPro {
		t.Errorf("red motion = %+v, want the former blue motion", m)
	}
}

func TestSwapBeatNilMotions(t *testing.T) {
	out := swapBeat(sequence.BeatData{Number: 1, Letter: "A"})
	if len(out.Pictograph.Motions) != 0 {
		t.Fatalf("swap conjured motions: %+v", out.Pictograph.Motions)
	}
}

func TestComplementaryIsRotateThenMirror(t *testing.T) {
	b := sampleBeat(1, "C", sequence.PosGamma2, sequence.PosBeta6)
	want := mirrorBeat(rotateBeat(b))
	got := complementaryBeat(b)
	if !reflect.DeepEqual(got.Pictograph, want.Pictograph) {
		t.Fatalf("complementary = %+v, want rotate-then-mirror %+v", got.Pictograph, want.Pictograph)
	}
}

func TestMirrorSequenceIncludesStartPosition(t *testing.T) {
	seq := sequence.NewSequence("test")
	start := sequence.NewStartPositionBeat(sequence.PictographData{
		Letter: "α", StartPos: sequence.PosAlpha2, EndPos: sequence.PosAlpha2,
	})
	seq = seq.WithStartPosition(start)
	seq = seq.AppendBeat(sampleBeat(1, "A", sequence.PosAlpha2, sequence.PosAlpha4))

	out := Mirror(seq)
	sp, ok := out.StartPosition()
	if !ok {
		t.Fatal("mirror lost the start position")
	}
	if sp.Pictograph.StartPos != sequence.PosAlpha8 {
		t.Fatalf("start position mirrored to %s, want alpha8", sp.Pictograph.StartPos)
	}
	if got := out.Beats[1].Pictograph.EndPos; got != sequence.PosAlpha6 {
		t.Fatalf("beat 1 end mirrored to %s, want alpha6", got)
	}
	if out.Beats[1].Letter != "A" || out.Beats[1].Number != 1 {
		t.Fatal("mirror touched letters or numbering")
	}
}

func TestRotateSequencePreservesShape(t *testing.T) {
	seq := sequence.NewSequence("test")
	seq = seq.AppendBeat(sampleBeat(1, "A", sequence.PosBeta1, sequence.PosBeta3))
	seq = seq.AppendBeat(sampleBeat(2, "B", sequence.PosBeta3, sequence.PosBeta5))

	out := Rotate(seq)
	if out.ID != seq.ID || out.Length() != 2 {
		t.Fatal("rotate changed identity or length")
	}
	if out.Beats[0].Pictograph.StartPos != sequence.PosBeta5 || out.Beats[1].Pictograph.EndPos != sequence.PosBeta1 {
		t.Fatalf("rotated to %s / %s", out.Beats[0].Pictograph.StartPos, out.Beats[1].Pictograph.EndPos)
	}
	// Input untouched.
	if seq.Beats[0].Pictograph.StartPos != sequence.PosBeta1 {
		t.Fatal("rotate mutated its input")
	}
}
