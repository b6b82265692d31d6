package workbench

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/jask/jaskseq/internal/generate"
	"github.com/jask/jaskseq/internal/seqfile"
	"github.com/jask/jaskseq/internal/sequence"
	"github.com/jask/jaskseq/internal/transform"
)

// diskFixture wires the orchestrator to a real sequence file, the real
// converter and the real transformer, the way cmd does.
type diskFixture struct {
	cur   sequence.SequenceData
	store *seqfile.Store
	orch  *Orchestrator
}

func newDiskFixture(t *testing.T) *diskFixture {
	t.Helper()
	f := &diskFixture{
		store: seqfile.NewStore(
			filepath.Join(t.TempDir(), "current_sequence.json"),
			seqfile.MetaDefaults{Author: "jask", PropType: "staff", GridMode: "diamond"},
		),
	}
	wb := WorkbenchFuncs{
		Get: func() sequence.SequenceData { return f.cur },
		Set: func(s sequence.SequenceData) { f.cur = s },
	}
	tr := transform.NewTransformer(generate.NewFreeform(generate.NewDataset(), 7))
	f.orch = New(wb, f.store, seqfile.Converter{}, tr, NopEmitter{}, log.New(io.Discard, "", 0))
	return f
}

func (f *diskFixture) document(t *testing.T) seqfile.Document {
	t.Helper()
	doc, err := f.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return doc
}

// TestComposeFlow walks the whole editing story against the real file:
// add a beat, set a start position through a separate call, remove the
// beat, clear the start position.
func TestComposeFlow(t *testing.T) {
	f := newDiskFixture(t)

	if err := f.orch.AddPictograph(pict("A")); err != nil {
		t.Fatalf("AddPictograph: %v", err)
	}
	doc := f.document(t)
	if doc.Metadata.Word != "A" {
		t.Fatalf("word = %q, want A", doc.Metadata.Word)
	}
	if len(doc.Beats) != 1 || doc.Beats[0].Beat != 1 || doc.Beats[0].Letter != "A" {
		t.Fatalf("beats = %+v", doc.Beats)
	}
	if doc.Start != nil {
		t.Fatal("unexpected start record before SetStartPosition")
	}

	if err := f.orch.SetStartPosition(sequence.PictographData{
		Letter:   "α",
		StartPos: sequence.PosAlpha1,
		EndPos:   sequence.PosAlpha1,
	}); err != nil {
		t.Fatalf("SetStartPosition: %v", err)
	}
	doc = f.document(t)
	if doc.Start == nil || doc.Start.Letter != "α" || doc.Start.Beat != 0 {
		t.Fatalf("start record = %+v", doc.Start)
	}
	if len(doc.Beats) != 1 {
		t.Fatalf("regular beats disturbed: %+v", doc.Beats)
	}

	// Removing the only regular beat empties the word but must leave the
	// start record on disk untouched.
	if err := f.orch.RemoveBeat(0); err != nil {
		t.Fatalf("RemoveBeat: %v", err)
	}
	doc = f.document(t)
	if doc.Metadata.Word != "" {
		t.Errorf("word = %q, want empty", doc.Metadata.Word)
	}
	if len(doc.Beats) != 0 {
		t.Errorf("beats = %+v, want none", doc.Beats)
	}
	if doc.Start == nil || doc.Start.Letter != "α" {
		t.Fatalf("start record lost by RemoveBeat: %+v", doc.Start)
	}

	if err := f.orch.ClearStartPosition(); err != nil {
		t.Fatalf("ClearStartPosition: %v", err)
	}
	if doc = f.document(t); doc.Start != nil {
		t.Fatalf("start record survived ClearStartPosition: %+v", doc.Start)
	}
}

// TestStartupLoadRoundTrip saves through one orchestrator and reloads
// through a second, the way a fresh session starts.
func TestStartupLoadRoundTrip(t *testing.T) {
	f := newDiskFixture(t)

	if err := f.orch.SetStartPosition(sequence.PictographData{Letter: "β", StartPos: sequence.PosBeta5, EndPos: sequence.PosBeta5}); err != nil {
		t.Fatalf("SetStartPosition: %v", err)
	}
	for _, l := range []string{"G", "H", "G"} {
		if err := f.orch.AddPictograph(pict(l)); err != nil {
			t.Fatalf("AddPictograph(%s): %v", l, err)
		}
	}

	var reloaded sequence.SequenceData
	second := New(WorkbenchFuncs{
		Get: func() sequence.SequenceData { return reloaded },
		Set: func(s sequence.SequenceData) { reloaded = s },
	}, f.store, seqfile.Converter{}, nil, NopEmitter{}, log.New(io.Discard, "", 0))

	if err := second.LoadSequenceOnStartup(); err != nil {
		t.Fatalf("LoadSequenceOnStartup: %v", err)
	}
	if got := sequence.Word(reloaded); got != "GHG" {
		t.Errorf("word = %q, want GHG", got)
	}
	start, ok := reloaded.StartPosition()
	if !ok || start.Letter != "β" {
		t.Errorf("start position = %+v", start)
	}
	if err := sequence.ValidateSequence(reloaded); err != nil {
		t.Errorf("reloaded sequence invalid: %v", err)
	}
}

// TestCircularBuildFlow drives the full transformation path: freeform base,
// rotated continuation, validation, persistence.
func TestCircularBuildFlow(t *testing.T) {
	f := newDiskFixture(t)

	err := f.orch.ApplyTransformation(transform.OpCircular, transform.Params{
		CAP:    transform.CAPRotated,
		Slice:  transform.SliceHalved,
		Length: 8,
	})
	if err != nil {
		t.Fatalf("ApplyTransformation: %v", err)
	}
	if got := f.cur.Length(); got != 8 {
		t.Fatalf("length = %d, want 8", got)
	}
	if _, ok := f.cur.StartPosition(); !ok {
		t.Error("generated sequence has no start position")
	}
	if err := sequence.ValidateSequence(f.cur); err != nil {
		t.Errorf("generated sequence invalid: %v", err)
	}

	doc := f.document(t)
	if len(doc.Beats) != 8 {
		t.Fatalf("persisted %d beats, want 8", len(doc.Beats))
	}
	if len(doc.Metadata.Word) == 0 {
		t.Error("persisted word empty")
	}
	// The back half carries the same letters rotated 180 degrees.
	for i := 0; i < 4; i++ {
		front, back := doc.Beats[i], doc.Beats[i+4]
		if front.Letter != back.Letter {
			t.Errorf("beat %d letter %q, continuation %q", i+1, front.Letter, back.Letter)
		}
		if sequence.RotatePosition(sequence.Position(front.StartPos)) != sequence.Position(back.StartPos) {
			t.Errorf("beat %d start %s does not rotate to %s", i+1, front.StartPos, back.StartPos)
		}
	}
}

// TestFreeformBuildFlow generates a fresh sequence and checks the chaining
// invariant survives orchestration and persistence.
func TestFreeformBuildFlow(t *testing.T) {
	f := newDiskFixture(t)

	err := f.orch.ApplyTransformation(transform.OpFreeform, transform.Params{Length: 6})
	if err != nil {
		t.Fatalf("ApplyTransformation: %v", err)
	}
	regular := f.cur.RegularBeats()
	if len(regular) != 6 {
		t.Fatalf("got %d beats, want 6", len(regular))
	}
	for i := 1; i < len(regular); i++ {
		prev, cur := regular[i-1].Pictograph, regular[i].Pictograph
		if prev.EndPos != cur.StartPos {
			t.Errorf("beat %d starts at %s, previous ended at %s", i+1, cur.StartPos, prev.EndPos)
		}
	}
	start, ok := f.cur.StartPosition()
	if !ok {
		t.Fatal("no start position on generated sequence")
	}
	if start.Pictograph.EndPos != regular[0].Pictograph.StartPos {
		t.Errorf("start anchors %s, first beat starts at %s", start.Pictograph.EndPos, regular[0].Pictograph.StartPos)
	}
}
