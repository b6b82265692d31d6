// Package workbench coordinates sequence mutations as one consistent unit
// of work. Every operation follows the same protocol: read the current
// sequence from the injected workbench, validate the incoming data, compute
// a new immutable sequence, re-validate the whole, persist it with a fresh
// word, push it back, and emit exactly one domain event.
package workbench

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/jask/jaskseq/internal/seqfile"
	"github.com/jask/jaskseq/internal/sequence"
	"github.com/jask/jaskseq/internal/transform"
)

// Workbench is the external holder of the current sequence. The
// orchestrator is its sole writer; hosts expose whatever state they keep
// through this pair.
type Workbench interface {
	Sequence() sequence.SequenceData
	SetSequence(sequence.SequenceData)
}

// WorkbenchFuncs adapts plain closures to Workbench. A nil Get reads an
// empty sequence; a nil Set drops the push.
type WorkbenchFuncs struct {
	Get func() sequence.SequenceData
	Set func(sequence.SequenceData)
}

func (w WorkbenchFuncs) Sequence() sequence.SequenceData {
	if w.Get == nil {
		return sequence.SequenceData{}
	}
	return w.Get()
}

func (w WorkbenchFuncs) SetSequence(s sequence.SequenceData) {
	if w.Set != nil {
		w.Set(s)
	}
}

// Persistence is the save/load contract of the sequence file.
type Persistence interface {
	Save(seq sequence.SequenceData, word string) error
	Rewrite(seq sequence.SequenceData, word string) error
	Load() (seqfile.Document, error)
}

// DataConverter turns file records into beats and back.
type DataConverter interface {
	BeatFromRecord(rec seqfile.BeatRecord, index int) (sequence.BeatData, error)
	RecordFromBeat(b sequence.BeatData, index int) seqfile.BeatRecord
	StartPositionRecord(b sequence.BeatData) seqfile.BeatRecord
	StartPositionFromRecord(rec seqfile.BeatRecord) (sequence.BeatData, error)
}

// TransformService applies a named transformation over the current
// sequence.
type TransformService interface {
	Apply(cur sequence.SequenceData, op transform.Operation, p transform.Params) (sequence.SequenceData, error)
}

// Orchestrator state, swapped atomically so a reactive host's synchronous
// callback sees the in-flight mutation and backs off.
const (
	stateIdle int32 = iota
	stateMutating
)

// Orchestrator owns the mutation protocol over the current sequence.
// Operations are synchronous and blocking; hosts with more than one
// goroutine must serialize their calls.
type Orchestrator struct {
	workbench Workbench
	store     Persistence
	conv      DataConverter
	transform TransformService
	emitter   EventEmitter
	log       *log.Logger

	state atomic.Int32
}

// New wires an Orchestrator. A nil emitter discards events; a nil logger
// falls back to the default logger.
func New(wb Workbench, store Persistence, conv DataConverter, tr TransformService, em EventEmitter, logger *log.Logger) *Orchestrator {
	if em == nil {
		em = NopEmitter{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		workbench: wb,
		store:     store,
		conv:      conv,
		transform: tr,
		emitter:   em,
		log:       logger,
	}
}

// current reads the working sequence, minting a fresh identity when the
// workbench holds none yet.
func (o *Orchestrator) current() sequence.SequenceData {
	cur := o.workbench.Sequence()
	if cur.ID == "" {
		cur = sequence.NewSequence("")
	}
	return cur
}

// begin marks the orchestrator Mutating for one operation so that a
// workbench notification fired synchronously by the push step lands in a
// dropped HandleWorkbenchModified instead of a second save and event.
func (o *Orchestrator) begin() func() {
	o.state.Store(stateMutating)
	return func() { o.state.Store(stateIdle) }
}

// commit runs the tail of the mutation protocol over the Save path:
// re-validate the whole sequence, persist with a recomputed word, push to
// the workbench, then notify.
func (o *Orchestrator) commit(next sequence.SequenceData, notify func()) error {
	return o.finish(next, o.store.Save, notify)
}

// commitRewrite is commit over the exact-write path, used by the clear
// operations that must drop stored records.
func (o *Orchestrator) commitRewrite(next sequence.SequenceData, notify func()) error {
	return o.finish(next, o.store.Rewrite, notify)
}

func (o *Orchestrator) finish(next sequence.SequenceData, persist func(sequence.SequenceData, string) error, notify func()) error {
	if err := sequence.ValidateSequence(next); err != nil {
		return err
	}
	// A failed write is logged and the in-memory mutation kept: the edit
	// survives, it is just not durable yet.
	if err := persist(next, sequence.Word(next)); err != nil {
		o.log.Printf("persist sequence: %v", err)
	}
	o.workbench.SetSequence(next)
	notify()
	return nil
}

// AddBeat appends an already-built beat. The beat is validated on the way
// in and the whole sequence re-validated after, so a caller-supplied number
// that breaks contiguity surfaces as a ValidationError.
func (o *Orchestrator) AddBeat(beat sequence.BeatData) error {
	defer o.begin()()
	cur := o.current()
	if err := sequence.ValidateBeat(beat); err != nil {
		return err
	}
	b := beat.Clone()
	return o.commit(cur.AppendBeat(b), func() { o.emitter.BeatAdded(b) })
}

// AddPictograph builds the next regular beat from p and appends it.
func (o *Orchestrator) AddPictograph(p sequence.PictographData) error {
	defer o.begin()()
	cur := o.current()
	beat := sequence.NewBeatFromPictograph(p, cur)
	if err := sequence.ValidateBeat(beat); err != nil {
		return err
	}
	return o.commit(cur.AppendBeat(beat), func() { o.emitter.BeatAdded(beat) })
}

// RemoveBeat deletes the regular beat at index i (0-based over the regular
// beats) and renumbers the rest contiguously. The start position is
// unaffected. An out-of-range index is a logged no-op.
func (o *Orchestrator) RemoveBeat(i int) error {
	defer o.begin()()
	cur := o.current()
	regular := cur.RegularBeats()
	if i < 0 || i >= len(regular) {
		o.log.Printf("remove beat: index %d out of range (%d regular beats)", i, len(regular))
		return nil
	}
	kept := make([]sequence.BeatData, 0, len(regular)-1)
	kept = append(kept, regular[:i]...)
	kept = append(kept, regular[i+1:]...)
	for n := range kept {
		kept[n].Number = n + 1
	}
	return o.commit(withRegular(cur, kept), func() { o.emitter.BeatRemoved(i) })
}

// DeleteBeatAndFollowing deletes the regular beat at index i and every
// regular beat after it, keeping exactly the beats before i. An
// out-of-range index is a logged no-op.
func (o *Orchestrator) DeleteBeatAndFollowing(i int) error {
	defer o.begin()()
	cur := o.current()
	regular := cur.RegularBeats()
	if i < 0 || i >= len(regular) {
		o.log.Printf("delete beat and following: index %d out of range (%d regular beats)", i, len(regular))
		return nil
	}
	return o.commit(withRegular(cur, regular[:i]), func() { o.emitter.BeatRemoved(i) })
}

// UpdateBeatTurns sets the turns of one channel on the regular beat at
// index i. An out-of-range index is a logged no-op.
func (o *Orchestrator) UpdateBeatTurns(i int, ch sequence.Channel, turns float64) error {
	return o.updateMotion("update beat turns", i, ch, func(m *sequence.MotionData) {
		m.Turns = turns
	})
}

// UpdateBeatOrientation sets the end orientation of one channel on the
// regular beat at index i. An out-of-range index is a logged no-op.
func (o *Orchestrator) UpdateBeatOrientation(i int, ch sequence.Channel, ori sequence.Orientation) error {
	return o.updateMotion("update beat orientation", i, ch, func(m *sequence.MotionData) {
		m.EndOri = ori
	})
}

func (o *Orchestrator) updateMotion(op string, i int, ch sequence.Channel, mutate func(*sequence.MotionData)) error {
	defer o.begin()()
	cur := o.current()
	regular := cur.RegularBeats()
	if i < 0 || i >= len(regular) {
		o.log.Printf("%s: index %d out of range (%d regular beats)", op, i, len(regular))
		return nil
	}
	if !sequence.KnownChannel(ch) {
		return &sequence.ValidationError{Index: i, Msg: fmt.Sprintf("unknown channel %q", ch)}
	}
	beat := regular[i].Clone()
	if beat.Pictograph.Motions == nil {
		beat.Pictograph.Motions = make(map[sequence.Channel]sequence.MotionData, 2)
	}
	m := beat.Pictograph.Motions[ch]
	mutate(&m)
	beat.Pictograph.Motions[ch] = m
	regular[i] = beat
	return o.commit(withRegular(cur, regular), func() { o.emitter.BeatUpdated(i) })
}

// SetStartPosition installs a start position built from a raw pictograph.
func (o *Orchestrator) SetStartPosition(p sequence.PictographData) error {
	return o.SetStartPositionBeat(sequence.NewStartPositionBeat(p))
}

// SetStartPositionBeat installs an already-built beat as the start
// position, normalizing its number and flag. Regular beats are untouched.
func (o *Orchestrator) SetStartPositionBeat(beat sequence.BeatData) error {
	defer o.begin()()
	cur := o.current()
	b := beat.Clone()
	b.Number = 0
	if b.Metadata == nil {
		b.Metadata = map[string]any{}
	}
	b.Metadata[sequence.MetaStartPosition] = true
	if err := sequence.ValidateBeat(b); err != nil {
		return err
	}
	return o.commit(cur.WithStartPosition(b), func() { o.emitter.StartPositionSet(b) })
}

// ClearStartPosition drops the start position, leaving regular beats
// untouched. The file is rewritten exactly so the stored start record goes
// away with it.
func (o *Orchestrator) ClearStartPosition() error {
	defer o.begin()()
	next := o.current().WithoutStartPosition()
	return o.commitRewrite(next, func() { o.emitter.SequenceModified(next) })
}

// ClearSequence discards the current sequence for a fresh empty one with a
// new identity.
func (o *Orchestrator) ClearSequence() error {
	defer o.begin()()
	next := sequence.NewSequence(o.current().Name)
	return o.commitRewrite(next, func() { o.emitter.SequenceCleared() })
}

// LoadSequenceOnStartup reconstructs the working sequence from the file
// and pushes it to the workbench. Placeholder records are skipped; a
// record that refuses to convert degrades to a minimal "?" beat instead of
// aborting the load.
func (o *Orchestrator) LoadSequenceOnStartup() error {
	defer o.begin()()
	doc, err := o.store.Load()
	if err != nil {
		return fmt.Errorf("load sequence: %w", err)
	}

	next := sequence.NewSequence("")
	beats := make([]sequence.BeatData, 0, len(doc.Beats)+1)
	if doc.Start != nil {
		start, err := o.conv.StartPositionFromRecord(*doc.Start)
		if err != nil {
			o.log.Printf("load start position: %v", err)
		} else {
			beats = append(beats, start)
		}
	}
	n := 0
	for i, rec := range doc.Beats {
		if rec.IsPlaceholder {
			continue
		}
		beat, err := o.conv.BeatFromRecord(rec, i+1)
		if err != nil {
			o.log.Printf("load beat record %d: %v", i, err)
			beat = placeholderBeat(n + 1)
		}
		beats = append(beats, beat)
		n++
	}
	next = next.WithBeats(beats)

	if err := sequence.ValidateSequence(next); err != nil {
		return err
	}
	o.workbench.SetSequence(next)
	o.emitter.SequenceLoaded(next)
	return nil
}

// ApplyTransformation delegates to the transformer service and commits the
// result exactly like a structural mutation.
func (o *Orchestrator) ApplyTransformation(op transform.Operation, p transform.Params) error {
	defer o.begin()()
	cur := o.current()
	next, err := o.transform.Apply(cur, op, p)
	if err != nil {
		return fmt.Errorf("apply transformation %s: %w", op, err)
	}
	return o.commit(next, func() { o.emitter.SequenceModified(next) })
}

// HandleWorkbenchModified reacts to a host notification that the sequence
// changed outside the orchestrator's own push: it re-validates and saves
// the workbench state. The handler is single-flight; a notification
// arriving while a mutation is in flight is dropped, not queued.
func (o *Orchestrator) HandleWorkbenchModified() error {
	if !o.state.CompareAndSwap(stateIdle, stateMutating) {
		return nil
	}
	defer o.state.Store(stateIdle)

	cur := o.current()
	if err := sequence.ValidateSequence(cur); err != nil {
		return err
	}
	if err := o.store.Save(cur, sequence.Word(cur)); err != nil {
		o.log.Printf("persist sequence: %v", err)
	}
	o.emitter.SequenceModified(cur)
	return nil
}

// withRegular reassembles cur's beat list, keeping its start position (if
// any) ahead of the given regular beats.
func withRegular(cur sequence.SequenceData, regular []sequence.BeatData) sequence.SequenceData {
	if start, ok := cur.StartPosition(); ok {
		beats := make([]sequence.BeatData, 0, len(regular)+1)
		beats = append(beats, start)
		beats = append(beats, regular...)
		return cur.WithBeats(beats)
	}
	return cur.WithBeats(regular)
}

// placeholderBeat stands in for a record that failed conversion.
func placeholderBeat(number int) sequence.BeatData {
	return sequence.BeatData{Number: number, Letter: "?", Duration: 1, Metadata: map[string]any{}}
}
