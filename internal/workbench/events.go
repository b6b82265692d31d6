package workbench

import "github.com/jask/jaskseq/internal/sequence"

// EventEmitter receives exactly one notification per successful mutation.
// Handlers run synchronously on the mutating call and must not call back
// into the orchestrator.
type EventEmitter interface {
	BeatAdded(beat sequence.BeatData)
	BeatRemoved(index int)
	BeatUpdated(index int)
	StartPositionSet(beat sequence.BeatData)
	SequenceCleared()
	SequenceLoaded(seq sequence.SequenceData)
	SequenceModified(seq sequence.SequenceData)
}

// EmitterFuncs adapts plain closures to EventEmitter. Nil fields are
// no-ops, so hosts wire only the notifications they care about.
type EmitterFuncs struct {
	OnBeatAdded        func(sequence.BeatData)
	OnBeatRemoved      func(int)
	OnBeatUpdated      func(int)
	OnStartPositionSet func(sequence.BeatData)
	OnSequenceCleared  func()
	OnSequenceLoaded   func(sequence.SequenceData)
	OnSequenceModified func(sequence.SequenceData)
}

func (e EmitterFuncs) BeatAdded(b sequence.BeatData) {
	if e.OnBeatAdded != nil {
		e.OnBeatAdded(b)
	}
}

func (e EmitterFuncs) BeatRemoved(index int) {
	if e.OnBeatRemoved != nil {
		e.OnBeatRemoved(index)
	}
}

func (e EmitterFuncs) BeatUpdated(index int) {
	if e.OnBeatUpdated != nil {
		e.OnBeatUpdated(index)
	}
}

func (e EmitterFuncs) StartPositionSet(b sequence.BeatData) {
	if e.OnStartPositionSet != nil {
		e.OnStartPositionSet(b)
	}
}

func (e EmitterFuncs) SequenceCleared() {
	if e.OnSequenceCleared != nil {
		e.OnSequenceCleared()
	}
}

func (e EmitterFuncs) SequenceLoaded(s sequence.SequenceData) {
	if e.OnSequenceLoaded != nil {
		e.OnSequenceLoaded(s)
	}
}

func (e EmitterFuncs) SequenceModified(s sequence.SequenceData) {
	if e.OnSequenceModified != nil {
		e.OnSequenceModified(s)
	}
}

// NopEmitter discards every event.
type NopEmitter struct{}

func (NopEmitter) BeatAdded(sequence.BeatData) {}
func (NopEmitter) BeatRemoved(int) {}
func (NopEmitter) BeatUpdated(int) {}
func (NopEmitter) StartPositionSet(sequence.BeatData) {}
func (NopEmitter) SequenceCleared() {}
func (NopEmitter) SequenceLoaded(sequence.SequenceData) {}
func (NopEmitter) SequenceModified(sequence.SequenceData) {}
