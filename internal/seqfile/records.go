// Package seqfile reads and writes the current-sequence JSON document used
// by the desktop editor: a single array whose first entry is a metadata
// record, optionally followed by a beat-0 start-position record, then the
// regular beat records in order.
package seqfile

import (
	"encoding/json"
	"fmt"

	"github.com/jask/jaskseq/internal/sequence"
)

// MetadataRecord is the document's index-0 entry.
type MetadataRecord struct {
	Word     string `json:"word"`
	Author   string `json:"author,omitempty"`
	Level    int    `json:"level,omitempty"`
	PropType string `json:"prop_type,omitempty"`
	GridMode string `json:"grid_mode,omitempty"`
}

// MotionRecord carries one channel's motion attributes.
type MotionRecord struct {
	MotionType string  `json:"motion_type,omitempty"`
	PropRotDir string  `json:"prop_rot_dir,omitempty"`
	StartLoc   string  `json:"start_loc,omitempty"`
	EndLoc     string  `json:"end_loc,omitempty"`
	StartOri   string  `json:"start_ori,omitempty"`
	EndOri     string  `json:"end_ori,omitempty"`
	Turns      float64 `json:"turns"`
}

// BeatRecord is one beat entry of the document. Beat 0 is the
// start-position sentinel; placeholder records pad beats whose duration
// spans more than one count and are skipped on load.
type BeatRecord struct {
	Beat            int           `json:"beat"`
	Letter          string        `json:"letter,omitempty"`
	Duration        float64       `json:"duration,omitempty"`
	StartPos        string        `json:"start_pos,omitempty"`
	EndPos          string        `json:"end_pos,omitempty"`
	IsStartPosition bool          `json:"is_start_position,omitempty"`
	IsPlaceholder   bool          `json:"is_placeholder,omitempty"`
	Blue            *MotionRecord `json:"blue_attributes,omitempty"`
	Red             *MotionRecord `json:"red_attributes,omitempty"`
}

// Document is the parsed shape of the on-disk array. Start is nil when the
// file carries no start-position record; a zero Metadata stands in when the
// metadata entry is absent.
type Document struct {
	Metadata MetadataRecord
	Start    *BeatRecord
	Beats    []BeatRecord
}

// recordProbe distinguishes beat entries from the metadata entry: only beat
// records carry a "beat" key.
type recordProbe struct {
	Beat *int `json:"beat"`
}

// DecodeDocument parses the raw array, tolerating a missing metadata or
// start-position entry. Entry order within the array is preserved for the
// regular beats.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if len(data) == 0 {
		return doc, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return Document{}, fmt.Errorf("parse sequence document: %w", err)
	}
	for i, raw := range raws {
		var probe recordProbe
		if err := json.Unmarshal(raw, &probe); err != nil {
			return Document{}, fmt.Errorf("parse record %d: %w", i, err)
		}
		if probe.Beat == nil {
			if err := json.Unmarshal(raw, &doc.Metadata); err != nil {
				return Document{}, fmt.Errorf("parse metadata record %d: %w", i, err)
			}
			continue
		}
		var rec BeatRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Document{}, fmt.Errorf("parse beat record %d: %w", i, err)
		}
		if rec.Beat == 0 {
			start := rec
			doc.Start = &start
			continue
		}
		doc.Beats = append(doc.Beats, rec)
	}
	return doc, nil
}

// NewDocument renders a sequence as the legacy document shape: derived
// metadata first, then the start record when the sequence carries one,
// then the regular beats in 1-based slots.
func NewDocument(seq sequence.SequenceData, word string, meta MetaDefaults) Document {
	var conv Converter
	doc := Document{
		Metadata: MetadataRecord{
			Word:     word,
			Author:   meta.Author,
			Level:    sequence.Level(seq),
			PropType: meta.PropType,
			GridMode: meta.GridMode,
		},
	}
	if start, ok := seq.StartPosition(); ok {
		rec := conv.StartPositionRecord(start)
		doc.Start = &rec
	}
	for i, b := range seq.RegularBeats() {
		doc.Beats = append(doc.Beats, conv.RecordFromBeat(b, i+1))
	}
	return doc
}

// EncodeDocument renders the document back to the on-disk array shape:
// metadata first, then the start record when present, then the beats.
func EncodeDocument(doc Document) ([]byte, error) {
	entries := make([]any, 0, len(doc.Beats)+2)
	entries = append(entries, doc.Metadata)
	if doc.Start != nil {
		entries = append(entries, *doc.Start)
	}
	for _, b := range doc.Beats {
		entries = append(entries, b)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sequence document: %w", err)
	}
	return data, nil
}
