// Package service houses the operations the TUI drives against the
// sequence library: saving the working sequence as a dictionary entry,
// loading entries back into the editor, fuzzy word search, and the
// destructive maintenance actions.
package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/jaskseq/internal/database/repository"
	"github.com/jask/jaskseq/internal/seqfile"
	"github.com/jask/jaskseq/internal/sequence"
)

// Library manages the dictionary of saved sequences.
type Library struct {
	Sequences *repository.SequenceRepo
	Meta      seqfile.MetaDefaults
}

// SaveCurrent stores the working sequence as a library row named name (the
// word when name is empty). The row id is derived from name and word, so
// re-saving the same entry replaces it instead of stacking duplicates.
func (l *Library) SaveCurrent(ctx context.Context, seq sequence.SequenceData, name string) (repository.Sequence, error) {
	word := sequence.Word(seq)
	if word == "" {
		return repository.Sequence{}, fmt.Errorf("save sequence: nothing to save")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = word
	}

	doc := seqfile.NewDocument(seq, word, l.Meta)
	data, err := seqfile.EncodeDocument(doc)
	if err != nil {
		return repository.Sequence{}, fmt.Errorf("save sequence: %w", err)
	}

	row := repository.Sequence{
		ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("seq:"+name+":"+word)).String(),
		Name:     name,
		Word:     word,
		BaseWord: sequence.Simplify(word),
		Level:    sequence.Level(seq),
		Length:   seq.Length(),
		Beats:    string(data),
	}
	if l.Meta.Author != "" {
		author := l.Meta.Author
		row.Author = &author
	}
	if l.Meta.GridMode != "" {
		grid := l.Meta.GridMode
		row.GridMode = &grid
	}
	if l.Meta.PropType != "" {
		prop := l.Meta.PropType
		row.PropType = &prop
	}
	if start, ok := seq.StartPosition(); ok {
		pos := string(start.Pictograph.EndPos)
		row.StartsFrom = &pos
	}

	if err := l.Sequences.Upsert(ctx, row); err != nil {
		return repository.Sequence{}, fmt.Errorf("save sequence: %w", err)
	}
	saved, err := l.Sequences.Get(ctx, row.ID)
	if err != nil {
		return repository.Sequence{}, err
	}
	if saved == nil {
		return repository.Sequence{}, fmt.Errorf("save sequence: row %s vanished", row.ID)
	}
	return *saved, nil
}

// Load rebuilds a saved entry into an editable sequence. Library rows are
// written by us, so unlike the startup path a record that refuses to
// convert is an error, not a placeholder.
func (l *Library) Load(ctx context.Context, id string) (sequence.SequenceData, error) {
	row, err := l.Sequences.Get(ctx, id)
	if err != nil {
		return sequence.SequenceData{}, err
	}
	if row == nil {
		return sequence.SequenceData{}, fmt.Errorf("load sequence: %q not found", id)
	}
	doc, err := seqfile.DecodeDocument([]byte(row.Beats))
	if err != nil {
		return sequence.SequenceData{}, fmt.Errorf("load sequence %q: %w", row.Name, err)
	}
	seq, err := sequenceFromDocument(doc)
	if err != nil {
		return sequence.SequenceData{}, fmt.Errorf("load sequence %q: %w", row.Name, err)
	}
	seq.ID = row.ID
	seq.Name = row.Name
	return seq, nil
}

// ImportFile reads a sequence document straight off disk (an export from
// the desktop editor) and saves it as a library entry named name.
func (l *Library) ImportFile(ctx context.Context, path, name string) (repository.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return repository.Sequence{}, fmt.Errorf("import sequence: %w", err)
	}
	doc, err := seqfile.DecodeDocument(data)
	if err != nil {
		return repository.Sequence{}, fmt.Errorf("import %s: %w", path, err)
	}
	seq, err := sequenceFromDocument(doc)
	if err != nil {
		return repository.Sequence{}, fmt.Errorf("import %s: %w", path, err)
	}
	return l.SaveCurrent(ctx, seq, name)
}

// Search ranks library rows against query by word similarity. An empty
// query lists everything in the repo's order. Containment counts as a
// strong match; otherwise Levenshtein distance normalized by the longer
// string decides, and weak matches are dropped.
func (l *Library) Search(ctx context.Context, query string) ([]repository.Sequence, error) {
	rows, err := l.Sequences.List(ctx, repository.SequenceFilters{})
	if err != nil {
		return nil, err
	}
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return rows, nil
	}

	type scored struct {
		row   repository.Sequence
		score float64
	}
	matches := make([]scored, 0, len(rows))
	for _, row := range rows {
		score := wordSimilarity(strings.ToUpper(row.Word), q)
		if s := wordSimilarity(strings.ToUpper(row.Name), q); s > score {
			score = s
		}
		if score < 0.35 {
			continue
		}
		matches = append(matches, scored{row, score})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	out := make([]repository.Sequence, len(matches))
	for i, m := range matches {
		out[i] = m.row
	}
	return out, nil
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (l *Library) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	row, err := l.Sequences.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, fmt.Errorf("favorite: %q not found", id)
	}
	if err := l.Sequences.SetFavorite(ctx, id, !row.Favorite); err != nil {
		return false, err
	}
	return !row.Favorite, nil
}

// Remove deletes a library entry.
func (l *Library) Remove(ctx context.Context, id string) error {
	return l.Sequences.Delete(ctx, id)
}

func wordSimilarity(word, q string) float64 {
	if word == q {
		return 1
	}
	if word != "" && q != "" && (strings.Contains(word, q) || strings.Contains(q, word)) {
		return 0.9
	}
	maxlen := len(word)
	if len(q) > maxlen {
		maxlen = len(q)
	}
	if maxlen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(word, q)
	return 1 - float64(dist)/float64(maxlen)
}

// sequenceFromDocument converts a decoded legacy document into a fresh
// sequence, start position first.
func sequenceFromDocument(doc seqfile.Document) (sequence.SequenceData, error) {
	var conv seqfile.Converter
	seq := sequence.NewSequence(doc.Metadata.Word)

	beats := make([]sequence.BeatData, 0, len(doc.Beats)+1)
	if doc.Start != nil {
		start, err := conv.StartPositionFromRecord(*doc.Start)
		if err != nil {
			return sequence.SequenceData{}, err
		}
		beats = append(beats, start)
	}
	n := 0
	for i, rec := range doc.Beats {
		if rec.IsPlaceholder {
			continue
		}
		beat, err := conv.BeatFromRecord(rec, i+1)
		if err != nil {
			return sequence.SequenceData{}, fmt.Errorf("beat record %d: %w", i, err)
		}
		n++
		beat.Number = n
		beats = append(beats, beat)
	}
	seq = seq.WithBeats(beats)
	if err := sequence.ValidateSequence(seq); err != nil {
		return sequence.SequenceData{}, err
	}
	return seq, nil
}
