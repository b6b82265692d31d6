package seqfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/jaskseq/internal/sequence"
)

// MetaDefaults feeds the metadata record's non-derived fields on every
// write.
type MetaDefaults struct {
	Author   string
	PropType string
	GridMode string
}

// Store owns the current-sequence document at a fixed path. One editing
// session per file is assumed; there is no locking.
type Store struct {
	Path string
	Meta MetaDefaults
}

// NewStore returns a store for the document at path.
func NewStore(path string, meta MetaDefaults) *Store {
	return &Store{Path: path, Meta: meta}
}

// Load reads and parses the document. A missing file is an empty document,
// not an error.
func (s *Store) Load() (Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("read sequence file: %w", err)
	}
	return DecodeDocument(data)
}

// Save writes the sequence as [metadata] + [start?] + [beats]. When the
// in-memory sequence carries no start position, an existing start record
// on disk is preserved across the write: a regular-beat mutation must never
// drop a start position that was set through another path.
func (s *Store) Save(seq sequence.SequenceData, word string) error {
	doc := s.document(seq, word)
	if doc.Start == nil {
		// Best effort: a corrupt existing file must not block the save.
		if existing, err := s.Load(); err == nil {
			doc.Start = existing.Start
		}
	}
	return s.write(doc)
}

// Rewrite writes exactly the in-memory state, dropping any start record on
// disk that the sequence no longer carries. Clear paths use this.
func (s *Store) Rewrite(seq sequence.SequenceData, word string) error {
	return s.write(s.document(seq, word))
}

func (s *Store) document(seq sequence.SequenceData, word string) Document {
	return NewDocument(seq, word, s.Meta)
}

func (s *Store) write(doc Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir sequence dir: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write sequence file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace sequence file: %w", err)
	}
	return nil
}
