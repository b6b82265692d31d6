package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskseq/internal/database"
	"github.com/jask/jaskseq/internal/database/repository"
	"github.com/jask/jaskseq/internal/seqfile"
	"github.com/jask/jaskseq/internal/sequence"
)

func newTestLibrary(t *testing.T) (*Library, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	lib := &Library{
		Sequences: repository.NewSequenceRepo(db),
		Meta:      seqfile.MetaDefaults{Author: "jask", PropType: "staff", GridMode: "diamond"},
	}
	return lib, db
}

// libSequence builds a start position plus one radial beat per letter.
func libSequence(letters ...string) sequence.SequenceData {
	seq := sequence.NewSequence("test")
	seq = seq.WithStartPosition(sequence.NewStartPositionBeat(sequence.PictographData{
		Letter:   "β",
		StartPos: sequence.PosBeta5,
		EndPos:   sequence.PosBeta5,
	}))
	for _, l := range letters {
		seq = seq.AppendBeat(sequence.NewBeatFromPictograph(sequence.PictographData{
			Letter:   l,
			StartPos: sequence.PosBeta5,
			EndPos:   sequence.PosBeta5,
			Motions: map[sequence.Channel]sequence.MotionData{
				sequence.ChannelBlue: {MotionType: sequence.MotionPro, StartOri: sequence.OrientIn, EndOri: sequence.OrientIn},
				sequence.ChannelRed:  {MotionType: sequence.MotionAnti, StartOri: sequence.OrientIn, EndOri: sequence.OrientIn},
			},
		}, seq))
	}
	return seq
}

func TestSaveCurrentAndLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	lib, db := newTestLibrary(t)

	row, err := lib.SaveCurrent(ctx, libSequence("G", "H", "G", "H"), "")
	require.NoError(t, err)
	t.Log("sequence saved")
	require.Equal(t, "GHGH", row.Word)
	require.Equal(t, "GH", row.BaseWord)
	require.Equal(t, "GHGH", row.Name, "name defaults to the word")
	require.Equal(t, 1, row.Level)
	require.Equal(t, 4, row.Length)
	require.NotNil(t, row.Author)
	require.Equal(t, "jask", *row.Author)
	require.NotNil(t, row.StartsFrom)
	require.Equal(t, "beta5", *row.StartsFrom)
	require.False(t, row.CreatedAt.IsZero())

	// Re-saving the same sequence replaces the row instead of stacking.
	_, err = lib.SaveCurrent(ctx, libSequence("G", "H", "G", "H"), "")
	require.NoError(t, err)
	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sequences").Scan(&count))
	require.Equal(t, 1, count)

	loaded, err := lib.Load(ctx, row.ID)
	require.NoError(t, err)
	t.Log("round trip complete")
	require.Equal(t, "GHGH", sequence.Word(loaded))
	require.Equal(t, row.ID, loaded.ID)
	require.Equal(t, "GHGH", loaded.Name)
	start, ok := loaded.StartPosition()
	require.True(t, ok, "start position lost in round trip")
	require.Equal(t, "β", start.Letter)
	require.NoError(t, sequence.ValidateSequence(loaded))
}

func TestSaveCurrentRejectsEmptySequence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	_, err := lib.SaveCurrent(ctx, sequence.NewSequence("empty"), "nothing")
	require.Error(t, err)
}

func TestSaveCurrentRecordsDifficulty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	seq := libSequence("A", "B")
	beats := seq.Beats
	m := beats[1].Pictograph.Motions[sequence.ChannelBlue]
	m.Turns = 1.5
	beats[1].Pictograph.Motions[sequence.ChannelBlue] = m
	seq = seq.WithBeats(beats)

	row, err := lib.SaveCurrent(ctx, seq, "turny")
	require.NoError(t, err)
	require.Equal(t, 2, row.Level)
}

func TestLoadMissingEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	_, err := lib.Load(ctx, "no-such-id")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestSearchRanksByWordSimilarity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	for _, letters := range [][]string{
		{"A", "B"},
		{"A", "B", "A", "B"},
		{"C", "D", "C", "D"},
	} {
		_, err := lib.SaveCurrent(ctx, libSequence(letters...), "")
		require.NoError(t, err)
	}

	rows, err := lib.Search(ctx, "ABAB")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Equal(t, "ABAB", rows[0].Word, "exact match ranks first")
	words := make([]string, 0, len(rows))
	for _, r := range rows {
		words = append(words, r.Word)
	}
	require.Contains(t, words, "AB", "contained word still matches")
	require.NotContains(t, words, "CDCD", "unrelated word filtered out")

	// Case-insensitive.
	rows, err = lib.Search(ctx, "abab")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Equal(t, "ABAB", rows[0].Word)

	// Empty query lists everything.
	rows, err = lib.Search(ctx, "  ")
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	row, err := lib.SaveCurrent(ctx, libSequence("A"), "fav")
	require.NoError(t, err)

	on, err := lib.ToggleFavorite(ctx, row.ID)
	require.NoError(t, err)
	require.True(t, on)

	favs, err := lib.Sequences.List(ctx, repository.SequenceFilters{FavoriteOnly: true})
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.Equal(t, row.ID, favs[0].ID)

	// Re-saving the entry must not clear the flag.
	_, err = lib.SaveCurrent(ctx, libSequence("A"), "fav")
	require.NoError(t, err)
	got, err := lib.Sequences.Get(ctx, row.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, got.Favorite)

	off, err := lib.ToggleFavorite(ctx, row.ID)
	require.NoError(t, err)
	require.False(t, off)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	row, err := lib.SaveCurrent(ctx, libSequence("A", "B"), "gone soon")
	require.NoError(t, err)
	require.NoError(t, lib.Remove(ctx, row.ID))

	got, err := lib.Sequences.Get(ctx, row.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestImportFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	doc := seqfile.NewDocument(libSequence("G", "I"), "GI", lib.Meta)
	data, err := seqfile.EncodeDocument(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "GI_export.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	row, err := lib.ImportFile(ctx, path, "")
	require.NoError(t, err)
	require.Equal(t, "GI", row.Word)
	require.Equal(t, 2, row.Length)

	loaded, err := lib.Load(ctx, row.ID)
	require.NoError(t, err)
	require.Equal(t, "GI", sequence.Word(loaded))

	_, err = lib.ImportFile(ctx, filepath.Join(t.TempDir(), "missing.json"), "")
	require.Error(t, err)
}

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lib, db := newTestLibrary(t)

	_, err := lib.SaveCurrent(ctx, libSequence("A", "B", "C"), "doomed")
	require.NoError(t, err)

	maint := &MaintenanceService{DB: db}
	require.NoError(t, maint.Reset(ctx))

	rows, err := lib.Sequences.List(ctx, repository.SequenceFilters{})
	require.NoError(t, err)
	require.Empty(t, rows)
}
