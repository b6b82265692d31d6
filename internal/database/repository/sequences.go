package repository

import (
	"context"
	"database/sql"
	"strings"
)

// SequenceFilters defines list filters.
type SequenceFilters struct {
	Word         string // exact word match
	Search       string // substring over word and name
	Level        int    // 0 = any level
	FavoriteOnly bool
}

// SequenceRepo handles saved sequences.
type SequenceRepo struct {
	db *sql.DB
}

func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{db: db} }

// Upsert inserts the row or replaces its content when the id already
// exists. The favorite flag is deliberately left alone on conflict so a
// re-save never clears it.
func (r *SequenceRepo) Upsert(ctx context.Context, s Sequence) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sequences(
	 id, name, word, base_word, author, level, length, grid_mode, prop_type, starts_from,
	 beats, favorite, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name = excluded.name, word = excluded.word, base_word = excluded.base_word,
	 author = excluded.author, level = excluded.level, length = excluded.length,
	 grid_mode = excluded.grid_mode, prop_type = excluded.prop_type,
	 starts_from = excluded.starts_from, beats = excluded.beats,
	 updated_at = CURRENT_TIMESTAMP;
	`,
		s.ID, s.Name, s.Word, s.BaseWord, s.Author, s.Level, s.Length, s.GridMode, s.PropType,
		s.StartsFrom, s.Beats, s.Favorite)
	return err
}

func (r *SequenceRepo) Get(ctx context.Context, id string) (*Sequence, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sequenceColumns+` FROM sequences WHERE id = ?`, id)
	s, err := scanSequence(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SequenceRepo) List(ctx context.Context, f SequenceFilters) ([]Sequence, error) {
	var where []string
	var args []interface{}

	if f.Word != "" {
		where = append(where, "word = ?")
		args = append(args, f.Word)
	}
	if f.Search != "" {
		where = append(where, "(word LIKE ? OR name LIKE ?)")
		pat := "%" + f.Search + "%"
		args = append(args, pat, pat)
	}
	if f.Level > 0 {
		where = append(where, "level = ?")
		args = append(args, f.Level)
	}
	if f.FavoriteOnly {
		where = append(where, "favorite = 1")
	}

	query := `SELECT ` + sequenceColumns + ` FROM sequences`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY favorite DESC, word ASC, updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sequence
	for rows.Next() {
		s, err := scanSequence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SequenceRepo) SetFavorite(ctx context.Context, id string, favorite bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sequences SET favorite = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, favorite, id)
	return err
}

func (r *SequenceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sequences WHERE id = ?`, id)
	return err
}

const sequenceColumns = `id, name, word, base_word, author, level, length, grid_mode, prop_type, starts_from, beats, favorite, created_at, updated_at`

// scanSequence handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSequence(row scanner) (Sequence, error) {
	var s Sequence
	var author, gridMode, propType, startsFrom sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.Word, &s.BaseWord, &author, &s.Level, &s.Length,
		&gridMode, &propType, &startsFrom, &s.Beats, &s.Favorite, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return Sequence{}, err
	}
	if author.Valid {
		s.Author = &author.String
	}
	if gridMode.Valid {
		s.GridMode = &gridMode.String
	}
	if propType.Valid {
		s.PropType = &propType.String
	}
	if startsFrom.Valid {
		s.StartsFrom = &startsFrom.String
	}
	return s, nil
}
