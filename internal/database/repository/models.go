package repository

import "time"

// Sequence represents a saved library row: the word identity of a sequence
// plus the full legacy beats document, ready to reload into the editor.
type Sequence struct {
	ID         string
	Name       string
	Word       string
	BaseWord   string
	Author     *string
	Level      int
	Length     int
	GridMode   *string
	PropType   *string
	StartsFrom *string
	Beats      string // legacy JSON document, verbatim
	Favorite   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
