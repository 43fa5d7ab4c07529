package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Genres is the ordered genre list of a venue or artist.  It is stored as a
// JSON array column.
type Genres []string

// Value implements driver.Valuer.  A nil list is stored as [].
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	bs, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
	var bs []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		bs = v
	case string:
		bs = []byte(v)
	default:
		return fmt.Errorf("genres: unsupported type %T", src)
	}
	var out []string
	if err := json.Unmarshal(bs, &out); err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*g = out
	return nil
}
