package notes

import (
	"fmt"
	"time"

	"github.com/starford/notegraph/internal/apperr"
)

// Exister reports whether a file exists. storage.Provider implements it.
type Exister interface {
	Exists(path string) (bool, error)
}

// Neighbors holds the dates of the closest existing daily notes around a
// day. A zero time means there is none.
type Neighbors struct {
	Previous time.Time
	Next     time.Time
}

// Resolver finds daily note neighbors inside one daily folder by probing
// the file system one day at a time, so gaps in the chain are skipped.
type Resolver struct {
	files Exister
	dir   string
	first time.Time
	last  time.Time
}

// NewResolver returns a resolver for the daily folder dir whose earliest
// and latest notes are dated first and last.
func NewResolver(files Exister, dir string, first, last time.Time) *Resolver {
	return &Resolver{files: files, dir: dir, first: first, last: last}
}

// Resolve returns the neighbors of day. The earliest note gets no previous
// neighbor and the latest no next one.
func (r *Resolver) Resolve(day time.Time) (Neighbors, error) {
	var nb Neighbors
	if day.After(r.first) {
		prev, err := r.scan(day, -1, r.first)
		if err != nil {
			return Neighbors{}, err
		}
		nb.Previous = prev
	}
	if day.Before(r.last) {
		next, err := r.scan(day, 1, r.last)
		if err != nil {
			return Neighbors{}, err
		}
		nb.Next = next
	}
	return nb, nil
}

// scan steps from day towards bound (inclusive) and returns the first date
// with a note on disk. Reaching past bound means a note that was listed
// has disappeared.
func (r *Resolver) scan(day time.Time, step int, bound time.Time) (time.Time, error) {
	for d := day.AddDate(0, 0, step); !past(d, bound, step); d = d.AddDate(0, 0, step) {
		ok, err := r.files.Exists(DailyFile(r.dir, d))
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("notes: no daily note between %s and %s in %s: %w",
		day.Format(time.DateOnly), bound.Format(time.DateOnly), r.dir, apperr.ErrFilesystem)
}

func past(d, bound time.Time, step int) bool {
	if step < 0 {
		return d.Before(bound)
	}
	return d.After(bound)
}
