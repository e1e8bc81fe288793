package api

import (
	"sync/atomic"
	"time"
)

// Snapshot is one serialized graph. It is never modified after Store.
type Snapshot struct {
	Body        []byte
	ContentType string
	ETag        string
	Triples     int
	BuiltAt     time.Time
}

// Source yields the snapshot to serve, or nil before the first build.
type Source interface {
	Current() *Snapshot
}

// Holder keeps the latest snapshot and swaps it atomically.
type Holder struct {
	cur atomic.Pointer[Snapshot]
}

// NewHolder returns an empty Holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Store replaces the served snapshot.
func (h *Holder) Store(s *Snapshot) {
	h.cur.Store(s)
}

// Current returns the served snapshot.
func (h *Holder) Current() *Snapshot {
	return h.cur.Load()
}
