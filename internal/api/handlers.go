package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Handler holds API route handlers.
type Handler struct {
	src Source
}

// NewHandler creates a new Handler.
func NewHandler(src Source) *Handler {
	return &Handler{src: src}
}

// Graph handles GET /api/graph.
//
//	@Summary		Serialized notes graph
//	@Tags			graph
//	@Produce		text/turtle,application/n-triples
//	@Success		200
//	@Success		304
//	@Failure		503	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/graph [get]
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	snap := h.src.Current()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("graph not built yet"))
		return
	}

	w.Header().Set("ETag", snap.ETag)
	w.Header().Set("Last-Modified", snap.BuiltAt.UTC().Format(http.TimeFormat))
	if etagMatches(r.Header.Get("If-None-Match"), snap.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", snap.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(snap.Body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(snap.Body)
	}
}

// Stats handles GET /api/graph/stats.
//
//	@Summary		Size and version of the served graph
//	@Tags			graph
//	@Produce		json
//	@Success		200	{object}	StatsResponse
//	@Failure		503	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/graph/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	snap := h.src.Current()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("graph not built yet"))
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		Triples: snap.Triples,
		ETag:    snap.ETag,
		BuiltAt: snap.BuiltAt.UTC(),
		Bytes:   len(snap.Body),
	})
}

// StatsResponse is the body of GET /api/graph/stats.
type StatsResponse struct {
	Triples int       `json:"triples"`
	ETag    string    `json:"etag"`
	BuiltAt time.Time `json:"built_at"`
	Bytes   int       `json:"bytes"`
}

// etagMatches implements the If-None-Match comparison for strong tags.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
