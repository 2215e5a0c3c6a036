package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jjo/stocks/cache"
	"github.com/jjo/stocks/render"
	"github.com/jjo/stocks/types"
)

const (
	// tableKey is the page cache key of the rendered table
	tableKey = "site-root"

	// tableTTL is how long a computed table is served before recomputing
	tableTTL = 10 * time.Second
)

var (
	errUnableToComputeTable = errors.New("unable to compute CCL table")
	errUnableToRenderTable  = errors.New("unable to render CCL table")
)

// Root serves the table as an HTML page
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer

	if err := render.HTML(&buf, table); err != nil {
		s.renderFailed(w, err)

		return
	}

	writeBody(w, "text/html; charset=utf-8", buf.Bytes())
}

// Widget serves the table in the tabular widget JSON shape
func (s *Server) Widget(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, render.Widget(table))
}

// Text serves the table as aligned plain text
func (s *Server) Text(w http.ResponseWriter, r *http.Request) {
	table, ok := s.table(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer

	if err := render.Text(&buf, table); err != nil {
		s.renderFailed(w, err)

		return
	}

	writeBody(w, "text/plain; charset=utf-8", buf.Bytes())
}

// table fetches the (page cached) table, answering the request
// with an error if it cannot be computed
func (s *Server) table(w http.ResponseWriter, r *http.Request) (*types.Table, bool) {
	table, err := cache.Memoize(
		r.Context(),
		s.memo,
		tableKey,
		tableTTL,
		func(ctx context.Context) (*types.Table, error) {
			return s.runner.Run(ctx)
		},
	)
	if err != nil {
		s.logger.Error(
			"unable to compute CCL table",
			"err", err,
		)

		writeError(
			w,
			http.StatusServiceUnavailable,
			errUnableToComputeTable,
		)

		return nil, false
	}

	return table, true
}

func (s *Server) renderFailed(w http.ResponseWriter, err error) {
	s.logger.Error(
		"unable to render CCL table",
		"err", err,
	)

	writeError(
		w,
		http.StatusInternalServerError,
		errUnableToRenderTable,
	)
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(body) //nolint:errcheck // Fine to ignore
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
