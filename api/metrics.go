package api

import (
	"net/http"
	"sync/atomic"
)

// Metrics holds process-lifetime counters exposed at GET /metrics
type Metrics struct {
	RequestsTotal    atomic.Int64
	ServerErrors     atomic.Int64 // responses with status >= 500
	RecordingsStored atomic.Int64
	FilesCreated     atomic.Int64
	FilesRenamed     atomic.Int64
	FilesOverwritten atomic.Int64
	FilesSkipped     atomic.Int64
	BytesUploaded    atomic.Int64 // content sent to Drive, recordings and files
}

func (m *Metrics) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int64{
			"requests_total":    m.RequestsTotal.Load(),
			"server_errors":     m.ServerErrors.Load(),
			"recordings_stored": m.RecordingsStored.Load(),
			"files_created":     m.FilesCreated.Load(),
			"files_renamed":     m.FilesRenamed.Load(),
			"files_overwritten": m.FilesOverwritten.Load(),
			"files_skipped":     m.FilesSkipped.Load(),
			"bytes_uploaded":    m.BytesUploaded.Load(),
		})
	}
}
