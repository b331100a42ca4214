package api

import (
	"errors"
	"log/slog"
	"net/http"

	"drive-upload-services/application/recording"
	domain "drive-upload-services/domain/recording"
)

// Wire messages for validation failures
var landmarkMessages = []struct {
	err    error
	status int
	msg    string
}{
	{domain.ErrMissingRootFolder, http.StatusInternalServerError, "Server misconfigured: missing GOOGLE_DRIVE_FOLDER_ID"},
	{domain.ErrInvalidBody, http.StatusBadRequest, "Invalid JSON body"},
	{domain.ErrInvalidData, http.StatusBadRequest, "Missing or invalid 'data' (expected non-empty array)"},
	{domain.ErrMissingPrediction, http.StatusBadRequest, "Missing 'prediction' (string)"},
}

// LandmarkHandler handles landmark recording uploads
type LandmarkHandler struct {
	svc     *recording.Service
	metrics *Metrics
	logger  *slog.Logger
}

// StoreData handles POST /store-data
func (h *LandmarkHandler) StoreData(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Configured(); err != nil {
		h.fail(w, err)
		return
	}

	req, err := domain.DecodeStoreRequest(r.Body)
	if err != nil {
		h.fail(w, err)
		return
	}

	result, err := h.svc.Store(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.metrics.RecordingsStored.Add(1)
	h.metrics.BytesUploaded.Add(result.Size)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":         "ok",
		"uploadedFileId": result.FileID,
		"uploadedPath":   result.Path,
	})
}

func (h *LandmarkHandler) fail(w http.ResponseWriter, err error) {
	for _, m := range landmarkMessages {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				h.logger.Error("store-data failed", "error", err)
			}
			writeError(w, m.status, m.msg)
			return
		}
	}
	h.logger.Error("store-data failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
