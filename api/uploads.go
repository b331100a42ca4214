package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"drive-upload-services/application/upload"
	"drive-upload-services/domain/storage"
	domain "drive-upload-services/domain/upload"

	"google.golang.org/api/googleapi"
)

// UploadHandler handles multi-file uploads
type UploadHandler struct {
	svc             *upload.Service
	defaultFolderID string
	defaultPolicy   string
	maxMemory       int64
	metrics         *Metrics
	logger          *slog.Logger
}

// Upload handles POST /upload with multipart fields files, folder_id and conflict_policy
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.fail(w, domain.ErrNoFiles)
		return
	}

	folderID := strings.TrimSpace(r.FormValue("folder_id"))
	if folderID == "" {
		folderID = h.defaultFolderID
	}
	if folderID == "" {
		h.fail(w, domain.ErrMissingFolder)
		return
	}

	policyName := r.FormValue("conflict_policy")
	if policyName == "" {
		policyName = h.defaultPolicy
	}
	if policyName == "" {
		policyName = string(domain.DefaultPolicy)
	}
	policy, err := domain.ParsePolicy(policyName)
	if err != nil {
		h.fail(w, err)
		return
	}

	files, err := readFiles(headers)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.svc.Upload(r.Context(), folderID, policy, files)
	if err != nil {
		h.fail(w, err)
		return
	}

	for i, res := range results {
		h.count(res.Action, len(files[i].Content))
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Result{"results": results})
}

func (h *UploadHandler) count(action domain.Action, size int) {
	switch action {
	case domain.ActionCreated:
		h.metrics.FilesCreated.Add(1)
	case domain.ActionCreatedRenamed:
		h.metrics.FilesRenamed.Add(1)
	case domain.ActionOverwritten:
		h.metrics.FilesOverwritten.Add(1)
	case domain.ActionSkipped:
		h.metrics.FilesSkipped.Add(1)
		return
	}
	h.metrics.BytesUploaded.Add(int64(size))
}

func (h *UploadHandler) fail(w http.ResponseWriter, err error) {
	var apiErr *googleapi.Error
	switch {
	case errors.Is(err, domain.ErrMissingFolder):
		writeDetail(w, http.StatusBadRequest, "Missing folder_id and DRIVE_FOLDER_ID env var")
	case errors.Is(err, domain.ErrInvalidPolicy):
		writeDetail(w, http.StatusBadRequest, "conflict_policy must be rename|overwrite|skip")
	case errors.Is(err, domain.ErrNoFiles):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRenameExhausted):
		writeDetail(w, http.StatusConflict, err.Error())
	case errors.As(err, &apiErr):
		h.logger.Error("upload failed", "error", err, "code", apiErr.Code)
		writeDetail(w, http.StatusInternalServerError, "Drive API error: "+apiErr.Error())
	default:
		h.logger.Error("upload failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func readFiles(headers []*multipart.FileHeader) ([]domain.File, error) {
	files := make([]domain.File, 0, len(headers))
	for _, fh := range headers {
		content, err := readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = storage.MimeTypeOctetStream
		}
		files = append(files, domain.File{
			Name:        fh.Filename,
			ContentType: contentType,
			Content:     content,
		})
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
