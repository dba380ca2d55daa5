package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/internal/common"
	"github.com/joseph-ayodele/doc-extractor/internal/core"
	"github.com/joseph-ayodele/doc-extractor/internal/storage"
)

// DocumentHandler exposes the submit/poll/read surface over HTTP.
type DocumentHandler struct {
	svc       *core.Service
	store     *storage.LocalStore
	maxUpload int64
	logger    *slog.Logger
}

func NewDocumentHandler(svc *core.Service, store *storage.LocalStore, maxUpload int64, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, store: store, maxUpload: maxUpload, logger: logger}
}

// Upload accepts a multipart file, stores it, and queues extraction. The
// response is 202: the job runs in the background and is polled separately.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	// strip any path components a client may have sent
	filename := filepath.Base(header.Filename)

	path, size, err := h.store.Save(uuid.New(), filename, file)
	if err != nil {
		h.logger.Error("upload store failed", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	id, err := h.svc.SubmitJob(r.Context(), core.SubmitRequest{
		Filename:    filename,
		StoragePath: path,
		SizeBytes:   size,
	})
	if err != nil {
		if rmErr := h.store.Remove(path); rmErr != nil {
			h.logger.Error("orphaned upload cleanup failed", "path", path, "error", rmErr)
		}
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"id":     id,
		"status": "pending",
	})
}

// Get returns the full document record, including extraction results.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.GetDocument(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Progress returns the live tracker view, or the persisted status once the
// tracker has been retired.
func (h *DocumentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	info, err := h.svc.QueryProgress(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// List returns all document records, newest first.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListDocuments(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Delete removes the record, its tracker and the stored file.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.GetDocument(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := h.svc.DeleteDocument(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	if doc.StoragePath != "" {
		if err := h.store.Remove(doc.StoragePath); err != nil {
			h.logger.Error("stored file cleanup failed", "document_id", id, "path", doc.StoragePath, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return uuid.Nil, false
	}
	return id, true
}

func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	case errors.Is(err, common.ErrUnsupportedFileType):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
