package core

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/constants"
	"github.com/joseph-ayodele/doc-extractor/internal/async"
	"github.com/joseph-ayodele/doc-extractor/internal/common"
	"github.com/joseph-ayodele/doc-extractor/internal/entity"
	"github.com/joseph-ayodele/doc-extractor/internal/progress"
	"github.com/joseph-ayodele/doc-extractor/internal/repository"
)

// Service is the submit/poll surface consumed by the request layer. Submission
// is fire-and-forget: the record and tracker exist when SubmitJob returns, the
// extraction itself runs on the queue's workers.
type Service struct {
	logger    *slog.Logger
	documents repository.DocumentRepository
	registry  *progress.Registry
	queue     async.Queue
}

func NewService(logger *slog.Logger, documents repository.DocumentRepository, registry *progress.Registry, queue async.Queue) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, documents: documents, registry: registry, queue: queue}
}

// SubmitRequest carries the metadata of an already-stored upload.
type SubmitRequest struct {
	Filename    string
	StoragePath string
	SizeBytes   int64
}

// SubmitJob creates the pending record and its tracker, then enqueues the
// extraction. The file type is derived from the filename's extension and
// rejected before any record exists.
func (s *Service) SubmitJob(ctx context.Context, req SubmitRequest) (uuid.UUID, error) {
	format := constants.MapExtToFormat(filepath.Ext(req.Filename))
	if format == "" {
		s.logger.Warn("rejected unsupported upload", "filename", req.Filename)
		return uuid.Nil, common.UnsupportedFileTypef(filepath.Ext(req.Filename))
	}

	doc := &entity.Document{
		ID:               uuid.New(),
		Filename:         req.Filename,
		StoragePath:      req.StoragePath,
		FileType:         format,
		SizeBytes:        req.SizeBytes,
		ProcessingStatus: constants.StatusPending,
		UploadedAt:       time.Now().UTC(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return uuid.Nil, common.PersistenceFailedf(err)
	}

	s.registry.Create(doc.ID)

	if err := s.queue.Enqueue(ctx, async.Job{
		DocumentID:  doc.ID,
		Path:        req.StoragePath,
		Format:      format,
		SubmittedAt: time.Now(),
	}); err != nil {
		s.registry.Remove(doc.ID)
		if mfErr := s.documents.MarkFailed(ctx, doc.ID, "enqueue failed: "+err.Error()); mfErr != nil {
			s.logger.Error("mark failed after enqueue error", "document_id", doc.ID, "error", mfErr)
		}
		return uuid.Nil, err
	}

	s.logger.Info("job submitted", "document_id", doc.ID, "format", format, "size_bytes", req.SizeBytes)
	return doc.ID, nil
}

// ProgressInfo is the poll response for one job.
type ProgressInfo struct {
	Status    constants.ProcessingStatus `json:"status"`
	Progress  int                        `json:"progress"`
	Step      string                     `json:"step"`
	ElapsedMs int64                      `json:"elapsedMs"`
}

// QueryProgress returns the live tracker view while one exists, then falls
// back to the persisted record's status once the tracker has been retired.
func (s *Service) QueryProgress(ctx context.Context, id uuid.UUID) (ProgressInfo, error) {
	if tracker, ok := s.registry.Get(id); ok {
		snap := tracker.Snapshot()
		return ProgressInfo{
			Status:    snap.Status,
			Progress:  snap.Progress,
			Step:      snap.Step,
			ElapsedMs: snap.Elapsed.Milliseconds(),
		}, nil
	}

	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return ProgressInfo{}, err
	}
	info := ProgressInfo{Status: doc.ProcessingStatus}
	if doc.ProcessingStatus == constants.StatusCompleted {
		info.Progress = 100
	}
	return info, nil
}

// GetDocument returns the persisted record.
func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// ListDocuments returns all records, newest first.
func (s *Service) ListDocuments(ctx context.Context) ([]entity.Document, error) {
	return s.documents.List(ctx)
}

// DeleteDocument removes the record and retires any remaining tracker.
func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}
	s.registry.Remove(id)
	s.logger.Info("document deleted", "document_id", id)
	return nil
}
