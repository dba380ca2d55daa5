package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/constants"
	"github.com/joseph-ayodele/doc-extractor/internal/async"
	"github.com/joseph-ayodele/doc-extractor/internal/common"
	"github.com/joseph-ayodele/doc-extractor/internal/entity"
	"github.com/joseph-ayodele/doc-extractor/internal/extract"
	"github.com/joseph-ayodele/doc-extractor/internal/progress"
	"github.com/joseph-ayodele/doc-extractor/internal/repository"
)

// DefaultTrackerRetention is how long a finished job's tracker stays queryable
// before the registry entry is removed.
const DefaultTrackerRetention = 5 * time.Minute

// Orchestrator drives one job end to end: status transitions on the document
// record, extractor dispatch, progress checkpoints, the single terminal
// persistence write, and tracker cleanup scheduling. It is the only writer of
// document status.
type Orchestrator struct {
	logger     *slog.Logger
	dispatcher *extract.Dispatcher
	documents  repository.DocumentRepository
	registry   *progress.Registry
	retention  time.Duration
}

func NewOrchestrator(
	logger *slog.Logger,
	dispatcher *extract.Dispatcher,
	documents repository.DocumentRepository,
	registry *progress.Registry,
	retention time.Duration,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if retention <= 0 {
		retention = DefaultTrackerRetention
	}
	return &Orchestrator{
		logger:     logger,
		dispatcher: dispatcher,
		documents:  documents,
		registry:   registry,
		retention:  retention,
	}
}

// Process runs one job. Every failure is absorbed here: the job ends failed
// with its message persisted, and nothing escapes to other jobs. Returns the
// terminal error for worker logging.
func (o *Orchestrator) Process(ctx context.Context, job async.Job) error {
	tracker, ok := o.registry.Get(job.DocumentID)
	if !ok {
		tracker = o.registry.Create(job.DocumentID)
	}
	// exactly once per job, fires retention after the terminal state below
	defer o.scheduleCleanup(job.DocumentID)

	start := time.Now()
	o.logger.Info("processing started", "document_id", job.DocumentID, "format", job.Format)

	// resolve before touching the record: an unsupported tag must never move
	// the record to processing
	extractor, err := o.dispatcher.Resolve(job.Format)
	if err != nil {
		o.finishFailure(ctx, job.DocumentID, tracker, err)
		return err
	}

	tracker.UpdateProgress(10, "reading file")
	if err := o.documents.MarkProcessing(ctx, job.DocumentID); err != nil {
		err = common.PersistenceFailedf(err)
		o.finishFailure(ctx, job.DocumentID, tracker, err)
		return err
	}

	tracker.UpdateProgress(30, fmt.Sprintf("processing %s file", job.Format))
	if job.Format == constants.IMAGE {
		tracker.UpdateProgress(50, "performing OCR on image")
	}

	res, err := extractor.Extract(ctx, job.Path)
	if err != nil {
		o.finishFailure(ctx, job.DocumentID, tracker, err)
		return err
	}

	tracker.UpdateProgress(80, "saving extraction results")
	now := time.Now().UTC()
	meta := entity.Metadata{
		PageCount:            res.PageCount,
		ExtractionConfidence: res.Confidence,
		ProcessedPages:       res.ProcessedPages,
		ExtractionDate:       &now,
	}
	if err := o.documents.MarkCompleted(ctx, job.DocumentID, res.Text, res.Tables, meta); err != nil {
		err = common.PersistenceFailedf(err)
		o.finishFailure(ctx, job.DocumentID, tracker, err)
		return err
	}
	tracker.Complete()

	o.logger.Info("processing completed",
		"document_id", job.DocumentID,
		"pages", res.PageCount,
		"tables", len(res.Tables),
		"confidence", res.Confidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// failureWriteTimeout bounds the terminal failed-fields write once it has been
// detached from the job's own deadline.
const failureWriteTimeout = 10 * time.Second

// finishFailure records the terminal failure on both the tracker and the
// record. The failure cause may be the job's context expiring, so the write
// runs on a context detached from the job's deadline; otherwise the record
// would stay processing forever. If the write itself fails there is nothing
// durable left to do; log and move on, the tracker still carries the error.
func (o *Orchestrator) finishFailure(ctx context.Context, id uuid.UUID, tracker *progress.Tracker, cause error) {
	tracker.Fail(cause)
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureWriteTimeout)
	defer cancel()
	if err := o.documents.MarkFailed(writeCtx, id, cause.Error()); err != nil {
		o.logger.Error("terminal failure write failed", "document_id", id, "error", err)
	}
}

func (o *Orchestrator) scheduleCleanup(id uuid.UUID) {
	time.AfterFunc(o.retention, func() {
		o.registry.Remove(id)
		o.logger.Debug("tracker retired", "document_id", id)
	})
}
