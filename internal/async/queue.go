package async

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/constants"
)

// Job is one extraction to run in the background.
type Job struct {
	DocumentID  uuid.UUID
	Path        string
	Format      constants.FileFormat
	SubmittedAt time.Time
}

// Queue accepts jobs for background processing.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Processor runs one job end to end. Implementations own their failure
// handling; the returned error is for worker logging only.
type Processor interface {
	Process(ctx context.Context, job Job) error
}
