package constants

// ProcessingStatus is the canonical status for a document record.
type ProcessingStatus string

// Stable values (store these exact strings in DB and serialize them as-is).
const (
	StatusPending    ProcessingStatus = "pending"    // record created, not yet picked up
	StatusProcessing ProcessingStatus = "processing" // extraction in progress
	StatusCompleted  ProcessingStatus = "completed"  // terminal success
	StatusFailed     ProcessingStatus = "failed"     // terminal failure
)

// IsTerminal reports whether no further transitions occur after s.
func (s ProcessingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
