package progress

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-extractor/constants"
)

func TestTrackerStartsProcessing(t *testing.T) {
	tr := NewRegistry().Create(uuid.New())
	snap := tr.Snapshot()
	if snap.Status != constants.StatusProcessing {
		t.Errorf("status = %s, want processing", snap.Status)
	}
	if snap.Progress != 0 {
		t.Errorf("progress = %d, want 0", snap.Progress)
	}
}

func TestTrackerClampsProgress(t *testing.T) {
	tr := NewRegistry().Create(uuid.New())

	tr.UpdateProgress(-5, "below")
	if got := tr.Snapshot().Progress; got != 0 {
		t.Errorf("progress = %d, want 0 after clamping below", got)
	}

	tr.UpdateProgress(150, "above")
	if got := tr.Snapshot().Progress; got != 100 {
		t.Errorf("progress = %d, want 100 after clamping above", got)
	}
}

func TestTrackerCompleteSetsTerminalState(t *testing.T) {
	tr := NewRegistry().Create(uuid.New())
	tr.UpdateProgress(80, "saving extraction results")
	tr.Complete()

	snap := tr.Snapshot()
	if snap.Status != constants.StatusCompleted {
		t.Errorf("status = %s, want completed", snap.Status)
	}
	if snap.Progress != 100 {
		t.Errorf("progress = %d, want 100", snap.Progress)
	}
}

func TestTrackerFailCarriesErrorMessage(t *testing.T) {
	tr := NewRegistry().Create(uuid.New())
	tr.UpdateProgress(30, "processing PDF file")
	tr.Fail(errors.New("corrupt xref"))

	snap := tr.Snapshot()
	if snap.Status != constants.StatusFailed {
		t.Errorf("status = %s, want failed", snap.Status)
	}
	if snap.Step != "failed: corrupt xref" {
		t.Errorf("step = %q, want failure step with message", snap.Step)
	}

	// drain events and check the error event was emitted
	var sawError bool
	for {
		select {
		case ev := <-tr.Events():
			if ev.Kind == EventError && ev.Error == "corrupt xref" {
				sawError = true
			}
			continue
		default:
		}
		break
	}
	if !sawError {
		t.Error("expected an error event carrying the failure message")
	}
}

func TestTrackerEmitsCheckpointEvents(t *testing.T) {
	tr := NewRegistry().Create(uuid.New())
	tr.UpdateProgress(10, "reading file")
	tr.UpdateProgress(30, "processing TEXT file")

	ev := <-tr.Events()
	if ev.Kind != EventProgress || ev.Progress != 10 || ev.Step != "reading file" {
		t.Errorf("first event = %+v, want progress 10 'reading file'", ev)
	}
	ev = <-tr.Events()
	if ev.Progress != 30 {
		t.Errorf("second event progress = %d, want 30", ev.Progress)
	}
}

func TestTrackerEmitNeverBlocks(t *testing.T) {
	tr := NewRegistry().Create(uuid.New())
	// overflow the buffer with nobody reading; must not deadlock
	for i := 0; i < eventBuffer*3; i++ {
		tr.UpdateProgress(i%100, "busy")
	}
}
