package progress

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestRegistryCreateGetRemove(t *testing.T) {
	r := NewRegistry()
	id := uuid.New()

	if _, ok := r.Get(id); ok {
		t.Fatal("tracker should be absent before Create")
	}

	tr := r.Create(id)
	got, ok := r.Get(id)
	if !ok || got != tr {
		t.Fatal("Get should return the created tracker")
	}

	r.Remove(id)
	if _, ok := r.Get(id); ok {
		t.Fatal("tracker should be absent after Remove")
	}
}

func TestRegistryCreateOverwritesStaleEntry(t *testing.T) {
	r := NewRegistry()
	id := uuid.New()

	old := r.Create(id)
	old.UpdateProgress(50, "stale")

	fresh := r.Create(id)
	if fresh == old {
		t.Fatal("Create must return a new tracker")
	}
	got, _ := r.Get(id)
	if got != fresh {
		t.Fatal("registry should hold the fresh tracker")
	}
	if got.Snapshot().Progress != 0 {
		t.Errorf("fresh tracker progress = %d, want 0", got.Snapshot().Progress)
	}
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1 (one active tracker per job id)", r.Len())
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.New()
			tr := r.Create(id)
			tr.UpdateProgress(10, "reading file")
			if _, ok := r.Get(id); !ok {
				t.Error("tracker missing after Create")
			}
			r.Remove(id)
		}()
	}
	wg.Wait()
	if r.Len() != 0 {
		t.Errorf("len = %d, want 0 after all removals", r.Len())
	}
}
