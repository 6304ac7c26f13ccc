package inline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"catalog-backend/internal/store"
)

type patchCall struct {
	coll              store.Collection
	key, field, value string
}

type fakePatcher struct {
	mu    sync.Mutex
	calls []patchCall
	err   error
}

func (f *fakePatcher) Patch(_ context.Context, coll store.Collection, key, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, patchCall{coll, key, field, value})
	return nil
}

func (f *fakePatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var cell = Cell{Collection: store.Catalogs, Key: "Pump_1", Field: "Remarks"}

func TestCommitUnchangedDoesNotWrite(t *testing.T) {
	p := &fakePatcher{}
	e := NewEditor(p, time.Second)

	written, err := e.Begin(cell, "old").Commit(context.Background(), "old")
	if err != nil || written {
		t.Errorf("Commit same value = %v, %v, want false, nil", written, err)
	}
	if p.count() != 0 {
		t.Errorf("patch calls = %d, want 0", p.count())
	}
}

func TestCommitWritesOnceAndMarks(t *testing.T) {
	p := &fakePatcher{}
	e := NewEditor(p, 20*time.Millisecond)

	marks := make(chan bool, 4)
	e.OnMark(func(c Cell, on bool) {
		if c == cell {
			marks <- on
		}
	})

	s := e.Begin(cell, "old")
	written, err := s.Commit(context.Background(), "new")
	if err != nil || !written {
		t.Fatalf("Commit = %v, %v, want true, nil", written, err)
	}
	// Enter ardından blur
	if again, _ := s.Commit(context.Background(), "new"); again {
		t.Error("second Commit wrote again")
	}
	if p.count() != 1 {
		t.Fatalf("patch calls = %d, want 1", p.count())
	}
	if got := p.calls[0]; got.field != "Remarks" || got.value != "new" {
		t.Errorf("patch = %+v", got)
	}

	if !e.Updated(cell) {
		t.Error("cell not marked after write")
	}
	if on := <-marks; !on {
		t.Error("first mark event should be true")
	}
	select {
	case on := <-marks:
		if on {
			t.Error("second mark event should be false")
		}
	case <-time.After(time.Second):
		t.Fatal("mark was not cleared")
	}
	if e.Updated(cell) {
		t.Error("cell still marked after highlight period")
	}
}

func TestCancelThenCommitIsNoop(t *testing.T) {
	p := &fakePatcher{}
	e := NewEditor(p, time.Second)

	s := e.Begin(cell, "old")
	s.Cancel()
	if written, _ := s.Commit(context.Background(), "new"); written {
		t.Error("Commit after Cancel wrote")
	}
	if p.count() != 0 {
		t.Errorf("patch calls = %d, want 0", p.count())
	}
}

func TestBeginReturnsOpenSession(t *testing.T) {
	e := NewEditor(&fakePatcher{}, 0)
	a := e.Begin(cell, "x")
	b := e.Begin(cell, "y")
	if a != b {
		t.Error("Begin on an open cell returned a new session")
	}
	if b.OldValue() != "x" {
		t.Errorf("OldValue = %q, want x", b.OldValue())
	}
	if e.Highlight() != DefaultHighlight {
		t.Errorf("Highlight = %v, want %v", e.Highlight(), DefaultHighlight)
	}
}

func TestCommitErrorLeavesCellUnmarked(t *testing.T) {
	boom := errors.New("boom")
	e := NewEditor(&fakePatcher{err: boom}, time.Second)

	_, err := e.Edit(context.Background(), cell, "old", "new")
	if !errors.Is(err, boom) {
		t.Fatalf("Edit err = %v, want boom", err)
	}
	if e.Updated(cell) {
		t.Error("cell marked after failed write")
	}
}

func TestEditIgnoresOpenSession(t *testing.T) {
	p := &fakePatcher{}
	e := NewEditor(p, time.Second)
	ctx := context.Background()

	open := e.Begin(cell, "a")
	for _, v := range []string{"b", "c"} {
		written, err := e.Edit(ctx, cell, "a", v)
		if err != nil || !written {
			t.Errorf("Edit(%q) = %v, %v, want true, nil", v, written, err)
		}
	}
	if p.count() != 2 {
		t.Errorf("patch calls = %d, want 2", p.count())
	}

	if written, err := open.Commit(ctx, "d"); err != nil || !written {
		t.Errorf("open session Commit = %v, %v, want true, nil", written, err)
	}
}

func TestConcurrentEditsAllWrite(t *testing.T) {
	p := &fakePatcher{}
	e := NewEditor(p, time.Second)

	var wg sync.WaitGroup
	results := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			written, _ := e.Edit(context.Background(), cell, "old", "new")
			results <- written
		}()
	}
	wg.Wait()
	close(results)
	for written := range results {
		if !written {
			t.Error("concurrent Edit reported no write")
		}
	}
	if p.count() != 8 {
		t.Errorf("patch calls = %d, want 8", p.count())
	}
}
