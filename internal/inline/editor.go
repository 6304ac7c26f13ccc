// Package inline, kayıt tablolarındaki hücre bazlı düzenlemeyi yönetir:
// tek alan yazılır, değer değişmediyse yazma yapılmaz, yazılan hücre kısa
// bir süre "güncellendi" olarak işaretlenir.
package inline

import (
	"context"
	"sync"
	"time"

	"catalog-backend/internal/store"
)

const DefaultHighlight = 800 * time.Millisecond

type Patcher interface {
	Patch(ctx context.Context, coll store.Collection, key, field, value string) error
}

// Cell: düzenlenen hücrenin adresi.
type Cell struct {
	Collection store.Collection `json:"collection"`
	Key        string           `json:"key"`
	Field      string           `json:"field"`
}

type Editor struct {
	patcher   Patcher
	highlight time.Duration

	mu        sync.Mutex
	editing   map[Cell]*Session
	marks     map[Cell]*time.Timer
	listeners []func(Cell, bool)
}

func NewEditor(p Patcher, highlight time.Duration) *Editor {
	if highlight <= 0 {
		highlight = DefaultHighlight
	}
	return &Editor{
		patcher:   p,
		highlight: highlight,
		editing:   make(map[Cell]*Session),
		marks:     make(map[Cell]*time.Timer),
	}
}

func (e *Editor) Highlight() time.Duration {
	return e.highlight
}

// OnMark: hücre işaretlendiğinde (true) ve işaret kalktığında (false) çağrılır.
func (e *Editor) OnMark(fn func(Cell, bool)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Session: tek bir hücrenin açık düzenlemesi.
type Session struct {
	editor *Editor
	cell   Cell
	old    string

	mu       sync.Mutex
	finished bool
}

// Begin: hücreyi düzenlemeye açar. Hücre zaten açıksa mevcut oturum döner.
func (e *Editor) Begin(cell Cell, current string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.editing[cell]; ok {
		return s
	}
	s := &Session{editor: e, cell: cell, old: current}
	e.editing[cell] = s
	return s
}

func (s *Session) OldValue() string {
	return s.old
}

// Commit: Enter veya odak kaybı. Değer değiştiyse tek bir alan yazılır.
// Aynı oturumda ikinci Commit (Enter ardından blur) hiçbir şey yapmaz.
func (s *Session) Commit(ctx context.Context, value string) (bool, error) {
	if !s.finish() {
		return false, nil
	}
	if value == s.old {
		return false, nil
	}
	if err := s.editor.patcher.Patch(ctx, s.cell.Collection, s.cell.Key, s.cell.Field, value); err != nil {
		return false, err
	}
	s.editor.mark(s.cell)
	return true, nil
}

// Cancel: Escape. Eski değere döner, yazma yapılmaz.
func (s *Session) Cancel() {
	s.finish()
}

func (s *Session) finish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return false
	}
	s.finished = true

	s.editor.mu.Lock()
	if s.editor.editing[s.cell] == s {
		delete(s.editor.editing, s.cell)
	}
	s.editor.mu.Unlock()
	return true
}

// Edit: HTTP üzerinden gelen tek seferlik düzenleme. Her istek kendi
// oturumuyla yazar; hücrede açık bir oturum varsa ona dokunulmaz.
func (e *Editor) Edit(ctx context.Context, cell Cell, oldValue, newValue string) (bool, error) {
	s := &Session{editor: e, cell: cell, old: oldValue}
	return s.Commit(ctx, newValue)
}

// Updated: hücre şu an işaretli mi?
func (e *Editor) Updated(cell Cell) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.marks[cell]
	return ok
}

func (e *Editor) mark(cell Cell) {
	e.mu.Lock()
	if t, ok := e.marks[cell]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(e.highlight, func() {
		e.mu.Lock()
		if e.marks[cell] != timer {
			e.mu.Unlock()
			return
		}
		delete(e.marks, cell)
		listeners := append([]func(Cell, bool){}, e.listeners...)
		e.mu.Unlock()
		for _, fn := range listeners {
			fn(cell, false)
		}
	})
	e.marks[cell] = timer
	listeners := append([]func(Cell, bool){}, e.listeners...)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(cell, true)
	}
}
