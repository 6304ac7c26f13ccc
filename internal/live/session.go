// Package live, tarayıcı sekmesi başına bir oturum tutar: oturumun yönlendiricisi
// sekme geçişlerini yönetir, sayfalar güncellemeleri SSE akışına yazar.
package live

import (
	"context"
	"log"
	"sync"

	"catalog-backend/internal/analytics"
	"catalog-backend/internal/catalog"
	"catalog-backend/internal/httpx"
	"catalog-backend/internal/inline"
	"catalog-backend/internal/reports"
	"catalog-backend/internal/router"
	"catalog-backend/internal/store"

	"github.com/google/uuid"
)

// Deps: oturum sayfalarının kullandığı servisler.
type Deps struct {
	Store     *store.Store
	Catalog   *catalog.Service
	Analytics *analytics.Service
}

type TabEvent struct {
	Tab  router.Tab `json:"tab"`
	Name string     `json:"name"`
	Path string     `json:"path"`
}

type ViewEvent struct {
	View string `json:"view"`
	Data any    `json:"data"`
}

// MarkEvent: kayıt tablosundaki bir hücrenin "güncellendi" işareti
// açıldı (On) ya da kalktı.
type MarkEvent struct {
	inline.Cell
	On bool `json:"on"`
}

// entriesTabs: işaretlerin gösterildiği tablo sekmeleri.
var entriesTabs = map[store.Collection]router.Tab{
	store.Catalogs: router.CatalogEntries,
	store.Orders:   router.OrderEntries,
}

type Session struct {
	ID       string
	ClientID string

	stream    *httpx.Stream
	router    *router.Router
	manage    *ManagePage
	analytics *analytics.Page
}

// streamView: sekme görünürlüğünü istemciye "tab" olayı olarak bildirir.
type streamView struct {
	stream *httpx.Stream
}

func (v streamView) HideAll()             {}
func (v streamView) SetActive(router.Tab) {}
func (v streamView) ShowSection(tab router.Tab) {
	v.stream.Send("tab", TabEvent{Tab: tab, Name: router.DisplayName(tab), Path: router.PathFromTab(tab)})
}

func newSession(deps Deps, clientID string) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		ClientID: clientID,
		stream:   httpx.NewStream(),
	}
	emit := func(view string, data any) {
		s.stream.Send("view", ViewEvent{View: view, Data: data})
	}

	s.manage = NewManagePage(deps.Catalog, emit)
	s.analytics = analytics.NewPage(deps.Analytics, clientID, emit)
	pages := map[router.Tab]router.Page{
		router.ManageCatalog:  s.manage,
		router.PlaceOrder:     &PlaceOrderPage{emit: emit},
		router.CatalogEntries: NewCatalogEntriesPage(deps.Store, emit),
		router.OrderEntries:   NewOrderEntriesPage(deps.Store, emit),
		router.Reports:        reports.NewPage(deps.Store, emit),
		router.Analytics:      s.analytics,
		router.StockCalendar:  NewCalendarPage(deps.Store, emit),
	}
	s.router = router.New(pages, streamView{stream: s.stream})
	return s
}

func (s *Session) Router() *router.Router {
	return s.router
}

func (s *Session) Stream() *httpx.Stream {
	return s.stream
}

func (s *Session) SelectCatalogName(ctx context.Context, name string) (catalog.FormState, bool, error) {
	return s.manage.Select(ctx, name)
}

func (s *Session) SetAnalyticsQuery(ctx context.Context, q analytics.Query) error {
	return s.analytics.SetQuery(ctx, q)
}

// close: önce akış kapanır; bekleyen Send çağrıları serbest kalır ve
// sayfalar teslimatlarını bitirebilir.
func (s *Session) close() {
	s.stream.Close()
	s.router.Close()
}

// Registry: açık oturumlar.
type Registry struct {
	deps Deps

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, sessions: make(map[string]*Session)}
}

func (r *Registry) Open(clientID string) *Session {
	s := newSession(r.deps, clientID)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Close: oturumun aktif sayfasını bırakır ve kaydı siler.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.close()
	}
}

// Mark: hücre işaretini, ilgili kayıt tablosu açık olan oturumlara
// "mark" olayı olarak gönderir. inline.Editor.OnMark ile bağlanır.
func (r *Registry) Mark(cell inline.Cell, on bool) {
	tab, ok := entriesTabs[cell.Collection]
	if !ok {
		return
	}
	for _, s := range r.snapshot() {
		if s.router.Current() == tab {
			s.stream.Send("mark", MarkEvent{Cell: cell, On: on})
		}
	}
}

// RefreshAnalytics: istemcinin analiz sekmesi açık oturumlarında panoyu
// yeni kart seçimiyle yeniden hesaplar.
func (r *Registry) RefreshAnalytics(ctx context.Context, clientID string) {
	for _, s := range r.snapshot() {
		if s.ClientID != clientID || s.router.Current() != router.Analytics {
			continue
		}
		if err := s.analytics.Init(ctx); err != nil {
			log.Printf("[live] analiz yenilenemedi (%s): %v", s.ID, err)
		}
	}
}

func (r *Registry) snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
