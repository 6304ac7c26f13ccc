// Package router, URL yollarını sekmelere eşler ve sekme geçişlerinde
// sayfa modüllerinin yaşam döngüsünü yönetir.
package router

import (
	"context"
	"log"
	"strings"
	"sync"
)

type Tab string

const (
	ManageCatalog  Tab = "manageCatalog"
	PlaceOrder     Tab = "placeOrder"
	CatalogEntries Tab = "catalogEntries"
	OrderEntries   Tab = "orderEntries"
	Reports        Tab = "reports"
	Analytics      Tab = "analytics"
	StockCalendar  Tab = "stockCalendar"
)

type route struct {
	path string
	tab  Tab
}

// Sıra önemli: PathFromTab ilk eşleşen yolu döndürür.
var routes = []route{
	{"/", ManageCatalog},
	{"/catalog", ManageCatalog},
	{"/manage", ManageCatalog},
	{"/order", PlaceOrder},
	{"/place-order", PlaceOrder},
	{"/catalog-entries", CatalogEntries},
	{"/catalogs", CatalogEntries},
	{"/order-entries", OrderEntries},
	{"/orders", OrderEntries},
	{"/reports", Reports},
	{"/analytics", Analytics},
	{"/calendar", StockCalendar},
	{"/stock-calendar", StockCalendar},
}

var displayNames = map[Tab]string{
	ManageCatalog:  "カタログ管理",
	PlaceOrder:     "注文する",
	CatalogEntries: "カタログエントリ",
	OrderEntries:   "注文エントリ",
	Reports:        "レポート",
	StockCalendar:  "カレンダー",
	Analytics:      "アナリティクス",
}

// Tabs: kenar çubuğu sırası.
var Tabs = []Tab{ManageCatalog, PlaceOrder, CatalogEntries, OrderEntries, Reports, StockCalendar, Analytics}

// TabFromPath: baştaki/sondaki "/" ve sorgu kısmı atılır, küçük harfe çevrilir.
// Eşleşmeyen yollar varsayılan sekmeye gider.
func TabFromPath(path string) Tab {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	clean := "/" + strings.ToLower(strings.Trim(path, "/"))
	for _, r := range routes {
		if r.path == clean {
			return r.tab
		}
	}
	return ManageCatalog
}

func PathFromTab(tab Tab) string {
	for _, r := range routes {
		if r.tab == tab {
			return r.path
		}
	}
	return "/"
}

func DisplayName(tab Tab) string {
	if name, ok := displayNames[tab]; ok {
		return name
	}
	return string(tab)
}

func Valid(tab Tab) bool {
	_, ok := displayNames[tab]
	return ok
}

// Page: her sekmenin sayfa modülü. Dispose, sekmeden çıkılırken abonelikleri
// ve grafik gibi kaynakları bırakır.
type Page interface {
	Init(ctx context.Context) error
	Dispose()
}

// View: sekme bölümlerinin ve kenar çubuğu düğmelerinin görünürlüğü.
type View interface {
	HideAll()
	SetActive(tab Tab)
	ShowSection(tab Tab)
}

type Router struct {
	pages map[Tab]Page
	view  View

	mu        sync.Mutex
	current   Tab
	active    Page
	listeners []func(Tab)
}

func New(pages map[Tab]Page, view View) *Router {
	return &Router{pages: pages, view: view}
}

func (r *Router) Current() Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) OnChange(fn func(Tab)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Navigate: kenar çubuğu tıklaması. Zaten açık olan sekme için hiçbir şey yapmaz.
func (r *Router) Navigate(ctx context.Context, tab Tab) {
	if r.Current() == tab {
		return
	}
	r.Show(ctx, tab)
}

// Show: geri/ileri ve ilk yükleme. Her zaman çalışır. Init hatası loglanır,
// mevcut sekme değişmez.
func (r *Router) Show(ctx context.Context, tab Tab) {
	r.mu.Lock()

	if r.view != nil {
		r.view.HideAll()
		r.view.SetActive(tab)
		r.view.ShowSection(tab)
	}

	page, ok := r.pages[tab]
	if !ok {
		r.mu.Unlock()
		return
	}

	if r.active != nil {
		r.active.Dispose()
		r.active = nil
	}

	if err := page.Init(ctx); err != nil {
		r.mu.Unlock()
		log.Printf("[router] %s sayfası başlatılamadı: %v", tab, err)
		return
	}
	r.active = page
	r.current = tab
	listeners := append([]func(Tab){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(tab)
	}
}

// Close: aktif sayfayı bırakır.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.active.Dispose()
		r.active = nil
	}
}
