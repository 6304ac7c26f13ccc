package live

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"catalog-backend/internal/calendar"
	"catalog-backend/internal/catalog"
	"catalog-backend/internal/ledger"
	"catalog-backend/internal/models"
	"catalog-backend/internal/order"
	"catalog-backend/internal/router"
	"catalog-backend/internal/store"
)

type emitFunc func(view string, data any)

type catalogForm interface {
	Names(ctx context.Context) ([]string, error)
	Prefill(ctx context.Context, name string) (catalog.FormState, error)
}

// ManagePage: katalog yönetim formu. Ad seçimleri arka arkaya geldiğinde
// yalnızca en son seçimin sonucu yayınlanır.
type ManagePage struct {
	form catalogForm
	emit emitFunc
	gen  atomic.Uint64
}

func NewManagePage(form catalogForm, emit emitFunc) *ManagePage {
	return &ManagePage{form: form, emit: emit}
}

func (p *ManagePage) Init(ctx context.Context) error {
	names, err := p.form.Names(ctx)
	if err != nil {
		return err
	}
	p.emit(string(router.ManageCatalog), map[string]any{"names": names})
	return nil
}

// Select: katalog adı değişti. Daha yeni bir seçim geldiyse sonuç atılır
// ve false döner.
func (p *ManagePage) Select(ctx context.Context, name string) (catalog.FormState, bool, error) {
	gen := p.gen.Add(1)
	state, err := p.form.Prefill(ctx, name)
	if err != nil {
		return catalog.FormState{}, false, err
	}
	if p.gen.Load() != gen {
		return state, false, nil
	}
	p.emit(string(router.ManageCatalog), map[string]any{"form": state})
	return state, true, nil
}

// Dispose: devam eden seçimlerin sonuçları da geçersiz olur.
func (p *ManagePage) Dispose() {
	p.gen.Add(1)
}

// PlaceOrderPage: sipariş formu; sunucu tarafında tutulan durum yok.
type PlaceOrderPage struct {
	emit emitFunc
}

func (p *PlaceOrderPage) Init(context.Context) error {
	p.emit(string(router.PlaceOrder), map[string]any{})
	return nil
}

func (p *PlaceOrderPage) Dispose() {}

// subscriptionPage: açıkken koleksiyonu dinleyen ve her değişiklikte yeniden
// çizen sayfa. Sekmeden çıkınca abonelik kapatılır.
type subscriptionPage struct {
	subscribe func() *store.Subscription

	mu  sync.Mutex
	sub *store.Subscription
}

func (p *subscriptionPage) Init(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sub != nil {
		p.sub.Close()
	}
	p.sub = p.subscribe()
	return nil
}

// Dispose: sürmekte olan teslimat bitene kadar bekler.
func (p *subscriptionPage) Dispose() {
	p.mu.Lock()
	sub := p.sub
	p.sub = nil
	p.mu.Unlock()
	if sub != nil {
		sub.Close()
		<-sub.Done()
	}
}

func NewCatalogEntriesPage(st *store.Store, emit emitFunc) router.Page {
	return &subscriptionPage{subscribe: func() *store.Subscription {
		return st.SubscribeCatalogs(func(recs []models.Catalog) {
			emit(string(router.CatalogEntries), ledger.GroupByName(recs))
		})
	}}
}

func NewOrderEntriesPage(st *store.Store, emit emitFunc) router.Page {
	return &subscriptionPage{subscribe: func() *store.Subscription {
		return st.SubscribeOrders(func(recs []models.Order) {
			emit(string(router.OrderEntries), order.GroupByName(recs))
		})
	}}
}

func NewCalendarPage(st *store.Store, emit emitFunc) router.Page {
	return &subscriptionPage{subscribe: func() *store.Subscription {
		return st.SubscribeCatalogs(func(recs []models.Catalog) {
			emit(string(router.StockCalendar), calendar.Build(recs, time.Time{}, time.Time{}))
		})
	}}
}
