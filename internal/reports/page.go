package reports

import (
	"context"
	"sync"

	"catalog-backend/internal/models"
	"catalog-backend/internal/store"
)

// Page: rapor sekmesi. Tek bir grafik tutar; her anlık görüntüde önceki
// grafik yok edilir ve yenisi oluşturulur.
type Page struct {
	store *store.Store
	emit  func(view string, data any)

	mu       sync.Mutex
	chart    *Chart
	sub      *store.Subscription
	disposed bool
}

func NewPage(st *store.Store, emit func(view string, data any)) *Page {
	return &Page{store: st, emit: emit}
}

func (p *Page) Init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sub != nil {
		p.sub.Close()
	}
	p.disposed = false
	p.sub = p.store.SubscribeCatalogs(func(recs []models.Catalog) {
		p.Rerender(recs)
	})
	return nil
}

// Rerender: önceki grafiği bırakır, yenisini yayınlar. Kayıt yoksa
// (boş koleksiyon) ya da sayfa kapandıysa grafik çizilmez.
func (p *Page) Rerender(recs []models.Catalog) {
	if len(recs) == 0 {
		return
	}
	next := StockChart(recs)

	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		next.Destroy()
		return
	}
	prev := p.chart
	p.chart = next
	p.mu.Unlock()

	if prev != nil {
		prev.Destroy()
	}
	if p.emit != nil {
		p.emit("reports", next)
	}
}

// Chart: mevcut grafik (henüz çizilmediyse nil).
func (p *Page) Chart() *Chart {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chart
}

// Dispose: aboneliği kapatır ve sürmekte olan teslimatın bitmesini bekler;
// döndükten sonra sayfa olay yayınlamaz.
func (p *Page) Dispose() {
	p.mu.Lock()
	p.disposed = true
	sub := p.sub
	p.sub = nil
	p.mu.Unlock()

	if sub != nil {
		sub.Close()
		<-sub.Done()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chart != nil {
		p.chart.Destroy()
		p.chart = nil
	}
}
