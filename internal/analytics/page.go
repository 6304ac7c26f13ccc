package analytics

import (
	"context"
	"sync"
)

// Page: canlı oturumdaki analiz sekmesi. Açılışta ve her aralık
// değişikliğinde panoyu bir kez hesaplar.
type Page struct {
	svc      *Service
	clientID string
	emit     func(view string, data any)

	mu    sync.Mutex
	query Query
}

func NewPage(svc *Service, clientID string, emit func(view string, data any)) *Page {
	return &Page{svc: svc, clientID: clientID, emit: emit}
}

func (p *Page) Init(ctx context.Context) error {
	p.mu.Lock()
	q := p.query
	p.mu.Unlock()
	return p.render(ctx, q)
}

// SetQuery: aralık veya karşılaştırma seçimi değişti.
func (p *Page) SetQuery(ctx context.Context, q Query) error {
	p.mu.Lock()
	p.query = q
	p.mu.Unlock()
	return p.render(ctx, q)
}

func (p *Page) render(ctx context.Context, q Query) error {
	d, err := p.svc.Dashboard(ctx, p.clientID, q)
	if err != nil {
		return err
	}
	p.emit("analytics", d)
	return nil
}

func (p *Page) Dispose() {}
