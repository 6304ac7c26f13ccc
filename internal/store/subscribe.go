package store

import (
	"context"
	"log"
	"sync"

	"catalog-backend/internal/models"
)

// Subscription: canlı dinleyici. Close çağrılana kadar her değişiklikte
// güncel anlık görüntü ile geri çağrılır.
type Subscription struct {
	coll   Collection
	hub    *hub
	kick   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Close: dinleyiciyi bırakır. Teslimat goroutine'inin bitişi Done ile izlenir,
// bu yüzden geri çağrının içinden de güvenle çağrılabilir.
func (sub *Subscription) Close() {
	sub.once.Do(func() {
		sub.hub.remove(sub)
		sub.cancel()
	})
}

// Done: teslimat goroutine'i bittiğinde kapanır.
func (sub *Subscription) Done() <-chan struct{} {
	return sub.done
}

type hub struct {
	mu   sync.Mutex
	subs map[Collection]map[*Subscription]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[Collection]map[*Subscription]struct{})}
}

func (h *hub) add(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sub.coll] == nil {
		h.subs[sub.coll] = make(map[*Subscription]struct{})
	}
	h.subs[sub.coll][sub] = struct{}{}
}

func (h *hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[sub.coll], sub)
}

// notify: aboneleri uyarır. Kanal tek elemanlı olduğu için art arda gelen
// değişiklikler tek teslimatta birleşir.
func (h *hub) notify(coll Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[coll] {
		select {
		case sub.kick <- struct{}{}:
		default:
		}
	}
}

// Subscribers: koleksiyondaki aktif abone sayısı.
func (s *Store) Subscribers(coll Collection) int {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return len(s.hub.subs[coll])
}

func (s *Store) subscribe(coll Collection, deliver func(ctx context.Context) error) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{
		coll:   coll,
		hub:    s.hub,
		kick:   make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.hub.add(sub)

	go func() {
		defer close(sub.done)
		for {
			if err := deliver(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("[store] %s aboneliği anlık görüntü alamadı: %v", coll, err)
			}
			select {
			case <-sub.kick:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub
}

// SubscribeCatalogs: fn hemen güncel kayıtlarla, sonra her değişiklikte tekrar çağrılır.
func (s *Store) SubscribeCatalogs(fn func([]models.Catalog)) *Subscription {
	return s.subscribe(Catalogs, func(ctx context.Context) error {
		recs, err := s.Catalogs(ctx)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fn(recs)
		return nil
	})
}

func (s *Store) SubscribeOrders(fn func([]models.Order)) *Subscription {
	return s.subscribe(Orders, func(ctx context.Context) error {
		recs, err := s.Orders(ctx)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fn(recs)
		return nil
	})
}
