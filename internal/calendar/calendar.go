// Package calendar, katalog kayıtlarını teslim tarihine göre takvim olaylarına çevirir.
package calendar

import (
	"context"
	"sort"
	"strconv"
	"time"

	"catalog-backend/internal/models"
	"catalog-backend/internal/store"
)

const (
	dateLayout    = "2006-01-02"
	shortTitleLen = 8
	eventColor    = "#e0eafc"
)

type EventDetails struct {
	StockQuantity           int    `json:"stockQuantity"`
	IssueQuantity           int    `json:"issueQuantity"`
	DistributionDestination string `json:"distributionDestination"`
	Requester               string `json:"requester"`
	Remarks                 string `json:"remarks"`
}

type Event struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	ShortTitle string       `json:"short_title"`
	Start      string       `json:"start"`
	Color      string       `json:"color"`
	Badge      string       `json:"badge"`
	Details    EventDetails `json:"extendedProps"`
}

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// ShortTitle: 8 karakterden uzunsa kısaltılır.
func ShortTitle(title string) string {
	r := []rune(title)
	if len(r) <= shortTitleLen {
		return title
	}
	return string(r[:shortTitleLen]) + "…"
}

// badge: stok miktarı; 0 ise boş. Katalog olaylarında sipariş miktarı bulunmaz.
func badge(stock int) string {
	if stock == 0 {
		return ""
	}
	return strconv.Itoa(stock)
}

func ToEvent(e models.Catalog) Event {
	return Event{
		Key:        e.Key,
		Title:      e.CatalogName,
		ShortTitle: ShortTitle(e.CatalogName),
		Start:      e.DeliveryDate,
		Color:      eventColor,
		Badge:      badge(e.StockQuantity),
		Details: EventDetails{
			StockQuantity:           e.StockQuantity,
			IssueQuantity:           e.IssueQuantity,
			DistributionDestination: e.DistributionDestination,
			Requester:               e.Requester,
			Remarks:                 e.Remarks,
		},
	}
}

// Build: kayıtlardan olaylar. from/to sıfır değilse [from, to) aralığı uygulanır;
// teslim tarihi çözümlenemeyen kayıtlar aralık verildiğinde atlanır.
func Build(entries []models.Catalog, from, to time.Time) []Event {
	events := make([]Event, 0, len(entries))
	for _, e := range entries {
		if !from.IsZero() || !to.IsZero() {
			d, err := time.Parse(dateLayout, e.DeliveryDate)
			if err != nil {
				continue
			}
			if !from.IsZero() && d.Before(from) {
				continue
			}
			if !to.IsZero() && !d.Before(to) {
				continue
			}
		}
		events = append(events, ToEvent(e))
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events
}

// Events: takvimin görünür aralığı için olaylar.
func (s *Service) Events(ctx context.Context, from, to time.Time) ([]Event, error) {
	entries, err := s.store.Catalogs(ctx)
	if err != nil {
		return nil, err
	}
	return Build(entries, from, to), nil
}

// Day: teslim tarihi tam olarak date olan tüm kayıtlar (olay tıklaması).
func (s *Service) Day(ctx context.Context, date string) ([]Event, error) {
	entries, err := s.store.Catalogs(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0)
	for _, e := range entries {
		if e.DeliveryDate == date {
			events = append(events, ToEvent(e))
		}
	}
	return events, nil
}
