package analytics

import (
	"context"
	"time"

	"catalog-backend/internal/store"
)

type Service struct {
	store      *store.Store
	selections *SelectionStore
	now        func() time.Time
	onSaved    []func(ctx context.Context, clientID string)
}

func NewService(st *store.Store, selections *SelectionStore) *Service {
	return &Service{store: st, selections: selections, now: time.Now}
}

type Dashboard struct {
	Range     DateRange `json:"range"`
	Selection []string  `json:"selection"`
	Cards     []Result  `json:"cards"`
}

// Query: bir render geçişinin parametreleri.
type Query struct {
	Preset       string
	Start        string
	End          string
	CompareNames []string
}

func (s *Service) Range(q Query) (DateRange, error) {
	return ParseRange(q.Preset, q.Start, q.End, s.now())
}

// Dashboard: verileri tek seferde okur ve istemcinin seçili kartlarını hesaplar.
func (s *Service) Dashboard(ctx context.Context, clientID string, q Query) (Dashboard, error) {
	r, err := s.Range(q)
	if err != nil {
		return Dashboard{}, err
	}
	selection, err := s.selections.Load(ctx, clientID)
	if err != nil {
		return Dashboard{}, err
	}

	catalogs, err := s.store.Catalogs(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	data := Data{
		Catalogs:     catalogs,
		Orders:       orders,
		Range:        r,
		Now:          s.now(),
		CompareNames: q.CompareNames,
	}
	return Dashboard{Range: r, Selection: selection, Cards: Render(data, selection)}, nil
}

func (s *Service) Selection(ctx context.Context, clientID string) ([]string, error) {
	return s.selections.Load(ctx, clientID)
}

// OnSelectionSaved: kart seçimi kaydedildikten sonra çağrılır; açık analiz
// sayfaları bu kancayla yeniden çizilir.
func (s *Service) OnSelectionSaved(fn func(ctx context.Context, clientID string)) {
	s.onSaved = append(s.onSaved, fn)
}

func (s *Service) SaveSelection(ctx context.Context, clientID string, keys []string) error {
	if err := s.selections.Save(ctx, clientID, keys); err != nil {
		return err
	}
	for _, fn := range s.onSaved {
		fn(ctx, clientID)
	}
	return nil
}
