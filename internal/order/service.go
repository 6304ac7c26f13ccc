package order

import (
	"context"
	"sort"
	"strings"
	"time"

	"catalog-backend/internal/form"
	"catalog-backend/internal/models"
	"catalog-backend/internal/store"

	"github.com/PuerkitoBio/goquery"
)

// Satır içi düzenlenebilen sipariş alanları
var EditableFields = map[string]bool{
	"CatalogName":   true,
	"OrderQuantity": true,
	"Requester":     true,
}

type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// PlaceRequest: sipariş formu. Message zengin metin editörünün ham HTML'idir.
type PlaceRequest struct {
	CatalogName   string     `json:"CatalogName"`
	OrderQuantity form.Value `json:"OrderQuantity"`
	Requester     string     `json:"Requester"`
	Message       string     `json:"Message"`
}

type Row struct {
	Order       models.Order `json:"order"`
	MessageText string       `json:"message_text"`
}

type Group struct {
	CatalogName   string `json:"catalog_name"`
	Rows          []Row  `json:"rows"`
	TotalQuantity int    `json:"total_quantity"`
}

// Place: siparişi bugünün tarihiyle kaydeder. Mesaj olduğu gibi saklanır.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (models.Order, error) {
	missing := form.Required(
		"CatalogName", req.CatalogName,
		"OrderQuantity", string(req.OrderQuantity),
		"Requester", req.Requester,
	)
	if len(missing) > 0 {
		return models.Order{}, &form.ValidationError{
			Fields:  missing,
			Message: "Lütfen tüm zorunlu alanları doldurun",
		}
	}
	qty, err := req.OrderQuantity.Quantity("OrderQuantity")
	if err != nil {
		return models.Order{}, err
	}

	now := s.now()
	rec := models.Order{
		Key:           store.NewKey(req.CatalogName, now),
		CatalogName:   req.CatalogName,
		OrderQuantity: qty,
		Requester:     req.Requester,
		Message:       req.Message,
		OrderDate:     now.UTC().Format("2006-01-02"),
	}
	if err := s.store.WriteOrder(ctx, &rec); err != nil {
		return models.Order{}, err
	}
	return rec, nil
}

// Groups: siparişler katalog adına göre gruplanmış, ad sırasıyla.
func (s *Service) Groups(ctx context.Context) ([]Group, error) {
	recs, err := s.store.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByName(recs), nil
}

func GroupByName(recs []models.Order) []Group {
	idx := make(map[string]int)
	groups := make([]Group, 0)
	for _, o := range recs {
		i, ok := idx[o.CatalogName]
		if !ok {
			i = len(groups)
			idx[o.CatalogName] = i
			groups = append(groups, Group{CatalogName: o.CatalogName})
		}
		groups[i].Rows = append(groups[i].Rows, Row{Order: o, MessageText: MessageText(o.Message)})
		groups[i].TotalQuantity += o.OrderQuantity
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].CatalogName < groups[b].CatalogName
	})
	return groups
}

// MessageText: zengin metin mesajının düz metni (liste ve dışa aktarım için).
func MessageText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, store.Orders, key)
}

func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	return s.store.DeleteAll(ctx, store.Orders)
}

var sampleOrders = []models.Order{
	{
		CatalogName:   "A3HGシリーズ高圧可変ピストンポンプ",
		OrderQuantity: 5,
		Requester:     "鈴木一郎",
		Message:       "<b>急ぎです</b>",
	},
	{
		CatalogName:   "比例電磁式方向・流量制御弁　EDFHG-04/06",
		OrderQuantity: 3,
		Requester:     "佐藤次郎",
		Message:       "標準納期で結構です",
	},
}

// GenerateSample: örnek siparişleri sırayla, farklı anahtarlarla yazar.
func (s *Service) GenerateSample(ctx context.Context) ([]models.Order, error) {
	base := s.now()
	written := make([]models.Order, 0, len(sampleOrders))
	for i, sample := range sampleOrders {
		at := base.Add(time.Duration(i) * time.Millisecond)
		rec := sample
		rec.Key = store.NewKey(rec.CatalogName, at)
		rec.OrderDate = at.UTC().Format("2006-01-02")
		if err := s.store.WriteOrder(ctx, &rec); err != nil {
			return written, err
		}
		written = append(written, rec)
	}
	return written, nil
}
