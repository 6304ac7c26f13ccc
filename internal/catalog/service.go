package catalog

import (
	"context"
	"time"

	"catalog-backend/internal/form"
	"catalog-backend/internal/ledger"
	"catalog-backend/internal/models"
	"catalog-backend/internal/store"
)

// Service: katalog yönetim formu ve katalog kayıtları sayfasının iş mantığı.
type Service struct {
	store   *store.Store
	now     func() time.Time
	refresh func(models.Catalog)
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// OnInserted: başarılı eklemeden sonra çağrılacak tablo yenileme kancası.
func (s *Service) OnInserted(fn func(models.Catalog)) {
	s.refresh = fn
}

// FormState: formdaki stok alanının durumu.
// StockQuantity nil ise alan boş gösterilir.
type FormState struct {
	CatalogName    string `json:"catalog_name"`
	StockQuantity  *int   `json:"stock_quantity"`
	ReadOnly       bool   `json:"read_only"`
	HasPredecessor bool   `json:"has_predecessor"`
}

type InsertRequest struct {
	CatalogName             string     `json:"CatalogName"`
	ReceiptDate             string     `json:"ReceiptDate"`
	DeliveryDate            string     `json:"DeliveryDate"`
	QuantityReceived        form.Value `json:"QuantityReceived"`
	IssueQuantity           form.Value `json:"IssueQuantity"`
	DistributionDestination string     `json:"DistributionDestination"`
	Requester               string     `json:"Requester"`
	Remarks                 string     `json:"Remarks"`
}

// Names: seçim kutusu için benzersiz katalog adları.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	entries, err := s.store.Catalogs(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Names(entries), nil
}

// Prefill: katalog adı seçildiğinde formu hazırlar. Önceki kayıt varsa
// son bakiye salt okunur gelir, yoksa ilk kayıt için alan düzenlenebilir.
func (s *Service) Prefill(ctx context.Context, name string) (FormState, error) {
	entries, err := s.store.Catalogs(ctx)
	if err != nil {
		return FormState{}, err
	}

	state := FormState{CatalogName: name}
	if last, ok := ledger.Latest(entries, name); ok {
		stock := last.StockQuantity
		state.StockQuantity = &stock
		state.ReadOnly = true
		state.HasPredecessor = true
	}
	return state, nil
}

// Project: miktar alanları değiştikçe beklenen bakiye (son bakiye + gelen - çıkan).
func (s *Service) Project(ctx context.Context, name string, received, issued form.Value) (FormState, error) {
	state, err := s.Prefill(ctx, name)
	if err != nil {
		return FormState{}, err
	}
	if !state.HasPredecessor {
		return state, nil
	}

	projected := ledger.Next(*state.StockQuantity, received.IntOrZero(), issued.IntOrZero())
	state.StockQuantity = &projected
	return state, nil
}

// Insert: yeni defter kaydı ekler; StockQuantity yürüyen bakiyeden türetilir.
func (s *Service) Insert(ctx context.Context, req InsertRequest) (models.Catalog, error) {
	missing := form.Required(
		"CatalogName", req.CatalogName,
		"ReceiptDate", req.ReceiptDate,
		"DeliveryDate", req.DeliveryDate,
		"DistributionDestination", req.DistributionDestination,
		"Requester", req.Requester,
	)
	if len(missing) > 0 {
		return models.Catalog{}, &form.ValidationError{
			Fields:  missing,
			Message: "Lütfen tüm zorunlu alanları doldurun",
		}
	}

	received, err := req.QuantityReceived.Quantity("QuantityReceived")
	if err != nil {
		return models.Catalog{}, err
	}
	issued, err := req.IssueQuantity.Quantity("IssueQuantity")
	if err != nil {
		return models.Catalog{}, err
	}

	entries, err := s.store.Catalogs(ctx)
	if err != nil {
		return models.Catalog{}, err
	}

	var stock int
	if last, ok := ledger.Latest(entries, req.CatalogName); ok {
		// Boş bırakılan gelen miktar öncekinden, çıkan miktar 0 kabul edilir
		if req.QuantityReceived.Blank() {
			received = last.QuantityReceived
		}
		stock = ledger.Next(last.StockQuantity, received, issued)
	} else {
		stock = ledger.Next(0, received, issued)
	}

	rec := models.Catalog{
		Key:                     store.NewKey(req.CatalogName, s.now()),
		CatalogName:             req.CatalogName,
		ReceiptDate:             req.ReceiptDate,
		DeliveryDate:            req.DeliveryDate,
		QuantityReceived:        received,
		IssueQuantity:           issued,
		StockQuantity:           stock,
		DistributionDestination: req.DistributionDestination,
		Requester:               req.Requester,
		Remarks:                 req.Remarks,
	}
	if err := s.store.WriteCatalog(ctx, &rec); err != nil {
		return models.Catalog{}, err
	}

	if s.refresh != nil {
		s.refresh(rec)
	}
	return rec, nil
}

// Groups: kayıtlar katalog adına göre gruplanmış, bakiyeler yeniden hesaplanmış.
func (s *Service) Groups(ctx context.Context) ([]ledger.Group, error) {
	entries, err := s.store.Catalogs(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.GroupByName(entries), nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, store.Catalogs, key)
}

// DeleteAll: tüm kayıtları sırayla siler, ilk hatada durur.
func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	return s.store.DeleteAll(ctx, store.Catalogs)
}

var sampleEntries = []models.Catalog{
	{
		CatalogName:             "A3HGシリーズ高圧可変ピストンポンプ",
		ReceiptDate:             "2024-12-01",
		QuantityReceived:        50,
		DeliveryDate:            "2024-12-05",
		IssueQuantity:           10,
		StockQuantity:           40,
		DistributionDestination: "東京支社",
		Requester:               "田中太郎",
		Remarks:                 "新規在庫",
	},
	{
		CatalogName:             "比例電磁式方向・流量制御弁　EDFHG-04/06",
		ReceiptDate:             "2024-12-02",
		QuantityReceived:        30,
		DeliveryDate:            "2024-12-06",
		IssueQuantity:           5,
		StockQuantity:           25,
		DistributionDestination: "大阪支社",
		Requester:               "山田花子",
		Remarks:                 "補充在庫",
	},
}

// GenerateSample: örnek kayıtları sırayla yazar. Anahtarlar milisaniye
// kaydırılarak ayrıştırılır.
func (s *Service) GenerateSample(ctx context.Context) ([]models.Catalog, error) {
	base := s.now()
	written := make([]models.Catalog, 0, len(sampleEntries))
	for i, sample := range sampleEntries {
		rec := sample
		rec.Key = store.NewKey(rec.CatalogName, base.Add(time.Duration(i)*time.Millisecond))
		if err := s.store.WriteCatalog(ctx, &rec); err != nil {
			return written, err
		}
		written = append(written, rec)
	}
	return written, nil
}
