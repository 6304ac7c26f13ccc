package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalog-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection: uzak depodaki üst seviye koleksiyon adı.
type Collection string

const (
	Catalogs Collection = "Catalogs"
	Orders   Collection = "Orders"
)

var (
	ErrNotFound          = errors.New("kayıt bulunamadı")
	ErrUnknownField      = errors.New("bilinmeyen alan")
	ErrInvalidValue      = errors.New("geçersiz değer")
	ErrUnknownCollection = errors.New("bilinmeyen koleksiyon")
)

// RemoteError: depo işleminin reddedildiği durumlar (bağlantı kopması vs.).
// Otomatik tekrar denenmez.
type RemoteError struct {
	Op         string
	Collection Collection
	Err        error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s başarısız: %v", e.Op, e.Collection, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

type fieldKind int

const (
	textField fieldKind = iota
	intField
)

type fieldSpec struct {
	column string
	kind   fieldKind
}

// Satır içi düzenlemede yazılabilen alanlar (wire adı -> kolon)
var patchableFields = map[Collection]map[string]fieldSpec{
	Catalogs: {
		"CatalogName":             {"catalog_name", textField},
		"ReceiptDate":             {"receipt_date", textField},
		"QuantityReceived":        {"quantity_received", intField},
		"DeliveryDate":            {"delivery_date", textField},
		"IssueQuantity":           {"issue_quantity", intField},
		"StockQuantity":           {"stock_quantity", intField},
		"DistributionDestination": {"distribution_destination", textField},
		"Requester":               {"requester", textField},
		"Remarks":                 {"remarks", textField},
	},
	Orders: {
		"CatalogName":   {"catalog_name", textField},
		"OrderQuantity": {"order_quantity", intField},
		"Requester":     {"requester", textField},
		"Message":       {"message", textField},
		"OrderDate":     {"order_date", textField},
	},
}

// Store: Catalogs ve Orders koleksiyonları için veri erişim katmanı.
// Her yazma işleminden sonra ilgili koleksiyonun aboneleri uyarılır.
type Store struct {
	db  *gorm.DB
	hub *hub
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, hub: newHub()}
}

// NewKey: "<CatalogName>_<unixMillis>" biçiminde kayıt anahtarı üretir.
func NewKey(name string, now time.Time) string {
	return name + "_" + strconv.FormatInt(now.UnixMilli(), 10)
}

func modelFor(coll Collection) (any, error) {
	switch coll {
	case Catalogs:
		return &models.Catalog{}, nil
	case Orders:
		return &models.Order{}, nil
	default:
		return nil, ErrUnknownCollection
	}
}

// Catalogs: koleksiyonun tüm kayıtları (anahtar sırasıyla).
func (s *Store) Catalogs(ctx context.Context) ([]models.Catalog, error) {
	var recs []models.Catalog
	if err := s.db.WithContext(ctx).Order("record_key ASC").Find(&recs).Error; err != nil {
		return nil, &RemoteError{Op: "get", Collection: Catalogs, Err: err}
	}
	return recs, nil
}

// Orders: tüm siparişler. OrderDate boş olanlar anahtardan tamamlanır.
func (s *Store) Orders(ctx context.Context) ([]models.Order, error) {
	var recs []models.Order
	if err := s.db.WithContext(ctx).Order("record_key ASC").Find(&recs).Error; err != nil {
		return nil, &RemoteError{Op: "get", Collection: Orders, Err: err}
	}
	for i := range recs {
		recs[i].EnsureOrderDate()
	}
	return recs, nil
}

// Keys: koleksiyondaki tüm anahtarlar.
func (s *Store) Keys(ctx context.Context, coll Collection) ([]string, error) {
	model, err := modelFor(coll)
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := s.db.WithContext(ctx).Model(model).Order("record_key ASC").Pluck("record_key", &keys).Error; err != nil {
		return nil, &RemoteError{Op: "get", Collection: coll, Err: err}
	}
	return keys, nil
}

// WriteCatalog: kaydı anahtarına tam olarak yazar (yoksa oluşturur, varsa üzerine yazar).
func (s *Store) WriteCatalog(ctx context.Context, rec *models.Catalog) error {
	if rec.Key == "" {
		return fmt.Errorf("write %s: anahtar boş olamaz", Catalogs)
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error; err != nil {
		return &RemoteError{Op: "write", Collection: Catalogs, Err: err}
	}
	s.hub.notify(Catalogs)
	return nil
}

func (s *Store) WriteOrder(ctx context.Context, rec *models.Order) error {
	if rec.Key == "" {
		return fmt.Errorf("write %s: anahtar boş olamaz", Orders)
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error; err != nil {
		return &RemoteError{Op: "write", Collection: Orders, Err: err}
	}
	s.hub.notify(Orders)
	return nil
}

// Patch: mevcut kayda tek bir alanı yazar. Sayısal alanlar burada çözümlenir,
// bakiye yeniden hesaplanmaz.
func (s *Store) Patch(ctx context.Context, coll Collection, key, field, value string) error {
	model, err := modelFor(coll)
	if err != nil {
		return err
	}
	col, ok := patchableFields[coll][field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	var v any = value
	if col.kind == intField {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, value)
		}
		v = n
	}

	res := s.db.WithContext(ctx).Model(model).Where("record_key = ?", key).Update(col.column, v)
	if res.Error != nil {
		return &RemoteError{Op: "patch", Collection: coll, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.hub.notify(coll)
	return nil
}

// Delete: tek kaydı siler. Olmayan kaydı silmek hata değildir.
func (s *Store) Delete(ctx context.Context, coll Collection, key string) error {
	model, err := modelFor(coll)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("record_key = ?", key).Delete(model)
	if res.Error != nil {
		return &RemoteError{Op: "delete", Collection: coll, Err: res.Error}
	}
	if res.RowsAffected > 0 {
		s.hub.notify(coll)
	}
	return nil
}

// DeleteAll: koleksiyondaki kayıtları tek tek, sırayla siler.
// İlk hatada durur ve o ana kadar silinen sayıyı döndürür.
func (s *Store) DeleteAll(ctx context.Context, coll Collection) (int, error) {
	keys, err := s.Keys(ctx, coll)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, key := range keys {
		if err := s.Delete(ctx, coll, key); err != nil {
			return deleted, fmt.Errorf("%s silinemedi: %w", key, err)
		}
		deleted++
	}
	return deleted, nil
}
