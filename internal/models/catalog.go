package models

import "time"

// Catalog: Catalogs koleksiyonundaki tek bir stok defteri kaydı.
// Aynı CatalogName ile birden fazla kayıt olabilir (geçmiş hareketler).
type Catalog struct {
	Key                     string    `gorm:"primaryKey;size:255;column:record_key" json:"_key"`
	CatalogName             string    `gorm:"size:255;index;not null;column:catalog_name" json:"CatalogName"`
	ReceiptDate             string    `gorm:"size:10;column:receipt_date" json:"ReceiptDate"`   // "2024-12-01"
	DeliveryDate            string    `gorm:"size:10;index;column:delivery_date" json:"DeliveryDate"`
	QuantityReceived        int       `gorm:"not null;default:0;column:quantity_received" json:"QuantityReceived"`
	IssueQuantity           int       `gorm:"not null;default:0;column:issue_quantity" json:"IssueQuantity"`
	StockQuantity           int       `gorm:"not null;default:0;column:stock_quantity" json:"StockQuantity"` // kayıt anındaki bakiye
	DistributionDestination string    `gorm:"size:255;column:distribution_destination" json:"DistributionDestination"`
	Requester               string    `gorm:"size:255;column:requester" json:"Requester"`
	Remarks                 string    `gorm:"type:text;column:remarks" json:"Remarks"`
	CreatedAt               time.Time `json:"-"`
	UpdatedAt               time.Time `json:"-"`
}

func (Catalog) TableName() string {
	return "catalogs"
}

// EffectiveDate: sıralama için kullanılan tarih.
// ReceiptDate yoksa DeliveryDate, o da yoksa 1970-01-01.
func (c Catalog) EffectiveDate() time.Time {
	for _, s := range []string{c.ReceiptDate, c.DeliveryDate} {
		if s == "" {
			continue
		}
		if d, err := time.Parse("2006-01-02", s); err == nil {
			return d
		}
	}
	return time.Unix(0, 0).UTC()
}
