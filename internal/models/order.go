package models

import (
	"strconv"
	"strings"
	"time"
)

// Order: Orders koleksiyonundaki sipariş / çıkış talebi.
type Order struct {
	Key           string    `gorm:"primaryKey;size:255;column:record_key" json:"_key"`
	CatalogName   string    `gorm:"size:255;index;not null;column:catalog_name" json:"CatalogName"`
	OrderQuantity int       `gorm:"not null;default:0;column:order_quantity" json:"OrderQuantity"`
	Requester     string    `gorm:"size:255;index;column:requester" json:"Requester"`
	Message       string    `gorm:"type:text;column:message" json:"Message"` // zengin metin (ham HTML)
	OrderDate     string    `gorm:"size:10;index;column:order_date" json:"OrderDate"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// EnsureOrderDate: OrderDate boşsa anahtarın sonundaki milisaniye
// damgasından türetir. Damga sayı değilse boş bırakır.
func (o *Order) EnsureOrderDate() {
	if o.OrderDate != "" {
		return
	}
	idx := strings.LastIndex(o.Key, "_")
	ts := o.Key[idx+1:]
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return
	}
	o.OrderDate = time.UnixMilli(ms).UTC().Format("2006-01-02")
}
