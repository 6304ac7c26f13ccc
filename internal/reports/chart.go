// Package reports, katalog kayıtlarından stok grafiği üretir.
package reports

import (
	"sync/atomic"

	"catalog-backend/internal/models"
)

const (
	StockLabel    = "在庫数量"
	ReceivedLabel = "受領数量"
)

type Dataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BackgroundColor string `json:"backgroundColor"`
}

// Chart: istemcideki çubuk grafiğin tanımı. ID her yeni grafikte artar;
// istemci eski ID'li grafiği yok edip yenisini çizer.
type Chart struct {
	ID       int64     `json:"id"`
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`

	destroyed atomic.Bool
}

func (c *Chart) Destroy() {
	c.destroyed.Store(true)
}

func (c *Chart) Destroyed() bool {
	return c.destroyed.Load()
}

var chartSeq atomic.Int64

// StockChart: her kayıt için bir çubuk; etiket CatalogName, veri kümeleri
// kayıtlı StockQuantity ve QuantityReceived.
func StockChart(entries []models.Catalog) *Chart {
	labels := make([]string, 0, len(entries))
	stock := make([]int, 0, len(entries))
	received := make([]int, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.CatalogName)
		stock = append(stock, e.StockQuantity)
		received = append(received, e.QuantityReceived)
	}

	return &Chart{
		ID:     chartSeq.Add(1),
		Type:   "bar",
		Labels: labels,
		Datasets: []Dataset{
			{Label: StockLabel, Data: stock, BackgroundColor: "rgba(75, 192, 192, 0.5)"},
			{Label: ReceivedLabel, Data: received, BackgroundColor: "rgba(153, 102, 255, 0.5)"},
		},
	}
}
