// Package analytics, tarih aralığına göre süzülmüş katalog ve sipariş
// verilerinden gösterge kartlarını hesaplar.
package analytics

import (
	"sort"
	"strconv"
	"time"

	"catalog-backend/internal/ledger"
	"catalog-backend/internal/models"
)

const (
	LowStockThreshold = 100
	topN              = 5
	trendDays         = 30
	noValue           = "--"
)

type Card struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Registry: kartlar gösterim sırasıyla.
var Registry = []Card{
	{"totalStock", "総在庫数", "fa-boxes-stacked"},
	{"stockByItem", "カタログ別在庫", "fa-layer-group"},
	{"avgStock", "平均在庫数", "fa-chart-bar"},
	{"stockTrend", "在庫トレンド", "fa-chart-line"},
	{"stockMovement", "在庫動向(受領/発行)", "fa-arrows-left-right"},
	{"lowStock", "在庫不足アラート", "fa-triangle-exclamation"},
	{"stockoutRate", "在庫切れ率", "fa-percent"},
	{"totalOrders", "総注文数", "fa-cart-shopping"},
	{"totalQtyOrdered", "総注文数量", "fa-cubes"},
	{"ordersByItem", "カタログ別注文", "fa-list-ol"},
	{"ordersByRequester", "依頼者別注文", "fa-user-friends"},
	{"avgOrderQty", "平均注文数量", "fa-divide"},
	{"topIssued", "発行数トップ", "fa-ranking-star"},
	{"topOrdered", "注文数トップ", "fa-ranking-star"},
	{"leastPopular", "不人気カタログ", "fa-face-frown"},
	{"catalogStockOrderCompare", "カタログ別在庫・注文比較", "fa-chart-column"},
}

// DefaultSelection: karşılaştırma kartı hariç tüm kartlar.
var DefaultSelection = []string{
	"totalStock", "stockByItem", "avgStock", "stockTrend", "stockMovement",
	"lowStock", "stockoutRate", "totalOrders", "totalQtyOrdered", "ordersByItem",
	"ordersByRequester", "avgOrderQty", "topIssued", "topOrdered", "leastPopular",
}

func Known(key string) bool {
	for _, c := range Registry {
		if c.Key == key {
			return true
		}
	}
	return false
}

type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

type Chart struct {
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Result: tek kartın hesaplanmış içeriği. Kart türüne göre Value, Chart
// veya Items doludur.
type Result struct {
	Card
	Value   string   `json:"value,omitempty"`
	Unit    string   `json:"unit,omitempty"`
	Chart   *Chart   `json:"chart,omitempty"`
	Items   []Item   `json:"items,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Data: bir render geçişinin girdisi.
type Data struct {
	Catalogs     []models.Catalog
	Orders       []models.Order
	Range        DateRange
	Now          time.Time
	CompareNames []string // nil: tüm adlar seçili
}

func (d Data) filteredCatalogs() []models.Catalog {
	out := make([]models.Catalog, 0, len(d.Catalogs))
	for _, e := range d.Catalogs {
		if d.Range.Contains(e.ReceiptDate) {
			out = append(out, e)
		}
	}
	return out
}

func (d Data) filteredOrders() []models.Order {
	out := make([]models.Order, 0, len(d.Orders))
	for _, o := range d.Orders {
		if d.Range.Contains(o.OrderDate) {
			out = append(out, o)
		}
	}
	return out
}

// tally: ilk görülme sırasını koruyan toplayıcı.
type tally struct {
	names []string
	sums  map[string]int
}

func newTally() *tally {
	return &tally{sums: make(map[string]int)}
}

func (t *tally) add(name string, n int) {
	if _, ok := t.sums[name]; !ok {
		t.names = append(t.names, name)
	}
	t.sums[name] += n
}

func (t *tally) values() []int {
	out := make([]int, len(t.names))
	for i, n := range t.names {
		out[i] = t.sums[n]
	}
	return out
}

// ranked: eşitlikte ilk görülme sırası korunur.
func (t *tally) ranked(desc bool, limit int) []Item {
	items := make([]Item, len(t.names))
	for i, n := range t.names {
		items[i] = Item{Name: n, Count: t.sums[n]}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return items[i].Count > items[j].Count
		}
		return items[i].Count < items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func oneDecimal(total, n int) string {
	if n == 0 {
		return noValue
	}
	return strconv.FormatFloat(float64(total)/float64(n), 'f', 1, 64)
}

func barChart(label string, t *tally) *Chart {
	labels := t.names
	if labels == nil {
		labels = []string{}
	}
	return &Chart{Type: "bar", Labels: labels, Datasets: []Dataset{{Label: label, Data: t.values()}}}
}

var computers = map[string]func(Data) Result{
	"totalStock": func(d Data) Result {
		total := 0
		for _, e := range d.filteredCatalogs() {
			total += e.StockQuantity
		}
		return Result{Value: strconv.Itoa(total)}
	},
	"stockByItem": func(d Data) Result {
		t := newTally()
		for _, e := range d.filteredCatalogs() {
			t.add(e.CatalogName, e.StockQuantity)
		}
		return Result{Chart: barChart("在庫数量", t)}
	},
	"avgStock": func(d Data) Result {
		entries := d.filteredCatalogs()
		total := 0
		for _, e := range entries {
			total += e.StockQuantity
		}
		return Result{Value: oneDecimal(total, len(entries))}
	},
	// Seçilen aralıktan bağımsız olarak her zaman son 30 gün.
	"stockTrend": func(d Data) Result {
		trend := Range30(d.Now)
		t := newTally()
		for _, e := range d.Catalogs {
			if e.ReceiptDate == "" || !trend.Contains(e.ReceiptDate) {
				continue
			}
			t.add(e.ReceiptDate, e.StockQuantity)
		}
		sort.Strings(t.names)
		c := barChart("在庫数量", t)
		c.Type = "line"
		return Result{Chart: c}
	},
	"stockMovement": func(d Data) Result {
		received, issued := 0, 0
		for _, e := range d.filteredCatalogs() {
			received += e.QuantityReceived
			issued += e.IssueQuantity
		}
		return Result{Chart: &Chart{
			Type:     "bar",
			Labels:   []string{"受領", "発行"},
			Datasets: []Dataset{{Label: "数量", Data: []int{received, issued}}},
		}}
	},
	"lowStock": func(d Data) Result {
		items := make([]Item, 0)
		for _, e := range d.filteredCatalogs() {
			if e.StockQuantity < LowStockThreshold {
				items = append(items, Item{Name: e.CatalogName, Count: e.StockQuantity})
			}
		}
		r := Result{Items: items}
		if len(items) == 0 {
			r.Value = "該当なし"
		}
		return r
	},
	"stockoutRate": func(d Data) Result {
		entries := d.filteredCatalogs()
		if len(entries) == 0 {
			return Result{Value: noValue, Unit: "%"}
		}
		out := 0
		for _, e := range entries {
			if e.StockQuantity == 0 {
				out++
			}
		}
		rate := float64(out) / float64(len(entries)) * 100
		return Result{Value: strconv.FormatFloat(rate, 'f', 1, 64), Unit: "%"}
	},
	"totalOrders": func(d Data) Result {
		return Result{Value: strconv.Itoa(len(d.filteredOrders()))}
	},
	"totalQtyOrdered": func(d Data) Result {
		total := 0
		for _, o := range d.filteredOrders() {
			total += o.OrderQuantity
		}
		return Result{Value: strconv.Itoa(total)}
	},
	"ordersByItem": func(d Data) Result {
		t := newTally()
		for _, o := range d.filteredOrders() {
			t.add(o.CatalogName, o.OrderQuantity)
		}
		return Result{Chart: barChart("注文数量", t)}
	},
	"ordersByRequester": func(d Data) Result {
		t := newTally()
		for _, o := range d.filteredOrders() {
			t.add(o.Requester, o.OrderQuantity)
		}
		return Result{Chart: barChart("注文数量", t)}
	},
	"avgOrderQty": func(d Data) Result {
		orders := d.filteredOrders()
		total := 0
		for _, o := range orders {
			total += o.OrderQuantity
		}
		return Result{Value: oneDecimal(total, len(orders))}
	},
	// Çıkış miktarı yalnızca katalog kayıtlarında bulunur.
	"topIssued": func(d Data) Result {
		t := newTally()
		for _, e := range d.filteredCatalogs() {
			t.add(e.CatalogName, e.IssueQuantity)
		}
		return Result{Items: t.ranked(true, topN)}
	},
	"topOrdered": func(d Data) Result {
		t := newTally()
		for _, o := range d.filteredOrders() {
			t.add(o.CatalogName, 1)
		}
		return Result{Items: t.ranked(true, topN)}
	},
	"leastPopular": func(d Data) Result {
		t := newTally()
		for _, o := range d.filteredOrders() {
			t.add(o.CatalogName, 1)
		}
		return Result{Items: t.ranked(false, topN)}
	},
	"catalogStockOrderCompare": compare,
}

// compare: seçili katalog adları için son stok ve toplam sipariş miktarı.
// Aralık filtresi uygulanmaz.
func compare(d Data) Result {
	seen := make(map[string]bool)
	var all []string
	for _, e := range d.Catalogs {
		if e.CatalogName != "" && !seen[e.CatalogName] {
			seen[e.CatalogName] = true
			all = append(all, e.CatalogName)
		}
	}
	for _, o := range d.Orders {
		if o.CatalogName != "" && !seen[o.CatalogName] {
			seen[o.CatalogName] = true
			all = append(all, o.CatalogName)
		}
	}

	selected := all
	if d.CompareNames != nil {
		selected = make([]string, 0, len(d.CompareNames))
		for _, n := range d.CompareNames {
			if seen[n] {
				selected = append(selected, n)
			}
		}
	}

	ordered := make(map[string]int)
	for _, o := range d.Orders {
		ordered[o.CatalogName] += o.OrderQuantity
	}

	stock := make([]int, len(selected))
	qty := make([]int, len(selected))
	for i, n := range selected {
		if last, ok := ledger.Latest(d.Catalogs, n); ok {
			stock[i] = last.StockQuantity
		}
		qty[i] = ordered[n]
	}
	if selected == nil {
		selected = []string{}
	}

	return Result{
		Options: all,
		Chart: &Chart{
			Type:   "bar",
			Labels: selected,
			Datasets: []Dataset{
				{Label: "在庫数量", Data: stock},
				{Label: "注文数量", Data: qty},
			},
		},
	}
}

// Range30: trend kartının sabit aralığı.
func Range30(now time.Time) DateRange {
	end := day(now)
	return DateRange{Start: end.AddDate(0, 0, -trendDays), End: end}
}

// Render: yalnızca seçili kartlar, kayıt sırasıyla. Bilinmeyen anahtarlar yok sayılır.
func Render(d Data, selection []string) []Result {
	selected := make(map[string]bool, len(selection))
	for _, k := range selection {
		selected[k] = true
	}

	results := make([]Result, 0, len(selection))
	for _, card := range Registry {
		if !selected[card.Key] {
			continue
		}
		r := computers[card.Key](d)
		r.Card = card
		results = append(results, r)
	}
	return results
}
