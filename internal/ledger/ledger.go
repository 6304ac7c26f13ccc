// Package ledger, aynı katalog adına ait kayıtların tarih sırasına göre
// yürüyen stok bakiyesini hesaplar.
package ledger

import (
	"sort"

	"catalog-backend/internal/models"
)

type Row struct {
	Entry   models.Catalog `json:"entry"`
	Balance int            `json:"balance"`
}

type Group struct {
	CatalogName   string `json:"catalog_name"`
	Rows          []Row  `json:"rows"`
	TotalReceived int    `json:"total_received"`
	TotalIssued   int    `json:"total_issued"`
	FinalBalance  int    `json:"final_balance"`
}

// Next: önceki bakiye + gelen - çıkan
func Next(prev, received, issued int) int {
	return prev + received - issued
}

// Sort: kayıtları geçerli tarihe göre artan sırada döndürür (kopya).
// Aynı tarihte giriş sırası korunur.
func Sort(entries []models.Catalog) []models.Catalog {
	out := make([]models.Catalog, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveDate().Before(out[j].EffectiveDate())
	})
	return out
}

// ByName: verilen ada ait kayıtlar, sıralı.
func ByName(entries []models.Catalog, name string) []models.Catalog {
	var out []models.Catalog
	for _, e := range entries {
		if e.CatalogName == name {
			out = append(out, e)
		}
	}
	return Sort(out)
}

// Latest: ada ait en güncel kayıt.
func Latest(entries []models.Catalog, name string) (models.Catalog, bool) {
	sorted := ByName(entries, name)
	if len(sorted) == 0 {
		return models.Catalog{}, false
	}
	return sorted[len(sorted)-1], true
}

// Walk: kayıtlarda kayıtlı StockQuantity'ye güvenmeden bakiyeyi baştan hesaplar.
// balance[0] = received[0] - issued[0], balance[i] = balance[i-1] + received[i] - issued[i]
func Walk(name string, entries []models.Catalog) Group {
	sorted := Sort(entries)
	g := Group{CatalogName: name, Rows: make([]Row, 0, len(sorted))}

	balance := 0
	for _, e := range sorted {
		balance = Next(balance, e.QuantityReceived, e.IssueQuantity)
		g.TotalReceived += e.QuantityReceived
		g.TotalIssued += e.IssueQuantity
		g.Rows = append(g.Rows, Row{Entry: e, Balance: balance})
	}
	g.FinalBalance = balance
	return g
}

// GroupByName: kayıtları katalog adına göre gruplar, ad sırasıyla döndürür.
func GroupByName(entries []models.Catalog) []Group {
	byName := make(map[string][]models.Catalog)
	names := make([]string, 0)
	for _, e := range entries {
		if _, ok := byName[e.CatalogName]; !ok {
			names = append(names, e.CatalogName)
		}
		byName[e.CatalogName] = append(byName[e.CatalogName], e)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Walk(name, byName[name]))
	}
	return groups
}

// Names: benzersiz katalog adları, sıralı.
func Names(entries []models.Catalog) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, e := range entries {
		if e.CatalogName == "" || seen[e.CatalogName] {
			continue
		}
		seen[e.CatalogName] = true
		names = append(names, e.CatalogName)
	}
	sort.Strings(names)
	return names
}
