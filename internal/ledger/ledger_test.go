package ledger

import (
	"testing"

	"catalog-backend/internal/models"
)

func entry(key, name, date string, received, issued, stock int) models.Catalog {
	return models.Catalog{
		Key:              key,
		CatalogName:      name,
		ReceiptDate:      date,
		QuantityReceived: received,
		IssueQuantity:    issued,
		StockQuantity:    stock,
	}
}

func TestWalk_RunningBalance(t *testing.T) {
	entries := []models.Catalog{
		entry("A_2", "A", "2024-12-02", 30, 5, 0),
		entry("A_1", "A", "2024-12-01", 50, 10, 999), // kayıtlı stok yok sayılmalı
	}

	g := Walk("A", entries)

	want := []int{40, 65}
	if len(g.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(g.Rows), len(want))
	}
	for i, w := range want {
		if g.Rows[i].Balance != w {
			t.Errorf("balance[%d] = %d, want %d", i, g.Rows[i].Balance, w)
		}
	}
	if g.Rows[0].Entry.Key != "A_1" {
		t.Errorf("first row = %s, want A_1 (date order)", g.Rows[0].Entry.Key)
	}
	if g.TotalReceived != 80 || g.TotalIssued != 15 || g.FinalBalance != 65 {
		t.Errorf("totals = %d/%d/%d, want 80/15/65", g.TotalReceived, g.TotalIssued, g.FinalBalance)
	}
}

func TestWalk_InvariantHolds(t *testing.T) {
	entries := []models.Catalog{
		entry("B_1", "B", "2024-01-03", 7, 2, 0),
		entry("B_2", "B", "2024-01-01", 10, 0, 0),
		entry("B_3", "B", "", 0, 4, 0),
		entry("B_4", "B", "2024-02-01", 1, 9, 0),
	}
	entries[2].DeliveryDate = "2024-01-02"

	g := Walk("B", entries)
	for i, r := range g.Rows {
		prev := 0
		if i > 0 {
			prev = g.Rows[i-1].Balance
		}
		if r.Balance != prev+r.Entry.QuantityReceived-r.Entry.IssueQuantity {
			t.Errorf("row %d balance %d breaks running-balance invariant", i, r.Balance)
		}
	}
	if g.Rows[1].Entry.Key != "B_3" {
		t.Errorf("delivery date fallback not used for ordering, row 1 = %s", g.Rows[1].Entry.Key)
	}
}

func TestSort_MissingDatesFirst(t *testing.T) {
	sorted := Sort([]models.Catalog{
		entry("X_2", "X", "2024-05-01", 0, 0, 0),
		entry("X_1", "X", "", 0, 0, 0),
	})
	if sorted[0].Key != "X_1" {
		t.Errorf("entry without dates should sort as 1970-01-01, got %s first", sorted[0].Key)
	}
}

func TestLatest(t *testing.T) {
	entries := []models.Catalog{
		entry("A_1", "A", "2024-12-01", 50, 10, 40),
		entry("A_2", "A", "2024-12-05", 30, 5, 65),
		entry("B_1", "B", "2024-12-09", 1, 0, 1),
	}

	last, ok := Latest(entries, "A")
	if !ok || last.Key != "A_2" {
		t.Errorf("Latest(A) = %v, %v, want A_2", last.Key, ok)
	}
	if _, ok := Latest(entries, "C"); ok {
		t.Error("Latest(C) should report no predecessor")
	}
}

func TestGroupByName(t *testing.T) {
	groups := GroupByName([]models.Catalog{
		entry("B_1", "B", "2024-12-01", 5, 0, 5),
		entry("A_1", "A", "2024-12-01", 50, 10, 40),
		entry("A_2", "A", "2024-12-02", 30, 5, 65),
	})
	if len(groups) != 2 || groups[0].CatalogName != "A" || groups[1].CatalogName != "B" {
		t.Fatalf("groups = %+v", groups)
	}
	if groups[0].FinalBalance != 65 || groups[1].FinalBalance != 5 {
		t.Errorf("final balances = %d, %d, want 65, 5", groups[0].FinalBalance, groups[1].FinalBalance)
	}
}

func TestNames(t *testing.T) {
	names := Names([]models.Catalog{
		entry("B_1", "B", "", 0, 0, 0),
		entry("A_1", "A", "", 0, 0, 0),
		entry("B_2", "B", "", 0, 0, 0),
		entry("_3", "", "", 0, 0, 0),
	})
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Names() = %v, want [A B]", names)
	}
}
