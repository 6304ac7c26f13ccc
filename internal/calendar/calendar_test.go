package calendar

import (
	"context"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/database"
	"catalog-backend/internal/models"
	"catalog-backend/internal/store"
)

func TestShortTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Pump", "Pump"},
		{"12345678", "12345678"},
		{"123456789", "12345678…"},
		{"A3HGシリーズ高圧可変ピストンポンプ", "A3HGシリーズ…"},
	}
	for _, tt := range tests {
		if got := ShortTitle(tt.in); got != tt.want {
			t.Errorf("ShortTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildRange(t *testing.T) {
	entries := []models.Catalog{
		{Key: "a", CatalogName: "A", DeliveryDate: "2024-12-05", StockQuantity: 40},
		{Key: "b", CatalogName: "B", DeliveryDate: "2024-11-30"},
		{Key: "c", CatalogName: "C", DeliveryDate: "2025-01-01"},
		{Key: "d", CatalogName: "D", DeliveryDate: ""},
	}

	all := Build(entries, time.Time{}, time.Time{})
	if len(all) != 4 {
		t.Errorf("no range: %d events, want 4", len(all))
	}

	from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Build(entries, from, to)
	if len(got) != 1 || got[0].Key != "a" {
		t.Fatalf("ranged events = %+v", got)
	}
	if got[0].Badge != "40" || got[0].Start != "2024-12-05" {
		t.Errorf("event = %+v", got[0])
	}
}

func TestDayExactMatch(t *testing.T) {
	db, err := database.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	st := store.New(db)
	ctx := context.Background()
	for _, rec := range []models.Catalog{
		{Key: "A_1", CatalogName: "A", DeliveryDate: "2024-12-05", Requester: "田中太郎"},
		{Key: "B_2", CatalogName: "B", DeliveryDate: "2024-12-05"},
		{Key: "C_3", CatalogName: "C", DeliveryDate: "2024-12-06"},
	} {
		rec := rec
		if err := st.WriteCatalog(ctx, &rec); err != nil {
			t.Fatalf("WriteCatalog: %v", err)
		}
	}

	events, err := NewService(st).Day(ctx, "2024-12-05")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Day = %d events, want 2", len(events))
	}
	if events[0].Details.Requester != "田中太郎" {
		t.Errorf("details = %+v", events[0].Details)
	}
	if events[1].Badge != "" {
		t.Errorf("zero stock badge = %q, want empty", events[1].Badge)
	}
}
