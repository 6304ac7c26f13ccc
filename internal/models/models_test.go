package models

import "testing"

func TestEffectiveDate(t *testing.T) {
	tests := []struct {
		receipt, delivery, want string
	}{
		{"2024-12-01", "2024-12-05", "2024-12-01"},
		{"", "2024-12-05", "2024-12-05"},
		{"", "", "1970-01-01"},
		{"bad", "2024-12-05", "2024-12-05"},
	}
	for _, tt := range tests {
		c := Catalog{ReceiptDate: tt.receipt, DeliveryDate: tt.delivery}
		if got := c.EffectiveDate().Format("2006-01-02"); got != tt.want {
			t.Errorf("EffectiveDate(%q, %q) = %s, want %s", tt.receipt, tt.delivery, got, tt.want)
		}
	}
}

func TestEnsureOrderDate(t *testing.T) {
	tests := []struct {
		key, date, want string
	}{
		{"Pump_1733011200000", "", "2024-12-01"},
		{"Pump_1733011200000", "2024-11-30", "2024-11-30"},
		{"Pump_abc", "", ""},
		{"nounderscore", "", ""},
	}
	for _, tt := range tests {
		o := Order{Key: tt.key, OrderDate: tt.date}
		o.EnsureOrderDate()
		if o.OrderDate != tt.want {
			t.Errorf("EnsureOrderDate(%q, %q) = %q, want %q", tt.key, tt.date, o.OrderDate, tt.want)
		}
	}
}
