package form

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRequired(t *testing.T) {
	missing := Required("CatalogName", "A", "ReceiptDate", "", "Requester", "   ")
	if len(missing) != 2 || missing[0] != "ReceiptDate" || missing[1] != "Requester" {
		t.Errorf("Required() = %v, want [ReceiptDate Requester]", missing)
	}

	if got := Required("CatalogName", "A"); len(got) != 0 {
		t.Errorf("Required() = %v, want empty", got)
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var body struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12","b":7,"c":"","d":null}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.A != "12" || body.B != "7" {
		t.Errorf("got a=%q b=%q, want 12 and 7", body.A, body.B)
	}
	if !body.C.Blank() || !body.D.Blank() {
		t.Errorf("c and d should be blank, got %q %q", body.C, body.D)
	}
}

func TestValue_Quantity(t *testing.T) {
	if n, err := Value("").Quantity("x"); err != nil || n != 0 {
		t.Errorf("blank Quantity() = %d, %v, want 0, nil", n, err)
	}
	if n, err := Value(" 30 ").Quantity("x"); err != nil || n != 30 {
		t.Errorf("Quantity() = %d, %v, want 30, nil", n, err)
	}

	for _, in := range []Value{"-1", "abc", "1.5"} {
		_, err := in.Quantity("QuantityReceived")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Quantity(%q) error = %v, want ValidationError", in, err)
			continue
		}
		if verr.Fields[0] != "QuantityReceived" {
			t.Errorf("Quantity(%q) field = %v", in, verr.Fields)
		}
	}
}

func TestValue_IntOrZero(t *testing.T) {
	if got := Value("oops").IntOrZero(); got != 0 {
		t.Errorf("IntOrZero() = %d, want 0", got)
	}
	if got := Value("5").IntOrZero(); got != 5 {
		t.Errorf("IntOrZero() = %d, want 5", got)
	}
}
