package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError: zorunlu alan eksik veya geçersiz. Yazma yapılmaz,
// kullanıcıya engelleyici uyarı olarak gösterilir.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

// Required: boş olan alanların adlarını sırayla döndürür.
// pairs: ad, değer, ad, değer...
func Required(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}

// Value: formdan gelen sayı alanı. Boş string "girilmedi" anlamına gelir,
// JSON'da hem "12" hem 12 kabul edilir.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(strings.TrimSpace(s))
		return nil
	}
	*v = Value(raw)
	return nil
}

func (v Value) Blank() bool {
	return strings.TrimSpace(string(v)) == ""
}

// Int: boş değer 0 sayılır.
func (v Value) Int() (int, error) {
	if v.Blank() {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(string(v)))
}

// IntOrZero: çözümlenemeyen değerler 0 sayılır (canlı hesaplama için).
func (v Value) IntOrZero() int {
	n, err := v.Int()
	if err != nil {
		return 0
	}
	return n
}

// Quantity: boş değilse negatif olmayan tam sayı olmalı.
func (v Value) Quantity(field string) (int, error) {
	n, err := v.Int()
	if err != nil || n < 0 {
		return 0, &ValidationError{
			Fields:  []string{field},
			Message: "Miktar negatif olmayan bir tam sayı olmalıdır",
		}
	}
	return n, nil
}
