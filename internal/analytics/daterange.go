package analytics

import (
	"strconv"
	"time"

	"catalog-backend/internal/form"
)

const (
	dateLayout    = "2006-01-02"
	DefaultPreset = 30
)

// DateRange: kapalı aralık [Start, End], gün çözünürlüğünde.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Preset: son N gün, bugün dahil.
func Preset(days int, now time.Time) DateRange {
	if days <= 0 {
		days = DefaultPreset
	}
	end := day(now)
	return DateRange{Start: end.AddDate(0, 0, -days+1), End: end}
}

func Custom(start, end string) (DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, &form.ValidationError{Fields: []string{"start"}, Message: "Tarih formatı 'YYYY-MM-DD' olmalı"}
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, &form.ValidationError{Fields: []string{"end"}, Message: "Tarih formatı 'YYYY-MM-DD' olmalı"}
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseRange: preset "7", "30", "90"... ya da "custom". Boş preset 30 gündür.
func ParseRange(preset, start, end string, now time.Time) (DateRange, error) {
	switch preset {
	case "":
		return Preset(DefaultPreset, now), nil
	case "custom":
		return Custom(start, end)
	}
	n, err := strconv.Atoi(preset)
	if err != nil || n <= 0 {
		return DateRange{}, &form.ValidationError{Fields: []string{"preset"}, Message: "Geçersiz tarih aralığı"}
	}
	return Preset(n, now), nil
}

// Contains: tarih çözümlenemiyorsa false.
func (r DateRange) Contains(date string) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return []byte(`{"start":"` + r.Start.Format(dateLayout) + `","end":"` + r.End.Format(dateLayout) + `"}`), nil
}
