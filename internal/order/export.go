package order

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeaders = []any{"カタログ名", "注文数量", "依頼者", "メッセージ", "注文日"}

func (s *Service) Export(ctx context.Context, w io.Writer) error {
	groups, err := s.Groups(ctx)
	if err != nil {
		return err
	}
	f, err := BuildWorkbook(groups)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// BuildWorkbook: siparişleri gruplar halinde yazar; her grubun altında toplam miktar.
// Mesaj sütununa HTML yerine düz metin yazılır.
func BuildWorkbook(groups []Group) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]any{exportHeaders}
	for _, g := range groups {
		for _, r := range g.Rows {
			o := r.Order
			rows = append(rows, []any{o.CatalogName, o.OrderQuantity, o.Requester, r.MessageText, o.OrderDate})
		}
		rows = append(rows, []any{g.CatalogName, g.TotalQuantity, "合計"})
	}

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetColWidth(exportSheet, "A", "A", 40)
	f.SetColWidth(exportSheet, "D", "D", 50)
	return f, nil
}
