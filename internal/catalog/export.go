package catalog

import (
	"context"
	"io"

	"catalog-backend/internal/ledger"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Catalogs"

var exportHeaders = []string{"カタログ名", "受領日", "受領数量", "納品日", "発行数量", "在庫数量", "配布先", "依頼者", "備考"}

// Export: gruplanmış defteri XLSX olarak yazar. Her grubun altında toplam satırı olur.
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

// BuildWorkbook: defter gruplarından çalışma kitabı oluşturur.
func BuildWorkbook(groups []ledger.Group) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := setRow(f, 1, toAny(exportHeaders)); err != nil {
		f.Close()
		return nil, err
	}

	row := 2
	for _, g := range groups {
		for _, r := range g.Rows {
			e := r.Entry
			values := []any{
				e.CatalogName, e.ReceiptDate, e.QuantityReceived, e.DeliveryDate,
				e.IssueQuantity, r.Balance, e.DistributionDestination, e.Requester, e.Remarks,
			}
			if err := setRow(f, row, values); err != nil {
				f.Close()
				return nil, err
			}
			row++
		}
		total := []any{g.CatalogName, "合計:", g.TotalReceived, "", g.TotalIssued, g.FinalBalance}
		if err := setRow(f, row, total); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	f.SetColWidth(exportSheet, "A", "A", 40)
	f.SetColWidth(exportSheet, "B", "F", 12)
	f.SetColWidth(exportSheet, "G", "I", 20)
	return f, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(exportSheet, cell, &values)
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
