// Package export renders extracted transaction records for download as
// CSV or XLSX. Column formatting follows the display semantics of the
// statement viewer: integer quantity, 4-place price, 2-place amount,
// signed 2-place net change.
package export

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/stmtx/statement-extractor/internal/domain/statement"
	"github.com/stmtx/statement-extractor/pkg/money"
)

// Row is the flat download representation of one record.
type Row struct {
	Action     string `csv:"action"`
	Instrument string `csv:"instrument"`
	Currency   string `csv:"currency"`
	Quantity   int64  `csv:"quantity"`
	Price      string `csv:"price"`
	Amount     string `csv:"amount"`
	NetChange  string `csv:"net_change"`
}

func toRows(records []statement.TransactionRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Action:     string(rec.Action),
			Instrument: rec.InstrumentLabel,
			Currency:   rec.Currency,
			Quantity:   rec.Quantity,
			Price:      rec.Price.StringFixed(4),
			Amount:     rec.Amount.StringFixed(2),
			NetChange:  rec.NetChange.StringFixed(2),
		})
	}
	return rows
}

// CSV marshals records into a CSV document with a header row.
func CSV(records []statement.TransactionRecord) ([]byte, error) {
	rows := toRows(records)
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshal csv: %w", err)
	}
	return []byte(out), nil
}

const sheetName = "Transactions"

// XLSX builds a single-sheet workbook with one row per record and
// number formats matching the display semantics.
func XLSX(records []statement.TransactionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Action", "Instrument", "Currency", "Quantity", "Price", "Amount", "Net Change"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, rec := range records {
		rowNum := i + 2
		values := []any{
			string(rec.Action),
			rec.InstrumentLabel,
			rec.Currency,
			rec.Quantity,
			rec.Price.InexactFloat64(),
			rec.Amount.InexactFloat64(),
			rec.NetChange.InexactFloat64(),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if len(records) > 0 {
		last := len(records) + 1
		if err := applyNumFmt(f, "#,##0.0000", "E2", fmt.Sprintf("E%d", last)); err != nil {
			return nil, err
		}
		if err := applyNumFmt(f, "#,##0.00", "F2", fmt.Sprintf("F%d", last)); err != nil {
			return nil, err
		}
		if err := applyNumFmt(f, "+#,##0.00;-#,##0.00;0.00", "G2", fmt.Sprintf("G%d", last)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func applyNumFmt(f *excelize.File, format, from, to string) error {
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, from, to, style)
}

// DisplayPrice renders a price the way the transactions table shows it:
// currency symbol plus four decimal places.
func DisplayPrice(rec statement.TransactionRecord) string {
	return money.FormatPrice(rec.Price, rec.Currency)
}

// DisplayAmount renders an amount as 2-place currency.
func DisplayAmount(rec statement.TransactionRecord) string {
	return money.FormatAmount(rec.Amount, rec.Currency)
}
