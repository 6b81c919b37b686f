package exchange

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/tartampluch/addressbook/internal/book"
	"github.com/tartampluch/addressbook/internal/config"
	"github.com/xuri/excelize/v2"
)

// columnWidths follows config.SheetHeader.
var columnWidths = []float64{30, 30, 40, 14}

// EncodeSheet writes the records as an XLSX workbook with one row per contact.
// Multiple phones or emails share a cell, separated by commas.
func EncodeSheet(w io.Writer, records iter.Seq[*book.Record]) (int, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := config.SheetContacts
	if err := f.SetSheetName(config.SheetDefault, sheet); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrSheetBuild, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrSheetBuild, err)
	}

	if err := setRow(f, sheet, 1, toAny(config.SheetHeader)); err != nil {
		return 0, err
	}
	last, _ := excelize.CoordinatesToCellName(len(config.SheetHeader), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrSheetBuild, err)
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return 0, fmt.Errorf("%s: %w", config.ErrSheetBuild, err)
		}
	}

	row := 2
	for r := range records {
		birthday, _ := r.Birthday()
		values := []any{
			r.Name(),
			strings.Join(r.Phones(), config.ListSeparator),
			strings.Join(r.Emails(), config.ListSeparator),
			birthday,
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return 0, err
		}
		row++
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrSheetWrite, err)
	}

	count := row - 2
	slog.Info(config.MsgExported,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyFormat, config.ExtXLSX,
		config.LogKeyCount, count)
	return count, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSheetBuild, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSheetBuild, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
