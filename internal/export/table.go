package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KimNorgaard/go-weathercfg/ast"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Weather"

// Table is a view flattened to one row per region. The first column holds the
// SID; every other column is "<Weather>_<Field>" for each selected weather
// type and field. Missing cells hold the invalid value.
type Table struct {
	Header []string
	Rows   [][]ast.Value
}

// NewTable flattens v. Columns follow the order of sel.
func NewTable(v View, sel Selection) Table {
	t := Table{Header: []string{"Region"}}
	for _, w := range sel.Weathers {
		for _, f := range sel.Fields {
			t.Header = append(t.Header, w+"_"+f)
		}
	}

	for _, r := range v.Regions {
		row := make([]ast.Value, 0, len(t.Header))
		row = append(row, ast.String(r.SID))
		for _, name := range sel.Weathers {
			w, _ := r.Weather(name)
			for _, f := range sel.Fields {
				val, _ := w.Get(f)
				row = append(row, val)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// WriteTSV writes the table as tab-separated lines, header first.
func (t Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(t.Header, "\t"))
	cells := make([]string, 0, len(t.Header))
	for _, row := range t.Rows {
		cells = cells[:0]
		for _, v := range row {
			cells = append(cells, Text(v))
		}
		fmt.Fprintln(bw, strings.Join(cells, "\t"))
	}
	return bw.Flush()
}

// WriteXLSX writes the table as a workbook with a single sheet named
// SheetName. Numbers are stored as numeric cells and missing cells are left
// blank.
func (t Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("weathercfg: creating sheet: %w", err)
	}

	for c, h := range t.Header {
		if err := setCell(f, c+1, 1, h); err != nil {
			return err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("weathercfg: creating header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("weathercfg: styling header: %w", err)
	}

	for r, row := range t.Rows {
		for c, v := range row {
			if !v.IsValid() {
				continue
			}
			if err := setCell(f, c+1, r+2, v.Interface()); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("weathercfg: writing workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("weathercfg: setting %s: %w", cell, err)
	}
	return nil
}
