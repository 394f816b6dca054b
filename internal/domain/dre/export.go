package dre

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "DRE"

// builtin "#,##0.00"
const numFmtMoney = 4

// WriteXLSX grava o relatório numa planilha com uma linha por conta.
func WriteXLSX(w io.Writer, report *Report, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("renomear aba: %w", err)
	}

	styles, err := newExportStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(exportSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "A1", styles.header); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(report.Columns)+2)
	header = append(header, "Conta", "Sinal")
	for _, c := range report.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(exportSheet, "A3", &header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(exportSheet, "A3", lastCol+"3", styles.header); err != nil {
		return err
	}

	for i, line := range report.Lines {
		row := i + 4
		cells := make([]interface{}, 0, len(line.Values)+3)
		cells = append(cells, line.Name, string(line.Symbol))
		for _, v := range line.Values {
			cells = append(cells, v.Value.InexactFloat64())
		}
		cells = append(cells, line.Total.Value.InexactFloat64())

		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheet, start, &cells); err != nil {
			return err
		}

		tones := append(append([]Cell{}, line.Values...), line.Total)
		for j, cell := range tones {
			name, _ := excelize.CoordinatesToCellName(j+3, row)
			style := styles.favorable
			if cell.Tone == ToneUnfavorable {
				style = styles.unfavorable
			}
			if err := f.SetCellStyle(exportSheet, name, name, style); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "A", 36); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "C", lastCol, 14); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("gravar planilha: %w", err)
	}
	return nil
}

type exportStyles struct {
	header      int
	favorable   int
	unfavorable int
}

func newExportStyles(f *excelize.File) (exportStyles, error) {
	var s exportStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	if s.favorable, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney, Font: &excelize.Font{Color: "2E7D32"}}); err != nil {
		return s, err
	}
	if s.unfavorable, err = f.NewStyle(&excelize.Style{NumFmt: numFmtMoney, Font: &excelize.Font{Color: "C62828"}}); err != nil {
		return s, err
	}
	return s, nil
}
