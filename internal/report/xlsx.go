package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "稼働報告書"

// XLSXRenderer writes the report as a single-sheet workbook
type XLSXRenderer struct{}

// NewXLSXRenderer creates a new workbook renderer
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Extension() string {
	return ".xlsx"
}

// Render implements Renderer
func (r *XLSXRenderer) Render(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	sw := &sheetWriter{file: f, sheet: xlsxSheet, row: 1}
	sw.write(doc.Addressee)
	sw.skip()
	sw.write(doc.Title)
	sw.write(doc.WorkerLine())
	sw.skip()

	sw.writeStyled(styles.header, SummaryHeaders...)
	sw.write(doc.Summary.Cells()...)
	if line := doc.RemarksLine(); line != "" {
		sw.write(line)
	}
	sw.skip()

	sw.write("【稼働詳細】")
	sw.writeStyled(styles.header, DetailHeaders...)
	for _, row := range doc.Rows {
		if row.Off {
			sw.writeStyled(styles.off, row.Cells()...)
		} else {
			sw.write(row.Cells()...)
		}
	}
	if sw.err != nil {
		return fmt.Errorf("write sheet: %w", sw.err)
	}

	_ = f.SetCellStyle(xlsxSheet, "A3", "A3", styles.title)
	_ = f.SetColWidth(xlsxSheet, "A", "F", 12)
	_ = f.SetColWidth(xlsxSheet, "G", "G", 48)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header int
	off    int
	title  int
}

func newSheetStyles(f *excelize.File) (*sheetStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"EA7828"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	off, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "969696"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F5F5F5"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create off-day style: %w", err)
	}
	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	return &sheetStyles{header: header, off: off, title: title}, nil
}

// sheetWriter appends rows and remembers the first error
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
	err   error
}

func (sw *sheetWriter) write(values ...string) {
	sw.writeStyled(0, values...)
}

func (sw *sheetWriter) writeStyled(style int, values ...string) {
	if sw.err != nil {
		return
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, sw.row)
		if err != nil {
			sw.err = err
			return
		}
		if err := sw.file.SetCellValue(sw.sheet, cell, v); err != nil {
			sw.err = err
			return
		}
	}
	if style != 0 && len(values) > 0 {
		start, _ := excelize.CoordinatesToCellName(1, sw.row)
		end, _ := excelize.CoordinatesToCellName(len(values), sw.row)
		if err := sw.file.SetCellStyle(sw.sheet, start, end, style); err != nil {
			sw.err = err
			return
		}
	}
	sw.row++
}

func (sw *sheetWriter) skip() {
	sw.row++
}
