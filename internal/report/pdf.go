package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFontFamily = "NotoSansJP"
	pdfMargin     = 15.0
)

var (
	headerFill = [3]int{234, 120, 40}
	offFill    = [3]int{245, 245, 245}
	offText    = [3]int{150, 150, 150}
)

// column widths in mm; the note column takes what is left of the line
var detailWidths = []float64{18, 14, 18, 18, 18, 20}

// PDFRenderer lays the report out on A4 portrait
type PDFRenderer struct {
	fontPath string
}

// NewPDFRenderer creates a PDF renderer using the TTF font at fontPath
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{fontPath: fontPath}
}

func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// Render implements Renderer
func (r *PDFRenderer) Render(w io.Writer, doc *Document) error {
	if r.fontPath == "" {
		return ErrFontRequired
	}
	font, err := os.ReadFile(r.fontPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFontRequired, err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", font)
	pdf.SetMargins(pdfMargin, 20, pdfMargin)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pdfMargin
	y := 20.0

	pdf.SetFont(pdfFontFamily, "", 12)
	pdf.Text(pdfMargin, y, doc.Addressee)
	y += 15

	pdf.SetFontSize(18)
	pdf.Text((pageWidth-pdf.GetStringWidth(doc.Title))/2, y, doc.Title)
	y += 15

	pdf.SetFontSize(10)
	worker := doc.WorkerLine()
	pdf.Text(pageWidth-pdfMargin-pdf.GetStringWidth(worker), y, worker)
	y += 5

	// summary
	pdf.SetXY(pdfMargin, y)
	pdf.SetFontSize(9)
	colWidth := contentWidth / float64(len(SummaryHeaders))
	writeHeader(pdf, SummaryHeaders, []float64{colWidth, colWidth, colWidth}, 7)
	pdf.SetTextColor(0, 0, 0)
	for _, cell := range doc.Summary.Cells() {
		pdf.CellFormat(colWidth, 7, cell, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	y = pdf.GetY() + 8

	if line := doc.RemarksLine(); line != "" {
		pdf.SetFontSize(9)
		pdf.Text(pdfMargin, y, line)
		y += 8
	}

	pdf.SetFontSize(12)
	pdf.Text(pdfMargin, y, "【稼働詳細】")
	y += 3

	// detail
	widths := append(append([]float64{}, detailWidths...), contentWidth-sum(detailWidths))
	pdf.SetXY(pdfMargin, y)
	pdf.SetFontSize(8)
	writeHeader(pdf, DetailHeaders, widths, 6)
	for _, row := range doc.Rows {
		fill := row.Off
		if fill {
			pdf.SetFillColor(offFill[0], offFill[1], offFill[2])
			pdf.SetTextColor(offText[0], offText[1], offText[2])
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		for i, cell := range row.Cells() {
			align := "C"
			if i == len(widths)-1 {
				align = "L"
				cell = fitText(pdf, cell, widths[i]-2)
			}
			pdf.CellFormat(widths[i], 5.5, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func writeHeader(pdf *fpdf.Fpdf, headers []string, widths []float64, height float64) {
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], height, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// fitText truncates s so that it fits in width at the current font size
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"…") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
