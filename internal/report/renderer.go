package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrUnknownFormat = errors.New("unknown report format")
	ErrFontRequired  = errors.New("a Japanese TrueType font is required for PDF output (set report.font_path)")
)

// Renderer writes a Document in one output format
type Renderer interface {
	Render(w io.Writer, doc *Document) error
	Extension() string
}

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts pdf or xlsx, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// NewRenderer returns the file renderer for a format
func NewRenderer(format Format, fontPath string) (Renderer, error) {
	switch format {
	case FormatPDF:
		return NewPDFRenderer(fontPath), nil
	case FormatXLSX:
		return NewXLSXRenderer(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
