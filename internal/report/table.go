package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#EA7828")).
				Padding(0, 1)
	tableCellStyle = lipgloss.NewStyle().Padding(0, 1)
	tableOffStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#969696"))
	tableTitle     = lipgloss.NewStyle().Bold(true)
)

// TableRenderer prints a terminal preview of the report
type TableRenderer struct {
	Styled bool
}

func (r *TableRenderer) Extension() string {
	return ".txt"
}

// Render implements Renderer
func (r *TableRenderer) Render(w io.Writer, doc *Document) error {
	var b strings.Builder

	title := doc.Title
	if r.Styled {
		title = tableTitle.Render(title)
	}
	fmt.Fprintln(&b, doc.Addressee)
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, doc.WorkerLine())
	fmt.Fprintln(&b)

	summary := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(SummaryHeaders...).
		Row(doc.Summary.Cells()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && r.Styled {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	fmt.Fprintln(&b, summary.Render())

	if line := doc.RemarksLine(); line != "" {
		fmt.Fprintln(&b, line)
	}
	fmt.Fprintln(&b, "【稼働詳細】")

	rows := make([][]string, len(doc.Rows))
	for i, row := range doc.Rows {
		rows[i] = row.Cells()
	}
	detail := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(DetailHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				if r.Styled {
					return tableHeaderStyle
				}
				return tableCellStyle
			case r.Styled && row >= 0 && row < len(doc.Rows) && doc.Rows[row].Off:
				return tableOffStyle
			default:
				return tableCellStyle
			}
		})
	fmt.Fprintln(&b, detail.Render())

	_, err := io.WriteString(w, b.String())
	return err
}
