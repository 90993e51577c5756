package export

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// TablePresenter renders the CSV rows as a bordered console table.
type TablePresenter struct{}

func (TablePresenter) Present(w io.Writer, snap *model.Snapshot) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Header(snap.Mode)...).
		Rows(Rows(snap)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

func (TablePresenter) ContentType() string { return "text/plain; charset=utf-8" }
