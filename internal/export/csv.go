package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// CSVPresenter writes Header(mode) followed by Rows(snap).
type CSVPresenter struct{}

func (CSVPresenter) Present(w io.Writer, snap *model.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(snap.Mode)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(Rows(snap)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

func (CSVPresenter) ContentType() string { return "text/csv" }
