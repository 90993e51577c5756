package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// JSONPresenter writes the snapshot as {service: document}, nested under
// ondemand/reserved in combined mode.
type JSONPresenter struct {
	Indent string
}

func (p JSONPresenter) Present(w io.Writer, snap *model.Snapshot) error {
	enc := json.NewEncoder(w)
	if p.Indent != "" {
		enc.SetIndent("", p.Indent)
	}
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (JSONPresenter) ContentType() string { return "application/json" }
