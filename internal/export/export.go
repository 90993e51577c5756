package export

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// ErrUnsupportedFormat is returned for a format with no registered presenter.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format names an output rendering.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// Presenter renders a finished snapshot.
type Presenter interface {
	Present(w io.Writer, snap *model.Snapshot) error
	ContentType() string
}

// Registry maps formats to presenters.
type Registry struct {
	presenters map[Format]Presenter
}

// NewRegistry returns a registry with the json, csv and table presenters.
func NewRegistry() *Registry {
	r := &Registry{presenters: make(map[Format]Presenter)}
	r.Register(FormatJSON, JSONPresenter{Indent: "  "})
	r.Register(FormatCSV, CSVPresenter{})
	r.Register(FormatTable, TablePresenter{})
	return r
}

func (r *Registry) Register(f Format, p Presenter) {
	r.presenters[f] = p
}

// Get returns the presenter for f.
func (r *Registry) Get(f Format) (Presenter, error) {
	p, ok := r.presenters[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return p, nil
}

// Formats lists registered formats, sorted.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.presenters))
	for f := range r.presenters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Write renders snap in format f.
func (r *Registry) Write(w io.Writer, f Format, snap *model.Snapshot) error {
	p, err := r.Get(f)
	if err != nil {
		return err
	}
	return p.Present(w, snap)
}
