package plot

import (
	"fmt"
	"image"

	"github.com/preston-bernstein/logo-scatter-service/internal/dataset"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
)

// LogoSource resolves category labels to logo images.
type LogoSource interface {
	Lookup(category string) (logos.Logo, bool)
	Open(l logos.Logo) (image.Image, error)
}

// Marker is one plotted row.
type Marker struct {
	Category string
	X        float64
	Y        float64
	Logo     logos.Logo
	HasLogo  bool
}

// Plot is a resolved chart ready to render.
type Plot struct {
	Config  Config
	Markers []Marker
	Skipped int
	XRange  Range
	YRange  Range
}

// LogoCount reports markers drawn with a logo.
func (p *Plot) LogoCount() int {
	n := 0
	for _, m := range p.Markers {
		if m.HasLogo {
			n++
		}
	}
	return n
}

// FallbackCount reports markers drawn as a fallback dot.
func (p *Plot) FallbackCount() int {
	return len(p.Markers) - p.LogoCount()
}

// Build resolves every row of sheet into a marker. Rows whose x or y cell is
// not a finite number are dropped and counted in Skipped. src may be nil, in
// which case every marker falls back.
func Build(sheet *dataset.Sheet, cfg Config, src LogoSource) (*Plot, error) {
	if sheet == nil {
		return nil, fmt.Errorf("%w: no sheet", dataset.ErrUnknownSheet)
	}
	cfg = cfg.withDefaults()

	xi, err := sheet.MustColumn(cfg.XColumn)
	if err != nil {
		return nil, err
	}
	yi, err := sheet.MustColumn(cfg.YColumn)
	if err != nil {
		return nil, err
	}
	ci, ok := sheet.ColumnIndex(cfg.CategoryColumn)
	if !ok {
		ci = 0
	}

	p := &Plot{Config: cfg}
	xs := make([]float64, 0, len(sheet.Rows))
	ys := make([]float64, 0, len(sheet.Rows))
	for row := range sheet.Rows {
		x, okX := dataset.Number(sheet.Cell(row, xi))
		y, okY := dataset.Number(sheet.Cell(row, yi))
		if !okX || !okY {
			p.Skipped++
			continue
		}

		m := Marker{Category: sheet.Cell(row, ci), X: x, Y: y}
		if src != nil {
			m.Logo, m.HasLogo = src.Lookup(m.Category)
		}
		p.Markers = append(p.Markers, m)
		xs = append(xs, x)
		ys = append(ys, y)
	}

	p.XRange = Bounds(xs, cfg.Policy)
	p.YRange = Bounds(ys, cfg.Policy)
	return p, nil
}
