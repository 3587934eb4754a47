package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/draw"
)

const (
	dpi            = 100
	pointsPerInch  = 72
	fallbackRadius = 5
	tickFontSize   = 10
	nameFontSize   = 12
)

var gridStyle = chart.Style{
	StrokeColor:     drawing.Color{R: 0x80, G: 0x80, B: 0x80, A: 0x80},
	StrokeWidth:     1,
	StrokeDashArray: []float64{5, 5},
}

// Rendered is an encoded chart plus where its markers landed, in pixels.
type Rendered struct {
	PNG             []byte
	Canvas          image.Rectangle
	LogoCenters     []image.Point
	FallbackCenters []image.Point
}

// Render draws axes, grid and fallback dots with go-chart, then composites
// the logos on top of the plotting area.
func Render(p *Plot, src LogoSource) (Rendered, error) {
	if p == nil {
		return Rendered{}, fmt.Errorf("render: nil plot")
	}
	cfg := p.Config.withDefaults()

	images, err := openLogos(p.Markers, src)
	if err != nil {
		return Rendered{}, err
	}

	var canvas chart.Box
	ch := chart.Chart{
		Width:  cfg.Width,
		Height: cfg.Height,
		DPI:    dpi,
		XAxis: chart.XAxis{
			Name:           axisName(cfg.ShowAxisNames, cfg.XColumn),
			NameStyle:      chart.Style{FontSize: nameFontSize},
			Style:          chart.Style{FontSize: tickFontSize},
			Range:          &chart.ContinuousRange{Min: p.XRange.Min, Max: p.XRange.Max},
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           axisName(cfg.ShowAxisNames, cfg.YColumn),
			NameStyle:      chart.Style{FontSize: nameFontSize},
			Style:          chart.Style{FontSize: tickFontSize},
			Range:          &chart.ContinuousRange{Min: p.YRange.Min, Max: p.YRange.Max},
			GridMajorStyle: gridStyle,
		},
		Series: buildSeries(p),
		Elements: []chart.Renderable{
			func(_ chart.Renderer, box chart.Box, _ chart.Style) { canvas = box },
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return Rendered{}, fmt.Errorf("render chart: %w", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		return Rendered{}, fmt.Errorf("decode chart: %w", err)
	}
	bounds := decoded.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, decoded, bounds.Min, draw.Src)

	out := Rendered{Canvas: image.Rect(canvas.Left, canvas.Top, canvas.Right, canvas.Bottom)}
	side := logoPixels(cfg)
	for i, m := range p.Markers {
		pt := project(canvas, p.XRange, p.YRange, m.X, m.Y)
		img, ok := images[i]
		if !ok {
			out.FallbackCenters = append(out.FallbackCenters, pt)
			continue
		}
		half := side / 2
		dst := image.Rect(pt.X-half, pt.Y-half, pt.X-half+side, pt.Y-half+side)
		draw.CatmullRom.Scale(rgba, dst, img, img.Bounds(), draw.Over, nil)
		out.LogoCenters = append(out.LogoCenters, pt)
	}
	if len(p.Markers) == 0 {
		drawCaption(rgba, out.Canvas, "No plottable rows")
	}

	buf.Reset()
	if err := png.Encode(&buf, rgba); err != nil {
		return Rendered{}, fmt.Errorf("encode chart: %w", err)
	}
	out.PNG = buf.Bytes()
	return out, nil
}

func openLogos(markers []Marker, src LogoSource) (map[int]image.Image, error) {
	images := make(map[int]image.Image)
	if src == nil {
		return images, nil
	}
	for i, m := range markers {
		if !m.HasLogo {
			continue
		}
		img, err := src.Open(m.Logo)
		if err != nil {
			return nil, fmt.Errorf("load logo for %q: %w", m.Category, err)
		}
		images[i] = img
	}
	return images, nil
}

// buildSeries returns the series go-chart draws. The anchor series spans the
// axis ranges invisibly because go-chart refuses to render without one
// visible series; annotations go before the dots so labels sit underneath.
func buildSeries(p *Plot) []chart.Series {
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "anchor",
			XValues: []float64{p.XRange.Min, p.XRange.Max},
			YValues: []float64{p.YRange.Min, p.YRange.Max},
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: chart.Disabled},
		},
	}

	var (
		xs, ys []float64
		labels []chart.Value2
	)
	for _, m := range p.Markers {
		if m.HasLogo {
			continue
		}
		xs = append(xs, m.X)
		ys = append(ys, m.Y)
		if m.Category != "" {
			labels = append(labels, chart.Value2{XValue: m.X, YValue: m.Y, Label: m.Category})
		}
	}
	if len(labels) > 0 {
		series = append(series, chart.AnnotationSeries{Name: "labels", Annotations: labels})
	}
	if len(xs) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "fallback",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    fallbackRadius,
				DotColor:    drawing.ColorRed,
			},
		})
	}
	return series
}

func axisName(show bool, name string) string {
	if !show {
		return ""
	}
	return name
}

// logoPixels converts the logo's point size to canvas pixels.
func logoPixels(cfg Config) int {
	side := int(math.Round(float64(cfg.LogoSize) * cfg.Zoom * dpi / pointsPerInch))
	if side < 1 {
		side = 1
	}
	return side
}

// project maps a data point onto the canvas the same way go-chart places dots.
func project(canvas chart.Box, xr, yr Range, x, y float64) image.Point {
	px := canvas.Left + translate(x, xr, canvas.Width())
	py := canvas.Bottom - translate(y, yr, canvas.Height())
	return image.Pt(px, py)
}

func translate(v float64, r Range, domain int) int {
	return int(math.Ceil((v - r.Min) / r.Span() * float64(domain)))
}
