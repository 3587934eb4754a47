// Package plot builds logo scatter plots from dataset sheets and renders them to PNG.
package plot

import (
	"mime"
	"strings"
)

// AxisPolicy selects how the lower axis bound is derived.
type AxisPolicy string

const (
	// AxisData pads the observed range by one unit on each side.
	AxisData AxisPolicy = "data"
	// AxisZero anchors the lower bound at zero unless the data is negative.
	AxisZero AxisPolicy = "zero"
)

// ParseAxisPolicy maps a config value to a policy, defaulting to AxisData.
func ParseAxisPolicy(raw string) AxisPolicy {
	if AxisPolicy(strings.ToLower(strings.TrimSpace(raw))) == AxisZero {
		return AxisZero
	}
	return AxisData
}

const (
	DefaultCategoryColumn = "Equipo"
	DefaultZoom           = 0.4
	DefaultWidth          = 1000
	DefaultHeight         = 600
	DefaultLogoSize       = 50
)

// Config describes one chart. Logos are drawn at LogoSize*Zoom points, so the
// default 0.4 zoom of a 50px logo comes out near 28px on the 100dpi canvas.
type Config struct {
	XColumn        string
	YColumn        string
	CategoryColumn string
	ShowAxisNames  bool
	Policy         AxisPolicy
	Zoom           float64
	LogoSize       int
	Width          int
	Height         int
}

func (c Config) withDefaults() Config {
	if c.CategoryColumn == "" {
		c.CategoryColumn = DefaultCategoryColumn
	}
	if c.Policy == "" {
		c.Policy = AxisData
	}
	if c.Zoom <= 0 {
		c.Zoom = DefaultZoom
	}
	if c.LogoSize <= 0 {
		c.LogoSize = DefaultLogoSize
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	return c
}

// FileName is the download name for a chart of x against y.
func FileName(x, y string) string {
	return x + "_vs_" + y + ".png"
}

// ContentDisposition builds the attachment header for a chart download.
func ContentDisposition(x, y string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": FileName(x, y)}); v != "" {
		return v
	}
	return "attachment"
}
