package config

import "strings"

// PlotConfig controls chart rendering defaults.
type PlotConfig struct {
	CategoryColumn string
	AxisPolicy     string // "data" or "zero"
	LogoZoom       float64
	Width          int
	Height         int
	PreviewRows    int
}

func loadPlot() PlotConfig {
	policy := strings.ToLower(strings.TrimSpace(envOrDefault(envPlotAxis, defaultPlotAxis)))
	if policy != "data" && policy != "zero" {
		policy = defaultPlotAxis
	}
	return PlotConfig{
		CategoryColumn: envOrDefault(envPlotCategory, defaultPlotCategory),
		AxisPolicy:     policy,
		LogoZoom:       floatEnvOrDefault(envPlotZoom, defaultPlotZoom),
		Width:          intEnvOrDefault(envPlotWidth, defaultPlotWidth),
		Height:         intEnvOrDefault(envPlotHeight, defaultPlotHeight),
		PreviewRows:    intEnvOrDefault(envPreviewRows, defaultPreviewRows),
	}
}
