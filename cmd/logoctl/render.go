package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/logo-scatter-service/internal/config"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
	"github.com/preston-bernstein/logo-scatter-service/internal/plot"
	"github.com/preston-bernstein/logo-scatter-service/internal/spreadsheet"
)

type renderOptions struct {
	logosDir string
	sheet    string
	x        string
	y        string
	category string
	axis     string
	zoom     float64
	labels   bool
	output   string
	width    int
	height   int
	logoSize int
}

func newRenderCmd(root *rootOptions, cfg config.Config) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <workbook.xlsx>",
		Short: "Render a logo scatter plot from a workbook to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.x == "" || opts.y == "" {
				return errors.New("both --x and --y are required")
			}
			logger := root.logger(cmd)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()

			wb, err := spreadsheet.Read(filepath.Base(args[0]), f)
			if err != nil {
				return fmt.Errorf("read workbook: %w", err)
			}
			name := opts.sheet
			if name == "" && len(wb.SheetNames) > 0 {
				name = wb.SheetNames[0]
			}
			sheet, err := wb.Sheet(name)
			if err != nil {
				return err
			}

			catalog := logos.NewCatalog(opts.logosDir)
			if err := catalog.Load(); err != nil {
				return fmt.Errorf("load logos: %w", err)
			}

			p, err := plot.Build(sheet, plot.Config{
				XColumn:        opts.x,
				YColumn:        opts.y,
				CategoryColumn: opts.category,
				ShowAxisNames:  opts.labels,
				Policy:         plot.ParseAxisPolicy(opts.axis),
				Zoom:           opts.zoom,
				LogoSize:       opts.logoSize,
				Width:          opts.width,
				Height:         opts.height,
			}, catalog)
			if err != nil {
				return err
			}
			out, err := plot.Render(p, catalog)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}

			dest := opts.output
			if dest == "" {
				dest = plot.FileName(opts.x, opts.y)
			}
			if err := os.WriteFile(dest, out.PNG, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			logger.Debug("chart written", "file", dest)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d logos, %d fallback markers, %d rows skipped)\n",
				dest, p.LogoCount(), p.FallbackCount(), p.Skipped)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.logosDir, "logos", cfg.Logos.OutputDir, "Directory with normalized logos")
	fs.StringVar(&opts.sheet, "sheet", "", "Sheet name (defaults to the first sheet)")
	fs.StringVar(&opts.x, "x", "", "Column for the x axis")
	fs.StringVar(&opts.y, "y", "", "Column for the y axis")
	fs.StringVar(&opts.category, "category", cfg.Plot.CategoryColumn, "Column holding the team name")
	fs.StringVar(&opts.axis, "axis", cfg.Plot.AxisPolicy, "Axis lower bound policy (data or zero)")
	fs.Float64Var(&opts.zoom, "zoom", cfg.Plot.LogoZoom, "Logo zoom factor")
	fs.BoolVar(&opts.labels, "labels", true, "Include variable names on the axes")
	fs.StringVarP(&opts.output, "output", "o", "", "Output file (defaults to {x}_vs_{y}.png)")
	fs.IntVar(&opts.width, "width", cfg.Plot.Width, "Canvas width in pixels")
	fs.IntVar(&opts.height, "height", cfg.Plot.Height, "Canvas height in pixels")
	fs.IntVar(&opts.logoSize, "logo-size", cfg.Logos.Size, "Pixel size the logos were normalized to")
	return cmd
}
