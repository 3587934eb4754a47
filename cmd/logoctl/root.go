package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/preston-bernstein/logo-scatter-service/internal/config"
	"github.com/preston-bernstein/logo-scatter-service/internal/logging"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
)

const appVersion = "dev"

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:          "logoctl",
		Short:        "Normalize team logos and render logo scatter plots",
		SilenceUsage: true,
		Version:      appVersion,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text or json)")

	cmd.AddCommand(newNormalizeCmd(opts, cfg))
	cmd.AddCommand(newRenderCmd(opts, cfg))
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   o.logLevel,
		Format:  o.logFormat,
		Service: "logoctl",
		Version: appVersion,
		Output:  cmd.ErrOrStderr(),
	})
}

// addLogoFlags binds the normalizer options shared by both commands.
func addLogoFlags(fs *pflag.FlagSet, opts *logos.Options, cfg config.LogosConfig) {
	fs.StringVar(&opts.SourceDir, "source", cfg.SourceDir, "Directory with the original .png logos")
	fs.StringVar(&opts.OutputDir, "output", cfg.OutputDir, "Directory for the normalized logos")
	fs.IntVar(&opts.Size, "size", cfg.Size, "Target width and height in pixels")
	fs.BoolVar(&opts.Canonical, "canonical", cfg.CanonicalNames, "Rename outputs to their normalized key")
	fs.IntVar(&opts.Workers, "workers", cfg.Workers, "Parallel resize workers")
}
