package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/logo-scatter-service/internal/config"
	"github.com/preston-bernstein/logo-scatter-service/internal/logos"
)

func newNormalizeCmd(root *rootOptions, cfg config.Config) *cobra.Command {
	var opts logos.Options

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Resize every source logo and write the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := logos.NewNormalizer(opts, root.logger(cmd))
			res, err := n.Normalize(cmd.Context())
			if err != nil {
				return fmt.Errorf("normalize: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Normalized %d logos into %s (%d skipped)\n",
				len(res.Logos), n.OutputDir(), len(res.Skipped))
			for _, s := range res.Skipped {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  skipped %s: %s\n", s.Source, s.Reason)
			}
			return nil
		},
	}
	addLogoFlags(cmd.Flags(), &opts, cfg.Logos)
	return cmd
}
