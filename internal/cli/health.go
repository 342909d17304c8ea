package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// pinger is implemented by backends that reach a separate process.
type pinger interface {
	Ping(ctx context.Context) error
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the configured backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				if p, ok := svc.(pinger); ok {
					if err := p.Ping(ctx); err != nil {
						return err
					}
				} else if _, err := svc.Properties().Featured(ctx); err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"status": "ok"})
			})
		},
	}
}
