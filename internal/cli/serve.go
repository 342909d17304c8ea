package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/internal/search"
	"github.com/mesh-intelligence/propai/internal/server"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	var origins []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured backend as a document store",
		Long: "Expose the data service over HTTP as named query and mutation functions.\n" +
			"When meili_host is configured, property writes are mirrored to Meilisearch.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = s.addr
			}
			return opts.withSettings(cmd, s, func(ctx context.Context, svc types.Service) error {
				serverOpts := []server.Option{server.WithLogger(opts.logger)}
				if len(origins) > 0 {
					serverOpts = append(serverOpts, server.WithAllowOrigins(origins...))
				}
				if s.meiliHost != "" {
					idx, err := openIndex(ctx, svc, s.meiliHost, s.meiliKey)
					if err != nil {
						opts.logger.Warn("search index unavailable", "host", s.meiliHost, "error", err)
					} else {
						serverOpts = append(serverOpts, server.WithIndexer(idx))
					}
				}

				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				if err := server.New(svc, serverOpts...).ListenAndServe(ctx, addr); err != nil {
					return systemError("serve: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+defaultAddr+")")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "CORS origins allowed to call the store (default: any)")
	return cmd
}

// openIndex prepares the Meilisearch index and loads every property into it.
func openIndex(ctx context.Context, svc types.Service, host, key string) (*search.Client, error) {
	idx := search.NewClient(host, key)
	if err := idx.InitIndex(); err != nil {
		return nil, err
	}
	props, err := svc.Properties().List(ctx)
	if err != nil {
		return nil, err
	}
	if err := idx.PutAll(props); err != nil {
		return nil, err
	}
	return idx, nil
}
