package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/internal/search"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func newPropertiesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"property", "props"},
		Short:   "List, search and edit property listings",
	}

	var data string
	var useIndex bool
	var limit int64

	list := &cobra.Command{
		Use:   "list",
		Short: "List every property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				props, err := svc.Properties().List(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, props)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				p, err := svc.Properties().Get(ctx, args[0])
				return printFound(cmd, "property", args[0], p, err)
			})
		},
	}

	featured := &cobra.Command{
		Use:   "featured",
		Short: "List featured properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				props, err := svc.Properties().Featured(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, props)
			})
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles, locations and descriptions",
		Long: "Search matches the query case-insensitively against title, location and\n" +
			"description. With --index the Meilisearch mirror answers instead.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if useIndex {
				s, err := opts.resolve()
				if err != nil {
					return err
				}
				if s.meiliHost == "" {
					return errNoIndex
				}
				props, err := search.NewClient(s.meiliHost, s.meiliKey).Search(query, limit)
				if err != nil {
					return systemError("search index: %w", err)
				}
				return printJSON(cmd, props)
			}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				props, err := svc.Properties().Search(ctx, query)
				if err != nil {
					return err
				}
				return printJSON(cmd, props)
			})
		},
	}
	searchCmd.Flags().BoolVar(&useIndex, "index", false, "query the Meilisearch mirror")
	searchCmd.Flags().Int64Var(&limit, "limit", 20, "maximum hits from the index")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a property from JSON",
		Example: `  propai properties create --data '{"title":"Lakeview Condo","location":"Austin, Texas",` +
			`"price":"$320,000","bedrooms":2,"bathrooms":2}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p types.Property
			if err := decodeInput(cmd, data, &p); err != nil {
				return err
			}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				created, err := svc.Properties().Create(ctx, p)
				if err != nil {
					return err
				}
				return printJSON(cmd, created)
			})
		},
	}
	addDataFlag(create, &data)

	update := &cobra.Command{
		Use:     "update <id>",
		Short:   "Apply a JSON patch to a property",
		Example: `  propai properties update 3 --data '{"featured":true}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.PropertyPatch
			if err := decodeInput(cmd, data, &patch); err != nil {
				return err
			}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				p, err := svc.Properties().Update(ctx, args[0], patch)
				return printFound(cmd, "property", args[0], p, err)
			})
		},
	}
	addDataFlag(update, &data)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				return deleteEntity(ctx, cmd, "property", args[0], svc.Properties().Delete)
			})
		},
	}

	reindex := &cobra.Command{
		Use:   "reindex",
		Short: "Load every property into the Meilisearch mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.resolve()
			if err != nil {
				return err
			}
			if s.meiliHost == "" {
				return errNoIndex
			}
			return opts.withSettings(cmd, s, func(ctx context.Context, svc types.Service) error {
				if _, err := openIndex(ctx, svc, s.meiliHost, s.meiliKey); err != nil {
					return systemError("reindex: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "index updated")
				return nil
			})
		},
	}

	cmd.AddCommand(list, get, featured, searchCmd, create, update, del, reindex)
	return cmd
}

// deleteEntity removes id and reports not-found when nothing was removed.
func deleteEntity(ctx context.Context, cmd *cobra.Command, noun, id string, del func(ctx context.Context, id string) (bool, error)) error {
	removed, err := del(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return notFound(noun, id)
	}
	return printJSON(cmd, map[string]any{"id": id, "deleted": true})
}
