package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/pkg/types"
)

func newCollectionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "cols"},
		Short:   "Manage saved property collections",
	}

	var data, owner, withProperty string

	list := &cobra.Command{
		Use:   "list",
		Short: "List collections, optionally by owner or member property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				cols := svc.Collections()
				var out []types.Collection
				var err error
				switch {
				case owner != "":
					out, err = cols.ForUser(ctx, owner)
				case withProperty != "":
					out, err = cols.WithProperty(ctx, withProperty)
				default:
					out, err = cols.List(ctx)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
	list.Flags().StringVar(&owner, "user", "", "only collections owned by this user")
	list.Flags().StringVar(&withProperty, "with-property", "", "only collections containing this property")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				c, err := svc.Collections().Get(ctx, args[0])
				return printFound(cmd, "collection", args[0], c, err)
			})
		},
	}

	create := &cobra.Command{
		Use:     "create <user-id> <name>",
		Short:   "Create an empty collection",
		Example: `  propai collections create user-1 "Weekend homes"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := types.Collection{UserID: args[0], Name: args[1], PropertyIDs: []string{}}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				created, err := svc.Collections().Create(ctx, c)
				if err != nil {
					return err
				}
				return printJSON(cmd, created)
			})
		},
	}

	update := &cobra.Command{
		Use:     "update <id>",
		Short:   "Apply a JSON patch to a collection",
		Example: `  propai collections update col-1 --data '{"name":"Shortlist","propertyIds":["1","5"]}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.CollectionPatch
			if err := decodeInput(cmd, data, &patch); err != nil {
				return err
			}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				c, err := svc.Collections().Update(ctx, args[0], patch)
				return printFound(cmd, "collection", args[0], c, err)
			})
		},
	}
	addDataFlag(update, &data)

	add := &cobra.Command{
		Use:   "add <collection-id> <property-id>",
		Short: "Append a property to a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				c, err := svc.Collections().AddProperty(ctx, args[0], args[1])
				return printFound(cmd, "collection", args[0], c, err)
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <collection-id> <property-id>",
		Short: "Remove a property from a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				c, err := svc.Collections().RemoveProperty(ctx, args[0], args[1])
				return printFound(cmd, "collection", args[0], c, err)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				return deleteEntity(ctx, cmd, "collection", args[0], svc.Collections().Delete)
			})
		},
	}

	cmd.AddCommand(list, get, create, update, add, remove, del)
	return cmd
}
