package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/pkg/types"
)

func newUsersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage buyer and seller accounts",
	}

	var data string
	var email, role string

	list := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally by role or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				users := svc.Users()
				switch {
				case email != "":
					u, err := users.ByEmail(ctx, email)
					return printFound(cmd, "user with email", email, u, err)
				case role != "":
					r := types.Role(role)
					if !r.Valid() {
						return types.ErrInvalidRole
					}
					all, err := users.ByRole(ctx, r)
					if err != nil {
						return err
					}
					return printJSON(cmd, all)
				default:
					all, err := users.List(ctx)
					if err != nil {
						return err
					}
					return printJSON(cmd, all)
				}
			})
		},
	}
	list.Flags().StringVar(&email, "email", "", "show the user with this email")
	list.Flags().StringVar(&role, "role", "", "only users with this role (buyer or seller)")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				u, err := svc.Users().Get(ctx, args[0])
				return printFound(cmd, "user", args[0], u, err)
			})
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search user names and emails",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				users, err := svc.Users().Search(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printJSON(cmd, users)
			})
		},
	}

	create := &cobra.Command{
		Use:     "create",
		Short:   "Register a user from JSON",
		Example: `  propai users create --data '{"email":"ana@example.com","name":"Ana","role":"buyer"}'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var u types.User
			if err := decodeInput(cmd, data, &u); err != nil {
				return err
			}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				created, err := svc.Users().Create(ctx, u)
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
		Short:   "Apply a JSON patch to a user",
		Example: `  propai users update user-1 --data '{"role":"seller"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.UserPatch
			if err := decodeInput(cmd, data, &patch); err != nil {
				return err
			}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				u, err := svc.Users().Update(ctx, args[0], patch)
				return printFound(cmd, "user", args[0], u, err)
			})
		},
	}
	addDataFlag(update, &data)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				return deleteEntity(ctx, cmd, "user", args[0], svc.Users().Delete)
			})
		},
	}

	cmd.AddCommand(list, get, searchCmd, create, update, del)
	return cmd
}
