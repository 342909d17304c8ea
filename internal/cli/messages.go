package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/pkg/types"
)

func newMessagesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message", "msgs"},
		Short:   "Read and manage chat messages",
	}

	var limit int
	var aiOnly, userOnly, asAI bool
	var data string

	list := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's messages, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				msgs := svc.Messages()
				var out []types.Message
				var err error
				switch {
				case aiOnly && userOnly:
					return errConflictingAuthor
				case aiOnly:
					out, err = msgs.ByAuthor(ctx, userID, true)
				case userOnly:
					out, err = msgs.ByAuthor(ctx, userID, false)
				case limit > 0:
					out, err = msgs.Recent(ctx, userID, limit)
				default:
					out, err = msgs.ForUser(ctx, userID)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "only the newest N messages")
	list.Flags().BoolVar(&aiOnly, "ai", false, "only assistant replies")
	list.Flags().BoolVar(&userOnly, "user", false, "only messages the user wrote")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				m, err := svc.Messages().Get(ctx, args[0])
				return printFound(cmd, "message", args[0], m, err)
			})
		},
	}

	post := &cobra.Command{
		Use:   "post <user-id> <text...>",
		Short: "Store a message for a user",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := types.Message{UserID: args[0], Content: strings.Join(args[1:], " "), IsAI: asAI}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				created, err := svc.Messages().Create(ctx, m)
				if err != nil {
					return err
				}
				return printJSON(cmd, created)
			})
		},
	}
	post.Flags().BoolVar(&asAI, "ai", false, "store as an assistant reply")

	update := &cobra.Command{
		Use:     "update <id>",
		Short:   "Apply a JSON patch to a message",
		Example: `  propai messages update msg-1 --data '{"content":"edited"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.MessagePatch
			if err := decodeInput(cmd, data, &patch); err != nil {
				return err
			}
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				m, err := svc.Messages().Update(ctx, args[0], patch)
				return printFound(cmd, "message", args[0], m, err)
			})
		},
	}
	addDataFlag(update, &data)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				return deleteEntity(ctx, cmd, "message", args[0], svc.Messages().Delete)
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <user-id>",
		Short: "Delete every message of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				n, err := svc.Messages().ClearForUser(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]any{"userId": args[0], "deleted": n})
			})
		},
	}

	cmd.AddCommand(list, get, post, update, del, clearCmd)
	return cmd
}
