package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/internal/assistant"
	"github.com/mesh-intelligence/propai/internal/hooks"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <user-id> [message...]",
		Short: "Talk to the real-estate assistant",
		Long: "Send a message as the user and print the assistant's reply. Without a\n" +
			"message, chat reads one message per line from standard input.\n" +
			"Both sides of the conversation are stored as messages.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc types.Service) error {
				chat := hooks.NewChat(svc, args[0], assistant.New())
				defer chat.Close()
				if s := chat.Activate(ctx); s.Error != "" {
					return fmt.Errorf("%s for user %q", s.Error, args[0])
				}

				if len(args) > 1 {
					return sendAndPrint(ctx, cmd, chat, strings.Join(args[1:], " "))
				}
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if err := sendAndPrint(ctx, cmd, chat, scanner.Text()); err != nil {
						return err
					}
				}
				if err := scanner.Err(); err != nil {
					return systemError("read stdin: %w", err)
				}
				return nil
			})
		},
	}
}

func sendAndPrint(ctx context.Context, cmd *cobra.Command, chat *hooks.Chat, text string) error {
	reply, err := chat.Send(ctx, text)
	if err != nil {
		return err
	}
	if reply != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", reply.Content)
	}
	return nil
}
