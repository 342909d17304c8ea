package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propai/pkg/propai"
)

const modulePath = "github.com/mesh-intelligence/propai"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the propai version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "propai v%s\nmodule: %s\n", propai.Version, modulePath)
			return nil
		},
	}
}
