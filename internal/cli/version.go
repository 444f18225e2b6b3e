package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mangekyou/pkg/mangekyou"
)

const modulePath = "github.com/mesh-intelligence/mangekyou"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mangekyou version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mangekyou v%s\nmodule: %s\n", mangekyou.Version, modulePath)
			return nil
		},
	}
}
