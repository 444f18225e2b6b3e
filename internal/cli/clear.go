package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every title and the saved watchlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			wl, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeEngine(wl, &err)

			n := wl.Len()
			if err := wl.Clear(); err != nil {
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d items\n", n)
			return nil
		},
	}
}
