package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize watchlist storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			// config.yaml was written by setup; opening the engine creates
			// the data directory and backend files.
			wl, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeEngine(wl, &err)

			cfg, err := a.storeConfig()
			if err != nil {
				return sysError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watchlist initialized (%s backend)\nconfig: %s\ndata:   %s\n",
				cfg.Backend, a.configDir, cfg.DataDir)
			return nil
		},
	}
}
