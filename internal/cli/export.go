package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mangekyou/internal/codec"
)

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the watchlist as CSV",
		Long: `Export writes the whole watchlist as CSV with the header
id,title,category,notes,createdAt. Use --out - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			wl, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeEngine(wl, &err)

			data, err := wl.ExportTable()
			if err != nil {
				return sysError(err)
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return sysError(fmt.Errorf("write export: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", wl.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", codec.ExportFileName, "output file, or - for stdout")
	return cmd
}
