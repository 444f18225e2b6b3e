package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import titles from a JSON array",
		Long: `Import merges a JSON array of items into the watchlist. Entries whose id
is already present are skipped; missing fields get defaults. The imported
entries appear at the top of the list in file order.

Example:
  mangekyou import backup.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return userError(fmt.Errorf("read import file: %w", err))
			}

			wl, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeEngine(wl, &err)

			res, err := wl.ImportJSON(data)
			if err != nil {
				if errors.Is(err, types.ErrImportMalformed) || errors.Is(err, types.ErrImportShapeInvalid) {
					return userError(fmt.Errorf("could not import %s: %w", args[0], err))
				}
				return sysError(err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return json.NewEncoder(out).Encode(map[string]int{
					"imported": res.Imported,
					"skipped":  res.Skipped,
				})
			}
			fmt.Fprintf(out, "Imported %d, skipped %d\n", res.Imported, res.Skipped)
			return nil
		},
	}
}
