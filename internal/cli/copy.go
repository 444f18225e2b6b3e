package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: `Copy "title — category" to the clipboard`,
		Long: `Copy puts "title — category" for the item on the system clipboard.
When no clipboard is available the text is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			wl, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeEngine(wl, &err)

			item, err := wl.Get(args[0])
			if err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return userError(fmt.Errorf("%w: %s", err, args[0]))
				}
				return sysError(err)
			}

			txt := item.ClipboardText()
			if cerr := a.writeClipboard(txt); cerr != nil {
				a.logger.Debug("clipboard unavailable", "error", cerr)
				fmt.Fprintln(cmd.OutOrStdout(), txt)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied: %s\n", txt)
			return nil
		},
	}
}
