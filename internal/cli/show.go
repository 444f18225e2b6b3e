package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one title",
		Args:  cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeItemsJSON(out, []types.Item{item})
			}
			fmt.Fprintf(out, "ID:       %s\n", item.ID)
			fmt.Fprintf(out, "Title:    %s\n", item.Title)
			fmt.Fprintf(out, "Category: %s\n", item.Category)
			if item.Notes != "" {
				fmt.Fprintf(out, "Notes:    %s\n", item.Notes)
			}
			fmt.Fprintf(out, "Added:    %s\n", item.CreatedAt.Local().Format(time.RFC1123))
			return nil
		},
	}
}
