package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var (
		category string
		search   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List titles, optionally filtered",
		Long: `List shows the watchlist, newest first. --category narrows it to one
category and --search keeps titles whose title or notes contain the text,
ignoring case. Both filters combine.

Example:
  mangekyou list
  mangekyou list --category movie
  mangekyou list --search ep3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			wl, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeEngine(wl, &err)

			items, err := wl.Query(category, search)
			if err != nil {
				if errors.Is(err, types.ErrInvalidFilter) {
					return userError(fmt.Errorf("%w %q (valid: %s, %s)", err, category, types.FilterAll, categoryList()))
				}
				return sysError(err)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeItemsJSON(out, items)
			}

			total := wl.Len()
			if len(items) == 0 {
				if total == 0 {
					fmt.Fprintln(out, "No entries yet. Add something and it will be remembered.")
				} else {
					fmt.Fprintln(out, "No entries match.")
				}
				fmt.Fprintf(out, "Total: %d\n", total)
				return nil
			}

			fmt.Fprintln(out, renderItems(out, items))
			if len(items) == total {
				fmt.Fprintf(out, "Total: %d\n", total)
			} else {
				fmt.Fprintf(out, "Showing %d of %d\n", len(items), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", types.FilterAll, "category filter: "+types.FilterAll+", "+categoryList())
	cmd.Flags().StringVarP(&search, "search", "s", "", "text to find in title or notes")
	return cmd
}
