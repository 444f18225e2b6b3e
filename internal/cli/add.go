package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		category string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a title to the watchlist",
		Long: `Add records a watched title. Words are joined into one title, so quoting
is optional. New entries appear at the top of the list.

Example:
  mangekyou add Cowboy Bebop --notes "session 5"
  mangekyou add "Spirited Away" --category movie
  mangekyou add Hades -c game --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cat, err := types.ParseCategory(category)
			if err != nil {
				return userError(fmt.Errorf("%w %q (valid: %s)", err, category, categoryList()))
			}

			wl, err := a.openEngine()
			if err != nil {
				return err
			}
			defer closeEngine(wl, &err)

			item, ok, err := wl.Add(strings.Join(args, " "), cat, notes)
			if err != nil {
				return sysError(err)
			}
			if !ok {
				return userError(types.ErrInvalidTitle)
			}

			if a.flags.jsonMode {
				return writeItemsJSON(cmd.OutOrStdout(), []types.Item{item})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", item.ID, item.ClipboardText())
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(types.CategoryAnime), "category: "+categoryList())
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "short note or episode/level")
	return cmd
}

// categoryList returns the valid categories for help and error text.
func categoryList() string {
	names := make([]string, len(types.Categories))
	for i, c := range types.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
