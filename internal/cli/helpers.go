// Shared helpers for mangekyou CLI commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/mesh-intelligence/mangekyou/internal/codec"
	"github.com/mesh-intelligence/mangekyou/internal/paths"
	"github.com/mesh-intelligence/mangekyou/pkg/mangekyou"
	"github.com/mesh-intelligence/mangekyou/pkg/types"
)

// listTimeFormat is how creation times appear in tables.
const listTimeFormat = "2006-01-02 15:04"

// storeConfig builds the store configuration from flags and config.yaml.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}, nil
}

// openEngine opens the configured store and loads the watchlist. The
// caller must Close the engine.
func (a *app) openEngine() (*mangekyou.Watchlist, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, sysError(err)
	}
	wl, err := mangekyou.Open(cfg, a.logger)
	if err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return nil, userError(err)
		}
		return nil, sysError(err)
	}
	return wl, nil
}

// closeEngine closes wl and reports a close failure only when the command
// itself succeeded.
func closeEngine(wl *mangekyou.Watchlist, err *error) {
	if cerr := wl.Close(); cerr != nil && *err == nil {
		*err = sysError(fmt.Errorf("close store: %w", cerr))
	}
}

// writeItemsJSON prints items as an indented JSON array.
func writeItemsJSON(w io.Writer, items []types.Item) error {
	data, err := codec.EncodePersistedIndent(items)
	if err != nil {
		return sysError(err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderItems draws items as a table. Terminals get rounded borders;
// pipes and files get plain ASCII.
func renderItems(w io.Writer, items []types.Item) string {
	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"ID", "Title", "Category", "Notes", "Added"})
	for _, it := range items {
		tw.AppendRow(table.Row{
			it.ID,
			it.Title,
			it.Category,
			oneLine(it.Notes),
			it.CreatedAt.Local().Format(listTimeFormat),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 4, WidthMax: 40},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
