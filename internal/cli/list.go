package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"

	"github.com/babarot/sweep/internal/library"
)

const resolveConcurrency = 8

// entry is a trashed id with the library metadata found for it
type entry struct {
	ID    string
	Asset library.Asset
	Found bool
}

// resolve looks up every id in the library. Ids the library no longer has
// come back with Found unset; any other lookup failure aborts.
func (c *CLI) resolve(ctx context.Context, ids []string) ([]entry, error) {
	entries := make([]entry, len(ids))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(resolveConcurrency)
	for i, id := range ids {
		eg.Go(func() error {
			a, err := c.library.Asset(ctx, id)
			switch {
			case errors.Is(err, library.ErrAssetNotFound):
				slog.Warn("trashed asset missing from library", "id", id)
				entries[i] = entry{ID: id}
			case err != nil:
				return fmt.Errorf("%s: %w", id, err)
			default:
				entries[i] = entry{ID: id, Asset: a, Found: true}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *CLI) List(ctx context.Context) error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	ids := c.store.List(ctx)
	if len(ids) == 0 {
		fmt.Fprintln(c.out, "trash is empty")
		return nil
	}

	entries, err := c.resolve(ctx, ids)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"ID", "Type", "Size", "Modified"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	now := time.Now()
	for _, e := range entries {
		if !e.Found {
			table.Append([]string{e.ID, "missing", "-", "-"})
			continue
		}
		table.Append([]string{
			e.ID,
			string(e.Asset.MediaType),
			humanize.Bytes(uint64(max(e.Asset.Size, 0))),
			humanize.RelTime(e.Asset.ModifiedAt, now, "ago", "from now"),
		})
	}
	table.Render()

	fmt.Fprintf(c.out, "\n%d in trash\n", len(entries))
	return nil
}
