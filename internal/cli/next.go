package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

func (c *CLI) Next(ctx context.Context) error {
	a, found, err := c.selector.Next(ctx)
	if err != nil {
		return err
	}
	if !found {
		slog.Info("no candidate found")
		fmt.Fprintln(c.out, "no candidate found")
		return nil
	}
	fmt.Fprintf(c.out, "%s\t%s\t%s\n", a.ID, humanize.Bytes(uint64(max(a.Size, 0))), humanize.Time(a.ModifiedAt))
	return nil
}

func (c *CLI) Count(ctx context.Context) error {
	fmt.Fprintln(c.out, c.store.Count(ctx))
	return nil
}
