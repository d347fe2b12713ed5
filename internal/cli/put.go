package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/sweep/internal/library"
)

// Put stages the given asset ids for deletion. Ids the library does not
// know are refused so typos do not end up in the trash.
func (c *CLI) Put(ctx context.Context, ids []string) error {
	slog.Debug("cli.put started")
	defer slog.Debug("cli.put finished")

	if len(ids) == 0 {
		return errors.New("too few arguments")
	}

	var errs []error
	for _, id := range ids {
		a, err := c.library.Asset(ctx, id)
		if err != nil {
			if errors.Is(err, library.ErrAssetNotFound) {
				errs = append(errs, fmt.Errorf("%s: no such asset", id))
				continue
			}
			return err
		}
		c.store.Add(ctx, a.ID)
		fmt.Fprintf(c.out, "trashed '%s'\n", a.ID)
	}

	return formatErrors(errs)
}
