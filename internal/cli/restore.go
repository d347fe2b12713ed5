package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

func (c *CLI) Restore(ctx context.Context, ids []string) error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	if c.store.Count(ctx) == 0 {
		return errors.New("no assets in trash")
	}

	var errs []error
	for _, id := range ids {
		if !c.store.Contains(ctx, id) {
			errs = append(errs, fmt.Errorf("%s: not in trash", id))
			continue
		}
		c.store.Remove(ctx, id)
		fmt.Fprintf(c.out, "restored '%s'\n", id)
	}

	return formatErrors(errs)
}

func formatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := fmt.Sprintf("%d errors occurred:\n", len(errs))
	for _, err := range errs {
		msg += fmt.Sprintf("  * %v\n", err)
	}
	return errors.New(msg)
}
