package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/babarot/sweep/internal/ui"
)

// Triage runs the interactive keep/delete screen
func (c *CLI) Triage(ctx context.Context) error {
	slog.Debug("cli.triage started")
	defer slog.Debug("cli.triage finished")

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("triage needs a terminal, see --help for non-interactive options")
	}

	c.store.Preload(ctx)

	trashed, err := ui.Run(ctx, c.selector, c.store, c.source, c.config.UI)
	if err != nil {
		return err
	}

	if len(trashed) > 0 {
		fmt.Fprintf(c.out, "%s %d assets moved to the trash, run with --empty to delete them\n",
			color.New(color.FgMagenta).Sprint("»"), len(trashed))
	}
	if msg := c.config.UI.ExitMessage; msg != "" {
		fmt.Fprintln(c.out, msg)
	}
	return nil
}
