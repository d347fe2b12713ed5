package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/babarot/sweep/internal/library"
	"github.com/babarot/sweep/internal/utils/log"
)

// Empty permanently deletes every trashed asset through the library and then
// clears the trash. When the library fails to delete, the trash is left as
// it was so the user can retry.
func (c *CLI) Empty(ctx context.Context) error {
	slog.Debug("cli.empty started")
	defer slog.Debug("cli.empty finished")

	ids := c.store.List(ctx)
	if len(ids) == 0 {
		fmt.Fprintln(c.out, "trash is empty")
		return nil
	}

	entries, err := c.resolve(ctx, ids)
	if err != nil {
		return err
	}
	assets := lo.FilterMap(entries, func(e entry, _ int) (library.Asset, bool) {
		return e.Asset, e.Found
	})

	if c.config.UI.ConfirmEmpty && !c.option.Trash.Yes {
		prompt := fmt.Sprintf("Permanently delete %d assets (%d missing)?", len(assets), len(entries)-len(assets))
		if !c.confirm(prompt) {
			fmt.Fprintln(c.out, "aborted")
			return nil
		}
	}

	if len(assets) > 0 {
		if err := c.library.Delete(ctx, assets); err != nil {
			return fmt.Errorf("failed to delete assets, trash left untouched: %w", err)
		}
	}
	c.store.Clear(ctx)

	log.Important("trash emptied", "deleted", len(assets), "missing", len(entries)-len(assets))
	fmt.Fprintf(c.out, "deleted %d assets\n", len(assets))
	return nil
}

func (c *CLI) confirm(prompt string) bool {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(c.out, "%s [y/N]: ", yellow(prompt))

	answer, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
