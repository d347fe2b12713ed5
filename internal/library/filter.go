package library

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"time"

	"github.com/babarot/sweep/internal/config"
	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
)

// Filterable defines what an item must expose to be filtered
type Filterable interface {
	// GetName returns the base name of the file
	GetName() string
	// GetSize returns the size in bytes
	GetSize() int64
	// GetTime returns the time the age filter compares against
	GetTime() time.Time
}

// FilterOptions holds filtering configuration
type FilterOptions struct {
	Include config.IncludeConfig
	Exclude config.ExcludeConfig
}

func NewFilterOptions(cfg config.Library) FilterOptions {
	return FilterOptions{Include: cfg.Include, Exclude: cfg.Exclude}
}

// Filter applies filtering rules to a slice of items
func Filter[T Filterable](items []T, opts FilterOptions) []T {
	// Filter by filename exclusions
	items = rejectByNames(items, opts.Exclude.Files)

	// Filter by patterns
	items = rejectByPatterns(items, opts.Exclude.Patterns)

	// Filter by globs
	items = rejectByGlobs(items, opts.Exclude.Globs)

	// Filter by size
	items = rejectBySize(items, opts.Exclude.Size)

	// Filter by time period
	items = filterByPeriod(items, opts.Include.Period, time.Now())

	return items
}

func rejectByNames[T Filterable](items []T, excludeFiles []string) []T {
	if len(excludeFiles) == 0 {
		return items
	}
	return slices.DeleteFunc(items, func(item T) bool {
		return slices.Contains(excludeFiles, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}

	var res []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			slog.Warn("skipping invalid exclude pattern", "pattern", pattern, "error", err)
			continue
		}
		res = append(res, re)
	}

	return slices.DeleteFunc(items, func(item T) bool {
		return slices.ContainsFunc(res, func(re *regexp.Regexp) bool {
			return re.MatchString(item.GetName())
		})
	})
}

func rejectByGlobs[T Filterable](items []T, globs []string) []T {
	if len(globs) == 0 {
		return items
	}

	var gs []glob.Glob
	for _, g := range globs {
		compiled, err := glob.Compile(g)
		if err != nil {
			slog.Warn("skipping invalid exclude glob", "glob", g, "error", err)
			continue
		}
		gs = append(gs, compiled)
	}

	return slices.DeleteFunc(items, func(item T) bool {
		return slices.ContainsFunc(gs, func(g glob.Glob) bool {
			return g.Match(item.GetName())
		})
	})
}

// rejectBySize drops items at or below Min and at or above Max.
func rejectBySize[T Filterable](items []T, size config.SizeConfig) []T {
	var (
		min, max       int64
		hasMin, hasMax bool
	)
	if size.Min != "" {
		if v, err := units.FromHumanSize(size.Min); err == nil {
			min, hasMin = v, true
		}
	}
	if size.Max != "" {
		if v, err := units.FromHumanSize(size.Max); err == nil {
			max, hasMax = v, true
		}
	}
	if !hasMin && !hasMax {
		return items
	}

	return slices.DeleteFunc(items, func(item T) bool {
		s := item.GetSize()
		return (hasMin && s <= min) || (hasMax && max <= s)
	})
}

func filterByPeriod[T Filterable](items []T, period int, now time.Time) []T {
	if period <= 0 {
		return items
	}

	d, err := duration.Parse(fmt.Sprintf("%d days", period))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return items
	}

	return slices.DeleteFunc(items, func(item T) bool {
		return now.Sub(item.GetTime()) >= d
	})
}
