package selector

import (
	"context"
	"log/slog"
	"math/rand/v2"
)

// Sample draws up to maxAttempts random indexes in [0,size), fetches the item
// at each one and returns the first item reject does not refuse. found is
// false when every attempt was rejected or failed. A failed fetch counts as
// an attempt. Only a done ctx produces an error.
func Sample[T any](
	ctx context.Context,
	size, maxAttempts int,
	rnd *rand.Rand,
	fetch func(ctx context.Context, i int) (T, error),
	reject func(T) bool,
) (T, bool, error) {
	var zero T
	if size <= 0 || maxAttempts <= 0 {
		return zero, false, nil
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}

		i := rnd.IntN(size)
		item, err := fetch(ctx, i)
		if err != nil {
			if ctx.Err() != nil {
				return zero, false, ctx.Err()
			}
			slog.Debug("sample fetch failed", "index", i, "attempt", attempt, "error", err)
			continue
		}
		if reject != nil && reject(item) {
			continue
		}
		return item, true, nil
	}

	slog.Debug("no candidate found", "size", size, "attempts", maxAttempts)
	return zero, false, nil
}
