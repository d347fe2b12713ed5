// Package selector picks the next random asset to show, skipping assets that
// are trashed or were shown recently.
package selector

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/babarot/sweep/internal/library"
	"github.com/babarot/sweep/internal/trash"
)

const DefaultMaxAttempts = 10

type Options struct {
	MediaType   library.MediaType
	MaxAttempts int
	// Recent is how many previously returned ids are excluded. One prevents
	// showing the same asset twice in a row; zero disables the check.
	Recent int
	Rand   *rand.Rand
}

type Selector struct {
	lib   library.Library
	trash *trash.Store
	opts  Options

	mu     sync.Mutex
	recent []string
}

func New(lib library.Library, store *trash.Store, opts Options) *Selector {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Recent < 0 {
		opts.Recent = 0
	}
	if opts.MediaType == "" {
		opts.MediaType = library.MediaTypePhoto
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Selector{
		lib:   lib,
		trash: store,
		opts:  opts,
	}
}

// Next returns a random asset that is neither trashed, listed in exclude, nor
// among the recently returned ids. found is false when the attempt bound ran
// out, which usually means most of the library is trashed.
func (s *Selector) Next(ctx context.Context, exclude ...string) (library.Asset, bool, error) {
	size, err := s.lib.Count(ctx, s.opts.MediaType)
	if err != nil {
		return library.Asset{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fetch := func(ctx context.Context, i int) (library.Asset, error) {
		return library.At(ctx, s.lib, s.opts.MediaType, i)
	}
	reject := func(a library.Asset) bool {
		return slices.Contains(exclude, a.ID) ||
			slices.Contains(s.recent, a.ID) ||
			s.trash.Contains(ctx, a.ID)
	}

	asset, found, err := Sample(ctx, size, s.opts.MaxAttempts, s.opts.Rand, fetch, reject)
	if err != nil || !found {
		return library.Asset{}, false, err
	}
	s.remember(asset.ID)
	return asset, true, nil
}

// Reset forgets the recently returned ids.
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
}

func (s *Selector) remember(id string) {
	if s.opts.Recent == 0 {
		return
	}
	s.recent = append(s.recent, id)
	if over := len(s.recent) - s.opts.Recent; over > 0 {
		s.recent = slices.Delete(s.recent, 0, over)
	}
}
