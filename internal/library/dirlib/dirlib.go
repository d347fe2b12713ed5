// Package dirlib serves a directory tree as a photo library.
package dirlib

import (
	"cmp"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	"github.com/babarot/sweep/internal/library"
)

type Library struct {
	root   string
	filter library.FilterOptions

	mu     sync.RWMutex
	built  bool
	assets []library.Asset
	byID   map[string]int
}

var _ library.Library = (*Library)(nil)

func New(root string, filter library.FilterOptions) *Library {
	return &Library{
		root:   filepath.Clean(root),
		filter: filter,
	}
}

func (l *Library) Root() string {
	return l.root
}

// Refresh rebuilds the index from disk.
func (l *Library) Refresh(ctx context.Context) error {
	assets, err := l.scan(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.setIndex(assets)
	return nil
}

func (l *Library) Count(ctx context.Context, mediaType library.MediaType) (int, error) {
	assets, err := l.list(ctx, mediaType)
	if err != nil {
		return 0, err
	}
	return len(assets), nil
}

func (l *Library) Page(ctx context.Context, req library.PageRequest) (library.Page, error) {
	assets, err := l.list(ctx, req.MediaType)
	if err != nil {
		return library.Page{}, err
	}

	start := max(req.Offset, 0)
	if req.After != "" {
		id, err := decodeCursor(req.After)
		if err != nil {
			return library.Page{}, err
		}
		i := slices.IndexFunc(assets, func(a library.Asset) bool { return a.ID == id })
		if i < 0 {
			return library.Page{}, fmt.Errorf("%w: %q is no longer in the library", library.ErrInvalidCursor, id)
		}
		start = i + 1
	}
	start = min(start, len(assets))

	end := len(assets)
	if req.First > 0 {
		end = min(start+req.First, len(assets))
	}

	page := library.Page{
		Assets:      slices.Clone(assets[start:end]),
		HasNextPage: end < len(assets),
		TotalCount:  len(assets),
	}
	if end > start {
		page.EndCursor = encodeCursor(assets[end-1].ID)
	}
	return page, nil
}

func (l *Library) Asset(ctx context.Context, id string) (library.Asset, error) {
	if err := l.ensureIndex(ctx); err != nil {
		return library.Asset{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.byID[id]
	if !ok {
		return library.Asset{}, fmt.Errorf("%w: %s", library.ErrAssetNotFound, id)
	}
	return l.assets[i], nil
}

// Delete removes the files behind assets. Files already gone are not an
// error. Every failure is collected and returned together.
func (l *Library) Delete(ctx context.Context, assets []library.Asset) error {
	var (
		errs    []error
		removed []string
	)
	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		path, err := l.path(a.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("delete %s: %w", a.ID, err))
			continue
		}
		slog.Info("asset deleted", "id", a.ID, "path", path)
		removed = append(removed, a.ID)
	}

	if len(removed) > 0 {
		l.mu.Lock()
		if l.built {
			l.setIndex(lo.Reject(l.assets, func(a library.Asset, _ int) bool {
				return lo.Contains(removed, a.ID)
			}))
		}
		l.mu.Unlock()
	}

	return errors.Join(errs...)
}

func (l *Library) path(id string) (string, error) {
	rel := filepath.FromSlash(id)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("asset id %q escapes the library root", id)
	}
	return filepath.Join(l.root, rel), nil
}

func (l *Library) list(ctx context.Context, mediaType library.MediaType) ([]library.Asset, error) {
	if err := l.ensureIndex(ctx); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if mediaType == library.MediaTypeAll || mediaType == "" {
		return l.assets, nil
	}
	return lo.Filter(l.assets, func(a library.Asset, _ int) bool {
		return mediaType.Matches(a.MediaType)
	}), nil
}

func (l *Library) ensureIndex(ctx context.Context) error {
	l.mu.RLock()
	built := l.built
	l.mu.RUnlock()
	if built {
		return nil
	}
	return l.Refresh(ctx)
}

func (l *Library) setIndex(assets []library.Asset) {
	l.assets = assets
	l.byID = make(map[string]int, len(assets))
	for i, a := range assets {
		l.byID[a.ID] = i
	}
	l.built = true
}

func (l *Library) scan(ctx context.Context) ([]library.Asset, error) {
	var assets []library.Asset

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == l.root {
				return err
			}
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != l.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		asset, ok, err := l.inspect(path, d)
		if err != nil {
			slog.Warn("skipping file", "path", path, "error", err)
			return nil
		}
		if ok {
			assets = append(assets, asset)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan library %s: %w", l.root, err)
	}

	assets = library.Filter(assets, l.filter)
	slices.SortFunc(assets, func(a, b library.Asset) int {
		if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	slog.Debug("library indexed", "root", l.root, "assets", len(assets))
	return assets, nil
}

func (l *Library) inspect(path string, d fs.DirEntry) (library.Asset, bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return library.Asset{}, false, err
	}

	var mediaType library.MediaType
	switch {
	case strings.HasPrefix(mtype.String(), "image/"):
		mediaType = library.MediaTypePhoto
	case strings.HasPrefix(mtype.String(), "video/"):
		mediaType = library.MediaTypeVideo
	default:
		return library.Asset{}, false, nil
	}

	info, err := d.Info()
	if err != nil {
		return library.Asset{}, false, err
	}
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return library.Asset{}, false, err
	}

	return library.Asset{
		ID:         filepath.ToSlash(rel),
		Filename:   d.Name(),
		URI:        "file://" + filepath.ToSlash(path),
		MediaType:  mediaType,
		Size:       info.Size(),
		CreatedAt:  info.ModTime(),
		ModifiedAt: info.ModTime(),
	}, true, nil
}

func encodeCursor(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

func decodeCursor(cursor string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("%w: %v", library.ErrInvalidCursor, err)
	}
	return string(b), nil
}
