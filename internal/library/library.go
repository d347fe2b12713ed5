// Package library describes the photo library sweep triages. The library
// owns the assets; sweep only lists them, reads their metadata and asks for
// permanent deletion when the trash is emptied.
package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k0kubun/pp/v3"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidCursor = errors.New("invalid page cursor")
)

type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
	MediaTypeAll   MediaType = "all"
)

// Matches reports whether an asset of type t is selected by filter m.
func (m MediaType) Matches(t MediaType) bool {
	return m == MediaTypeAll || m == "" || m == t
}

func ParseMediaType(s string) (MediaType, error) {
	switch t := MediaType(s); t {
	case MediaTypePhoto, MediaTypeVideo, MediaTypeAll:
		return t, nil
	case "":
		return MediaTypePhoto, nil
	default:
		return "", fmt.Errorf("unknown media type %q", s)
	}
}

type Asset struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	URI        string    `json:"uri"`
	MediaType  MediaType `json:"media_type"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func (a Asset) GetName() string {
	return a.Filename
}

func (a Asset) GetSize() int64 {
	return a.Size
}

func (a Asset) GetTime() time.Time {
	return a.ModifiedAt
}

// String returns a colorless debug dump of the asset.
func (a Asset) String() string {
	printer := pp.New()
	printer.SetColoringEnabled(false)
	printer.SetExportedOnly(true)
	return printer.Sprint(a)
}

type PageRequest struct {
	MediaType MediaType
	First     int
	// After is the EndCursor of a previous page. It takes precedence over
	// Offset when set.
	After  string
	Offset int
}

type Page struct {
	Assets      []Asset
	EndCursor   string
	HasNextPage bool
	TotalCount  int
}

type Library interface {
	Count(ctx context.Context, mediaType MediaType) (int, error)
	Page(ctx context.Context, req PageRequest) (Page, error)
	Asset(ctx context.Context, id string) (Asset, error)
	// Delete permanently removes assets. It is the only destructive call.
	Delete(ctx context.Context, assets []Asset) error
}

// At fetches the asset at index i of the media-type listing.
func At(ctx context.Context, lib Library, mediaType MediaType, i int) (Asset, error) {
	page, err := lib.Page(ctx, PageRequest{MediaType: mediaType, First: 1, Offset: i})
	if err != nil {
		return Asset{}, err
	}
	if len(page.Assets) == 0 {
		return Asset{}, fmt.Errorf("%w: index %d of %d", ErrAssetNotFound, i, page.TotalCount)
	}
	return page.Assets[0], nil
}
