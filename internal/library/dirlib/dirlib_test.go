package dirlib

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/babarot/sweep/internal/config"
	"github.com/babarot/sweep/internal/library"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
	mp4Header  = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
)

type fixture struct {
	path string
	data []byte
	age  time.Duration
}

func setupLibrary(t *testing.T, files []fixture) string {
	t.Helper()
	root := t.TempDir()
	now := time.Now()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			t.Fatal(err)
		}
		mtime := now.Add(-f.age)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func defaultFixtures() []fixture {
	return []fixture{
		{path: "2024/beach.png", data: pngHeader, age: 3 * time.Hour},
		{path: "2024/sunset.jpg", data: jpegHeader, age: 1 * time.Hour},
		{path: "clips/party.mp4", data: mp4Header, age: 2 * time.Hour},
		{path: "notes.txt", data: []byte("not a photo\n"), age: time.Hour},
		{path: ".thumbnails/beach.png", data: pngHeader, age: time.Minute},
	}
}

func ids(assets []library.Asset) []string {
	var out []string
	for _, a := range assets {
		out = append(out, a.ID)
	}
	return out
}

func TestLibraryIndex(t *testing.T) {
	ctx := context.Background()
	lib := New(setupLibrary(t, defaultFixtures()), library.FilterOptions{})

	tests := []struct {
		mediaType library.MediaType
		want      []string
	}{
		{library.MediaTypePhoto, []string{"2024/sunset.jpg", "2024/beach.png"}},
		{library.MediaTypeVideo, []string{"clips/party.mp4"}},
		{library.MediaTypeAll, []string{"2024/sunset.jpg", "clips/party.mp4", "2024/beach.png"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mediaType), func(t *testing.T) {
			page, err := lib.Page(ctx, library.PageRequest{MediaType: tt.mediaType})
			if err != nil {
				t.Fatalf("Page() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(page.Assets)); diff != "" {
				t.Errorf("Page() ids mismatch (-want +got):\n%s", diff)
			}

			n, err := lib.Count(ctx, tt.mediaType)
			if err != nil || n != len(tt.want) {
				t.Errorf("Count() = %d, %v, want %d", n, err, len(tt.want))
			}
		})
	}
}

func TestLibraryPaging(t *testing.T) {
	ctx := context.Background()
	lib := New(setupLibrary(t, defaultFixtures()), library.FilterOptions{})

	var (
		got    []string
		cursor string
	)
	for range 5 {
		page, err := lib.Page(ctx, library.PageRequest{MediaType: library.MediaTypeAll, First: 2, After: cursor})
		if err != nil {
			t.Fatalf("Page() error = %v", err)
		}
		if page.TotalCount != 3 {
			t.Errorf("TotalCount = %d, want 3", page.TotalCount)
		}
		got = append(got, ids(page.Assets)...)
		if !page.HasNextPage {
			break
		}
		cursor = page.EndCursor
	}

	want := []string{"2024/sunset.jpg", "clips/party.mp4", "2024/beach.png"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paged ids mismatch (-want +got):\n%s", diff)
	}

	page, err := lib.Page(ctx, library.PageRequest{MediaType: library.MediaTypeAll, First: 1, Offset: 2})
	if err != nil {
		t.Fatalf("Page() with offset error = %v", err)
	}
	if diff := cmp.Diff([]string{"2024/beach.png"}, ids(page.Assets)); diff != "" {
		t.Errorf("offset page mismatch (-want +got):\n%s", diff)
	}
	if page.HasNextPage {
		t.Error("last page reports HasNextPage")
	}

	page, err = lib.Page(ctx, library.PageRequest{MediaType: library.MediaTypeAll, Offset: 10})
	if err != nil || len(page.Assets) != 0 {
		t.Errorf("Page() past the end = %v, %v", ids(page.Assets), err)
	}

	if _, err := lib.Page(ctx, library.PageRequest{After: "!!"}); !errors.Is(err, library.ErrInvalidCursor) {
		t.Errorf("Page() with bad cursor error = %v, want ErrInvalidCursor", err)
	}
}

func TestLibraryAt(t *testing.T) {
	ctx := context.Background()
	lib := New(setupLibrary(t, defaultFixtures()), library.FilterOptions{})

	a, err := library.At(ctx, lib, library.MediaTypePhoto, 1)
	if err != nil {
		t.Fatalf("At() error = %v", err)
	}
	if a.ID != "2024/beach.png" || a.Filename != "beach.png" || a.MediaType != library.MediaTypePhoto {
		t.Errorf("At() = %s", a)
	}
	if a.Size != int64(len(pngHeader)) {
		t.Errorf("Size = %d, want %d", a.Size, len(pngHeader))
	}

	if _, err := library.At(ctx, lib, library.MediaTypePhoto, 5); !errors.Is(err, library.ErrAssetNotFound) {
		t.Errorf("At() out of range error = %v, want ErrAssetNotFound", err)
	}
}

func TestLibraryAssetAndDelete(t *testing.T) {
	ctx := context.Background()
	root := setupLibrary(t, defaultFixtures())
	lib := New(root, library.FilterOptions{})

	a, err := lib.Asset(ctx, "2024/sunset.jpg")
	if err != nil {
		t.Fatalf("Asset() error = %v", err)
	}
	if _, err := lib.Asset(ctx, "nope.jpg"); !errors.Is(err, library.ErrAssetNotFound) {
		t.Errorf("Asset() missing error = %v, want ErrAssetNotFound", err)
	}

	gone := library.Asset{ID: "2024/already-gone.jpg"}
	if err := lib.Delete(ctx, []library.Asset{a, gone}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "2024", "sunset.jpg")); !os.IsNotExist(err) {
		t.Errorf("file still exists after Delete: %v", err)
	}
	if _, err := lib.Asset(ctx, a.ID); !errors.Is(err, library.ErrAssetNotFound) {
		t.Errorf("deleted asset still indexed: %v", err)
	}
	if n, _ := lib.Count(ctx, library.MediaTypePhoto); n != 1 {
		t.Errorf("Count() after Delete = %d, want 1", n)
	}

	escape := library.Asset{ID: "../outside.jpg"}
	if err := lib.Delete(ctx, []library.Asset{escape}); err == nil {
		t.Error("Delete() outside root should fail")
	}
}

func TestLibraryFilter(t *testing.T) {
	ctx := context.Background()
	filter := library.NewFilterOptions(config.Library{
		Exclude: config.ExcludeConfig{Globs: []string{"sunset*"}},
	})
	lib := New(setupLibrary(t, defaultFixtures()), filter)

	page, err := lib.Page(ctx, library.PageRequest{MediaType: library.MediaTypePhoto})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if diff := cmp.Diff([]string{"2024/beach.png"}, ids(page.Assets)); diff != "" {
		t.Errorf("filtered ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLibraryRefresh(t *testing.T) {
	ctx := context.Background()
	root := setupLibrary(t, defaultFixtures())
	lib := New(root, library.FilterOptions{})

	if n, _ := lib.Count(ctx, library.MediaTypePhoto); n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}
	if err := os.WriteFile(filepath.Join(root, "new.png"), pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}
	if n, _ := lib.Count(ctx, library.MediaTypePhoto); n != 2 {
		t.Errorf("Count() before Refresh = %d, want cached 2", n)
	}
	if err := lib.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if n, _ := lib.Count(ctx, library.MediaTypePhoto); n != 3 {
		t.Errorf("Count() after Refresh = %d, want 3", n)
	}
}

func TestLibraryMissingRoot(t *testing.T) {
	lib := New(filepath.Join(t.TempDir(), "missing"), library.FilterOptions{})
	if _, err := lib.Count(context.Background(), library.MediaTypeAll); err == nil {
		t.Error("Count() on missing root should fail")
	}
}

func TestLibraryRoot(t *testing.T) {
	dir := t.TempDir()
	lib := New(dir+"/photos/../photos/", library.FilterOptions{})
	if got, want := lib.Root(), filepath.Join(dir, "photos"); got != want {
		t.Errorf("Root() = %q, want %q", got, want)
	}
}
