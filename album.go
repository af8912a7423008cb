package ggview

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/gogpu/ggview/internal/decode"
)

// Album is the ordered set of viewable images sharing a directory with
// the startup image. The listing is taken once at startup and never
// refreshed; files added to the directory later are not picked up.
//
// An Album always contains at least one path.
type Album struct {
	paths []string
	index int
}

// LoadAlbum lists the directory containing path and builds the album
// from its viewable entries: subdirectories and files with unsupported
// extensions are skipped, and the rest are ordered lexicographically.
//
// The startup image is always a member. If it does not survive the
// extension filter, or the directory cannot be listed at all, it is
// inserted anyway so navigation stays well defined. Listing failures
// are not fatal; they leave a single-image album.
func LoadAlbum(path string) *Album {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	var paths []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		Logger().Warn("album listing failed", "dir", dir, "error", err)
	}
	// os.ReadDir returns entries sorted by filename, which keeps the
	// joined paths in lexicographic order.
	for _, e := range entries {
		if e.IsDir() || !decode.Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	index, found := slices.BinarySearch(paths, path)
	if !found {
		paths = slices.Insert(paths, index, path)
	}
	return &Album{paths: paths, index: index}
}

// Current returns the path at the album position.
func (a *Album) Current() string { return a.paths[a.index] }

// Len returns the number of images in the album.
func (a *Album) Len() int { return len(a.paths) }

// Index returns the zero-based album position.
func (a *Album) Index() int { return a.index }

// Navigate moves the album position by delta, wrapping past either end,
// and returns the path now current. A delta that wraps back to the same
// position (a single-image album, or a full lap) still counts as a move;
// callers reload in that case.
func (a *Album) Navigate(delta int) string {
	a.index = floorMod(a.index+delta, len(a.paths))
	return a.paths[a.index]
}
