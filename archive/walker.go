// Package archive reads documents packed into zip archives.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// ErrUnsafePath is returned for entries which could escape destination
// directory when archive structure is recreated on disk.
var ErrUnsafePath = errors.New("unsafe path (absolute or contains path traversal)")

// Entry is a regular file stored in archive.
type Entry struct {
	Name string
	file *zip.File
}

// ReadAll returns uncompressed entry content.
func (e Entry) ReadAll() ([]byte, error) {
	rc, err := e.file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// WalkFunc is called for every accepted entry. If an error is returned,
// processing stops.
type WalkFunc func(e Entry) error

// Walk calls walkFn for regular files in archive accepted by match, in
// natural order of their names. All entries are checked for path traversal
// before any of them is visited.
func Walk(archive string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if r != nil {
		defer r.Close()
	}
	if err != nil {
		return err
	}

	var entries []Entry
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: %w", f.Name, ErrUnsafePath)
		}
		if f.FileInfo().IsDir() || (match != nil && !match(f.Name)) {
			continue
		}
		entries = append(entries, Entry{Name: f.Name, file: f})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, e := range entries {
		if err := walkFn(e); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) || (len(name) > 1 && name[1] == ':') {
		return false
	}
	return !slices.Contains(strings.Split(strings.ReplaceAll(name, `\`, "/"), "/"), "..")
}
