package svgbundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	// ErrNoInputDir is returned when the input directory does not exist.
	ErrNoInputDir = errors.New("input directory not found")

	// ErrNoIcons is returned when the input directory holds no .svg files.
	ErrNoIcons = errors.New("no svg files found")
)

// CheckInputDir verifies that dir exists and is a directory.
func CheckInputDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoInputDir, dir)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoInputDir, dir)
	}
	return nil
}

// ListIcons returns the names of the .svg files (any case) at the root of
// fsys in lexicographic order.
func ListIcons(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(path.Ext(e.Name()), ".svg") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoIcons
	}

	slices.Sort(names)
	return names, nil
}
