package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/txnsift/txnsift/internal/model"
)

// Extension is the suffix a file must carry to be loaded. Case-sensitive.
const Extension = ".csv"

// FindCSVFiles returns the paths of regular files in dir whose names end in
// Extension, in directory listing order. Subdirectories are not searched.
func FindCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrDirNotFound, dir, err)
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// LoadFromDirectory parses every CSV file in dir and concatenates the
// results. An empty directory yields no records and no error.
func LoadFromDirectory(dir, defaultCategory, defaultTag string) ([]model.Record, error) {
	paths, err := FindCSVFiles(dir)
	if err != nil {
		return nil, err
	}

	var all []model.Record
	for _, p := range paths {
		records, err := ParseFile(p, defaultCategory, defaultTag)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
