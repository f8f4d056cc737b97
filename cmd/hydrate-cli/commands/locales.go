package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-hydrate/pkg/i18n"
)

var bundleExtensions = map[string]bool{".json": true, ".yml": true, ".yaml": true}

// localeFiles maps locale codes to bundle paths found in a directory.
type localeFiles map[string]string

func bundleLocales(dir string) (localeFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("render: read locale dir: %w", err)
	}
	files := localeFiles{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !bundleExtensions[ext] {
			continue
		}
		code := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		files[code] = filepath.Join(dir, entry.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("render: no bundles in %s", dir)
	}
	return files, nil
}

func (f localeFiles) codes() []string {
	out := make([]string, 0, len(f))
	for code := range f {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (f localeFiles) source(locale string) i18n.Source {
	path, ok := f[locale]
	if !ok {
		return nil
	}
	return i18n.SourceFromFile(path)
}
