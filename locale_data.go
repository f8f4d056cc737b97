package hydrate

import (
	"io/fs"

	"github.com/goliatone/go-hydrate/pkg/datefmt"
)

// LocaleDataFS exposes the built-in calendar rules so callers can copy or
// extend them without importing the datefmt package directly.
func LocaleDataFS() fs.FS {
	return datefmt.EmbeddedFS()
}
