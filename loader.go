package hydrate

import (
	internalLoader "github.com/goliatone/go-hydrate/internal/bundle/loader"
	"github.com/goliatone/go-hydrate/pkg/i18n"
)

// NewBundleLoader constructs a locale bundle loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewBundleLoader(options ...i18n.LoaderOption) i18n.Loader {
	return internalLoader.New(i18n.NewLoaderOptions(options...))
}
