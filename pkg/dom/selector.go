package dom

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
)

var selectorCache sync.Map // string -> cascadia.Selector

// Compile parses a CSS selector group, caching the result. Comma separated
// lists are accepted.
func Compile(selector string) (cascadia.Selector, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("dom: selector is required")
	}
	if cached, ok := selectorCache.Load(selector); ok {
		return cached.(cascadia.Selector), nil
	}
	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: compile selector %q: %w", selector, err)
	}
	selectorCache.Store(selector, compiled)
	return compiled, nil
}

// MustCompile panics when selector is invalid. Useful for package level
// selector constants.
func MustCompile(selector string) cascadia.Selector {
	sel, err := Compile(selector)
	if err != nil {
		panic(err)
	}
	return sel
}
