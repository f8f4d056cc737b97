package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader fetches a locale bundle from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Bundle, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, src Source) (Bundle, error)

// Load implements Loader.
func (fn LoaderFunc) Load(ctx context.Context, src Source) (Bundle, error) {
	return fn(ctx, src)
}

// Bundle maps message ids to templates for a single locale. A Bundle is
// immutable once built; NewBundle copies its input.
type Bundle struct {
	locale   string
	messages map[string]string
}

// NewBundle builds a bundle from a flat id → template map.
func NewBundle(locale string, messages map[string]string) Bundle {
	copied := make(map[string]string, len(messages))
	for id, tpl := range messages {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		copied[id] = tpl
	}
	return Bundle{locale: strings.TrimSpace(locale), messages: copied}
}

// Locale returns the locale code the bundle was built for.
func (b Bundle) Locale() string {
	return b.locale
}

// Lookup returns the template registered for id.
func (b Bundle) Lookup(id string) (string, bool) {
	if b.messages == nil || id == "" {
		return "", false
	}
	tpl, ok := b.messages[id]
	return tpl, ok
}

// Len returns the number of messages.
func (b Bundle) Len() int {
	return len(b.messages)
}

// IDs returns the sorted message ids.
func (b Bundle) IDs() []string {
	ids := make([]string, 0, len(b.messages))
	for id := range b.messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type bundleFile struct {
	Locale   string         `json:"locale" yaml:"locale"`
	Messages map[string]any `json:"messages" yaml:"messages"`
}

// ParseBundle decodes a JSON or YAML bundle. Two shapes are accepted: a
// document with "locale" and "messages" keys, or a bare map of messages. Nested
// maps are flattened with dots ("relative_time": {"today": ...} becomes
// "relative_time.today"). When the document does not name its locale the file
// name (en.yml, pt-BR.json) is used.
func ParseBundle(data []byte, name string) (Bundle, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Bundle{}, fmt.Errorf("i18n: bundle %s is empty", name)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Bundle{}, fmt.Errorf("i18n: parse %s: invalid JSON or YAML", name)
		}
	}
	if raw == nil {
		return Bundle{}, fmt.Errorf("i18n: bundle %s is not a map", name)
	}

	var doc bundleFile
	if messages, ok := raw["messages"].(map[string]any); ok {
		doc.Messages = messages
		doc.Locale, _ = raw["locale"].(string)
	} else {
		doc.Messages = raw
	}

	flat := make(map[string]string, len(doc.Messages))
	if err := flatten("", doc.Messages, flat); err != nil {
		return Bundle{}, fmt.Errorf("i18n: bundle %s: %w", name, err)
	}

	locale := strings.TrimSpace(doc.Locale)
	if locale == "" {
		locale = localeFromName(name)
	}
	return NewBundle(locale, flat), nil
}

func flatten(prefix string, in map[string]any, out map[string]string) error {
	for key, value := range in {
		id := key
		if prefix != "" {
			id = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[id] = v
		case map[string]any:
			if err := flatten(id, v, out); err != nil {
				return err
			}
		case nil:
			continue
		case bool, int, int64, float64:
			out[id] = fmt.Sprint(v)
		default:
			return fmt.Errorf("message %q has unsupported type %T", id, value)
		}
	}
	return nil
}

func localeFromName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if idx := strings.Index(base, "."); idx > 0 {
		base = base[:idx]
	}
	if base == "." || base == "/" {
		return ""
	}
	return base
}
