package datefmt

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/locales.yml
var embeddedRules embed.FS

// Rules holds the calendar formatting data for one locale.
type Rules struct {
	Locale          string           `yaml:"locale"`
	MonthNames      []string         `yaml:"month_names"`
	MonthShortNames []string         `yaml:"month_short_names"`
	DatePatterns    DatePatternRules `yaml:"date_patterns"`
	TimeFormat      TimeFormatRules  `yaml:"time_format"`
}

// DatePatternRules lists the date layouts used by the formatter.
type DatePatternRules struct {
	DateTime      string `yaml:"date_time"`
	Date          string `yaml:"date"`
	ShortDate     string `yaml:"short_date"`
	ShortDateYear string `yaml:"short_date_year"`
}

// TimeFormatRules describes the hour:minute layout.
type TimeFormatRules struct {
	Use24Hour bool   `yaml:"use_24_hour"`
	Pattern   string `yaml:"pattern"`
	AM        string `yaml:"am"`
	PM        string `yaml:"pm"`
}

// Validate reports incomplete rule sets.
func (r Rules) Validate() error {
	if strings.TrimSpace(r.Locale) == "" {
		return fmt.Errorf("datefmt: locale is required")
	}
	if len(r.MonthNames) != 12 || len(r.MonthShortNames) != 12 {
		return fmt.Errorf("datefmt: locale %s needs 12 month names", r.Locale)
	}
	if r.DatePatterns.DateTime == "" || r.DatePatterns.Date == "" || r.TimeFormat.Pattern == "" {
		return fmt.Errorf("datefmt: locale %s is missing patterns", r.Locale)
	}
	return nil
}

type rulesFile struct {
	Locales []Rules `yaml:"locales"`
}

// Catalog indexes Rules by lower-cased locale code.
type Catalog struct {
	rules map[string]Rules
}

// LoadCatalog parses a YAML rules document from fsys.
func LoadCatalog(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("datefmt: read %s: %w", name, err)
	}
	var doc rulesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("datefmt: parse %s: %w", name, err)
	}
	catalog := &Catalog{rules: make(map[string]Rules, len(doc.Locales))}
	for _, rules := range doc.Locales {
		if err := catalog.Add(rules); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Add registers or replaces the rules for a locale.
func (c *Catalog) Add(rules Rules) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	if c.rules == nil {
		c.rules = make(map[string]Rules)
	}
	c.rules[strings.ToLower(rules.Locale)] = rules
	return nil
}

// Lookup resolves rules for locale, trying the full code, then its base
// language, then English.
func (c *Catalog) Lookup(locale string) Rules {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if rules, ok := c.rules[key]; ok {
		return rules
	}
	if base, _, found := strings.Cut(key, "-"); found {
		if rules, ok := c.rules[base]; ok {
			return rules
		}
	}
	if key != "" {
		// "pt" should still find "pt-BR".
		codes := make([]string, 0, len(c.rules))
		for code := range c.rules {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if strings.HasPrefix(code, key+"-") {
				return c.rules[code]
			}
		}
	}
	return c.rules["en"]
}

// Locales returns the registered locale codes, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.rules))
	for _, rules := range c.rules {
		out = append(out, rules.Locale)
	}
	sort.Strings(out)
	return out
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
)

// EmbeddedFS exposes the built-in locale rules (data/locales.yml) so callers
// can extend them with LoadCatalog.
func EmbeddedFS() fs.FS {
	return embeddedRules
}

// DefaultCatalog returns the embedded rules.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := LoadCatalog(embeddedRules, "data/locales.yml")
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}
