package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when neither the document nor the bundle names one.
const DefaultLocale = "en"

// MatchLocale picks the best entry of available for requested using CLDR
// matching (so "en-GB" picks "en", "pt" picks "pt-BR" when it is the only
// Portuguese bundle). When nothing is close enough the first available locale
// is returned; with no candidates the requested locale is returned as is.
func MatchLocale(requested string, available []string) string {
	requested = strings.TrimSpace(requested)
	if len(available) == 0 {
		return requested
	}

	tags := make([]language.Tag, 0, len(available))
	names := make([]string, 0, len(available))
	for _, code := range available {
		tag, err := language.Parse(strings.TrimSpace(code))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, code)
	}
	if len(tags) == 0 {
		return requested
	}

	want, err := language.Parse(requested)
	if err != nil || requested == "" {
		return names[0]
	}

	matcher := language.NewMatcher(tags)
	_, idx, confidence := matcher.Match(want)
	if confidence == language.No {
		return names[0]
	}
	return names[idx]
}

func parseTag(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}
