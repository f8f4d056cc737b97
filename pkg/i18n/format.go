package i18n

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Values carries the named arguments substituted into a template.
type Values map[string]any

type formatter struct {
	tag     language.Tag
	printer *message.Printer
	src     string
}

func newFormatter(tag language.Tag, src string) *formatter {
	return &formatter{tag: tag, printer: message.NewPrinter(tag), src: src}
}

func (f *formatter) render(nodes []node, values Values, pound *float64, sb *strings.Builder) error {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			sb.WriteString(n.text)
		case nodePound:
			if pound == nil {
				sb.WriteByte('#')
				continue
			}
			sb.WriteString(f.number(*pound))
		case nodeArg:
			value, err := f.value(values, n.name)
			if err != nil {
				return err
			}
			sb.WriteString(f.plain(value))
		case nodeNumber:
			value, err := f.value(values, n.name)
			if err != nil {
				return err
			}
			num, ok := toFloat(value)
			if !ok {
				sb.WriteString(f.plain(value))
				continue
			}
			sb.WriteString(f.number(num))
		case nodePlural:
			value, err := f.value(values, n.name)
			if err != nil {
				return err
			}
			num, ok := toFloat(value)
			if !ok {
				return &FormatError{Template: f.src, Offset: -1, Reason: fmt.Sprintf("plural argument %q is not a number", n.name)}
			}
			adjusted := num - n.offset
			msg := f.selectPlural(n.options, num, adjusted)
			if err := f.render(msg, values, &adjusted, sb); err != nil {
				return err
			}
		case nodeSelect:
			value, err := f.value(values, n.name)
			if err != nil {
				return err
			}
			msg := selectOption(n.options, f.plain(value))
			if err := f.render(msg, values, pound, sb); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *formatter) value(values Values, name string) (any, error) {
	value, ok := values[name]
	if !ok {
		return nil, &FormatError{
			Template: f.src,
			Offset:   -1,
			Reason:   fmt.Sprintf("value %q was not provided", name),
			Err:      ErrMissingValue,
		}
	}
	return value, nil
}

func (f *formatter) plain(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	if num, ok := toFloat(value); ok {
		return f.number(num)
	}
	return fmt.Sprint(value)
}

func (f *formatter) number(num float64) string {
	if num == math.Trunc(num) && math.Abs(num) < 1e15 {
		return f.printer.Sprint(number.Decimal(int64(num)))
	}
	return f.printer.Sprint(number.Decimal(num))
}

func (f *formatter) selectPlural(options []option, raw, adjusted float64) []node {
	exact := "=" + strconv.FormatFloat(raw, 'f', -1, 64)
	for _, opt := range options {
		if opt.key == exact {
			return opt.message
		}
	}
	return selectOption(options, pluralCategory(f.tag, adjusted))
}

func selectOption(options []option, key string) []node {
	var other []node
	for _, opt := range options {
		if opt.key == key {
			return opt.message
		}
		if opt.key == "other" {
			other = opt.message
		}
	}
	return other
}

// pluralCategory maps a number onto its CLDR cardinal category for tag.
func pluralCategory(tag language.Tag, num float64) string {
	abs := math.Abs(num)
	digits := strconv.FormatFloat(abs, 'f', -1, 64)

	var v, w, fr, t int
	intPart, fracPart, hasFrac := strings.Cut(digits, ".")
	i, _ := strconv.Atoi(intPart)
	if hasFrac {
		v = len(fracPart)
		fr, _ = strconv.Atoi(fracPart)
		trimmed := strings.TrimRight(fracPart, "0")
		w = len(trimmed)
		if trimmed != "" {
			t, _ = strconv.Atoi(trimmed)
		}
	}

	switch plural.Cardinal.MatchPlural(tag, i, v, w, fr, t) {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		num, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return num, true
	}
	return 0, false
}
