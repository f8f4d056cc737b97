package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-hydrate/pkg/datefmt"
)

// prompter asks the user for render settings. Tests swap the survey backed
// implementation for a scripted one.
type prompter interface {
	Select(ctx context.Context, message string, options []string, def string) (string, error)
	Input(ctx context.Context, message, def string, validate func(string) error) (string, error)
}

var activePrompter prompter = surveyPrompter{}

type surveyPrompter struct{}

func (surveyPrompter) Select(ctx context.Context, message string, options []string, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt := &survey.Select{Message: message, Options: options, PageSize: 10}
	if indexOf(options, def) >= 0 {
		prompt.Default = def
	}
	var out string
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Input(ctx context.Context, message, def string, validate func(string) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt := &survey.Input{Message: message, Default: def}
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return context.Canceled
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// promptRender fills the locale and time zone flags left empty on the
// command line. Locales come from the bundle directory when given, else from
// the built-in calendar rules.
func promptRender(ctx context.Context, p prompter, flags *renderFlags, locales []string) error {
	if flags.locale == "" {
		if len(locales) == 0 {
			locales = datefmt.DefaultCatalog().Locales()
		}
		locale, err := p.Select(ctx, "Locale", locales, "en")
		if err != nil {
			return fmt.Errorf("render: prompt locale: %w", err)
		}
		flags.locale = locale
	}
	if flags.tz == "" {
		tz, err := p.Input(ctx, "Time zone (IANA)", "UTC", func(v string) error {
			_, err := time.LoadLocation(strings.TrimSpace(v))
			return err
		})
		if err != nil {
			return fmt.Errorf("render: prompt time zone: %w", err)
		}
		flags.tz = strings.TrimSpace(tz)
	}
	return nil
}
