package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-hydrate/pkg/dom"
	"github.com/goliatone/go-hydrate/pkg/i18n"
	"github.com/goliatone/go-hydrate/pkg/orchestrator"
)

type renderFlags struct {
	output    string
	locale    string
	bundle    string
	localeDir string
	now         string
	tz          string
	interactive bool
}

func renderCmd() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Hydrate an HTML page and print the result",
		Long: "Reads an HTML page from a file or stdin, renders timestamps and emoji " +
			"for the page locale and writes the hydrated markup.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runRender(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), input, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&flags.locale, "locale", "", "locale override (defaults to <html lang>)")
	cmd.Flags().StringVar(&flags.bundle, "bundle", "", "message bundle path or URL")
	cmd.Flags().StringVar(&flags.localeDir, "locale-dir", "", "directory holding <locale>.json or <locale>.yml bundles")
	cmd.Flags().StringVar(&flags.now, "now", "", "reference time in RFC 3339 (defaults to the current time)")
	cmd.Flags().StringVar(&flags.tz, "tz", "", "IANA time zone of the viewer (defaults to local)")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for locale and time zone when not set")
	return cmd
}

func runRender(ctx context.Context, stdin io.Reader, stdout io.Writer, input string, flags renderFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var available localeFiles
	if flags.localeDir != "" {
		var err error
		if available, err = bundleLocales(flags.localeDir); err != nil {
			return err
		}
	}
	if flags.interactive {
		if err := promptRender(ctx, activePrompter, &flags, available.codes()); err != nil {
			return err
		}
	}

	doc, err := readDocument(stdin, input)
	if err != nil {
		return err
	}

	req := orchestrator.Request{Document: doc, Locale: flags.locale}
	if flags.now != "" {
		req.Now, err = time.Parse(time.RFC3339, flags.now)
		if err != nil {
			return fmt.Errorf("render: invalid --now: %w", err)
		}
	}
	if flags.tz != "" {
		req.Location, err = time.LoadLocation(flags.tz)
		if err != nil {
			return fmt.Errorf("render: invalid --tz: %w", err)
		}
	}
	if flags.bundle != "" {
		if req.BundleSource = parseSource(flags.bundle); req.BundleSource == nil {
			return fmt.Errorf("render: invalid --bundle %q", flags.bundle)
		}
	}

	options := []orchestrator.Option{orchestrator.WithLogger(logger)}
	if available != nil {
		options = append(options,
			orchestrator.WithAvailableLocales(available.codes()...),
			orchestrator.WithBundleSourceFunc(available.source),
		)
	}

	page, err := orchestrator.New(options...).Boot(ctx, req)
	if err != nil {
		return err
	}
	defer page.Close()

	for _, failure := range page.Report.Failures {
		logger.Warn("node left unhydrated",
			zap.String("category", string(failure.Category)),
			zap.String("node", failure.Node),
			zap.Error(failure.Err),
		)
	}

	if flags.output == "" {
		return doc.Render(stdout)
	}
	f, err := os.Create(flags.output)
	if err != nil {
		return fmt.Errorf("render: create output: %w", err)
	}
	if err := doc.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render: write output: %w", err)
	}
	return f.Close()
}

func readDocument(stdin io.Reader, input string) (*dom.Document, error) {
	if input == "-" {
		return dom.Parse(stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("render: open input: %w", err)
	}
	defer f.Close()
	return dom.Parse(f)
}

func parseSource(raw string) i18n.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return i18n.SourceFromURL(path)
	}
	return i18n.SourceFromFile(path)
}
