package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type scriptedPrompter struct {
	selected string
	input    string
	options  []string
	inputErr error
}

func (p *scriptedPrompter) Select(_ context.Context, _ string, options []string, _ string) (string, error) {
	p.options = options
	return p.selected, nil
}

func (p *scriptedPrompter) Input(_ context.Context, _ string, _ string, validate func(string) error) (string, error) {
	p.inputErr = validate("Mars/Olympus")
	return p.input, nil
}

func TestPromptRenderFillsMissingFlags(t *testing.T) {
	p := &scriptedPrompter{selected: "de", input: " Europe/Berlin "}
	flags := renderFlags{}
	if err := promptRender(context.Background(), p, &flags, nil); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if flags.locale != "de" || flags.tz != "Europe/Berlin" {
		t.Fatalf("unexpected flags %+v", flags)
	}
	if len(p.options) < 6 || p.options[0] != "de" {
		t.Fatalf("expected built-in locales, got %v", p.options)
	}
	if p.inputErr == nil {
		t.Fatalf("expected time zone validator to reject unknown zones")
	}
}

func TestPromptRenderKeepsExplicitFlags(t *testing.T) {
	p := &scriptedPrompter{selected: "fr", input: "UTC"}
	flags := renderFlags{locale: "ja", tz: "Asia/Tokyo"}
	if err := promptRender(context.Background(), p, &flags, []string{"ja"}); err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if diff := cmp.Diff(renderFlags{locale: "ja", tz: "Asia/Tokyo"}, flags, cmp.AllowUnexported(renderFlags{})); diff != "" {
		t.Fatalf("flags mismatch (-want +got):\n%s", diff)
	}
	if p.options != nil {
		t.Fatalf("expected no prompt, got options %v", p.options)
	}
}

func TestRenderCommandInteractive(t *testing.T) {
	prev := activePrompter
	activePrompter = &scriptedPrompter{selected: "fr", input: "UTC"}
	defer func() { activePrompter = prev }()

	root := NewRoot()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(page))
	root.SetOut(&out)
	root.SetArgs([]string{"render", "-i", "--now", "2024-01-02T00:00:00Z"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), ">1 janvier 2024 à 10:00</time>") {
		t.Fatalf("expected french rendering:\n%s", out.String())
	}
}
