package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

func runRender(ctx context.Context, a *app, args []string) error {
	fs := subcommand(a, "render", "[flags] <form.yaml>")
	renderer := fs.String("renderer", a.cfg.Render.Renderer, "renderer to use (vanilla, tui)")
	output := fs.String("output", "", "output file (stdout if empty)")
	action := fs.String("action", "", "form action URL")
	locale := fs.String("locale", a.cfg.Render.Locale, "locale used with the translations file")
	var sets setFlags
	fs.Var(&sets, "set", "prefill a value, name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	_, form, err := a.loadForm(fs.Arg(0))
	if err != nil {
		return err
	}
	defer form.Close()
	if len(sets) > 0 {
		form.SetValues(sets.values())
	}

	translator, err := a.translator()
	if err != nil {
		return err
	}
	out, err := form.RenderWith(ctx, *renderer, render.RenderOptions{
		Action:     *action,
		Locale:     *locale,
		Translator: translator,
	})
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		a.logger.Info("form written")
		return nil
	}
	_, err = a.stdout.Write(append(out, '\n'))
	return err
}

func runSchema(_ context.Context, a *app, args []string) error {
	fs := subcommand(a, "schema", "<form.yaml>")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	_, form, err := a.loadForm(fs.Arg(0))
	if err != nil {
		return err
	}
	defer form.Close()

	schema, err := form.Schema()
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(schema.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	_, err = a.stdout.Write(append(body, '\n'))
	return err
}

// setFlags collects repeated -set name=value pairs.
type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(raw string) error {
	if !strings.Contains(raw, "=") {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	*s = append(*s, raw)
	return nil
}

func (s setFlags) values() model.Values {
	values := make(model.Values, len(s))
	for _, pair := range s {
		name, value, _ := strings.Cut(pair, "=")
		values[strings.TrimSpace(name)] = value
	}
	return values
}
