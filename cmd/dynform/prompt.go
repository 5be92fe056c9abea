package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

func runPrompt(ctx context.Context, a *app, args []string) error {
	fs := subcommand(a, "prompt", "[flags] <form.yaml>")
	format := fs.String("format", a.cfg.Output.Format, "output format (json, form, pretty)")
	confirm := fs.Bool("confirm", true, "ask for confirmation before submitting")
	attempts := fs.Int("attempts", 3, "re-prompt rounds for invalid answers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	outputFormat, ok := tui.ParseOutputFormat(*format)
	if !ok {
		return fmt.Errorf("unknown output format %q", *format)
	}

	def, form, err := a.loadForm(fs.Arg(0))
	if err != nil {
		return err
	}
	defer form.Close()

	session := tui.NewSession(
		tui.WithPromptDriver(tui.NewSurveyDriver(a.stderr)),
		tui.WithOutputFormat(outputFormat),
		tui.WithOutput(a.stdout),
		tui.WithConfirm(*confirm),
		tui.WithMaxAttempts(*attempts),
	)
	result, err := session.Run(ctx, form)
	if err != nil {
		return err
	}
	a.logger.Debug("prompt finished", zap.String("form", def.Name), zap.String("outcome", string(result.Outcome)))
	if !result.OK() {
		return fmt.Errorf("form %s was not submitted (%s)", def.Name, result.Outcome)
	}
	return nil
}
