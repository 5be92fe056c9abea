package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/internal/config"
	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// newRegistry registers every renderer the CLI ships, honouring a custom
// template directory for vanilla.
func newRegistry(cfg config.RenderConfig) (*render.Registry, error) {
	var options []vanilla.Option
	if cfg.Templates != "" {
		options = append(options, vanilla.WithTemplatesDir(cfg.Templates))
	}
	html, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(html, tui.NewRenderer()); err != nil {
		return nil, err
	}
	return registry, nil
}

func (a *app) formOptions() ([]orchestrator.Option, error) {
	registry, err := newRegistry(a.cfg.Render)
	if err != nil {
		return nil, err
	}
	return []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(a.cfg.Render.Renderer),
	}, nil
}

func (a *app) translator() (render.Translator, error) {
	catalog, err := config.LoadCatalog(a.cfg.Render.Translations)
	if err != nil || catalog == nil {
		return nil, err
	}
	return catalog, nil
}

// logSubmit is the callback used by prompt and serve: it records the values
// and accepts them.
func (a *app) logSubmit(name string) orchestrator.SubmitFunc {
	return func(_ context.Context, values model.Values) error {
		a.logger.Info("form submitted", zap.String("form", name), zap.Any("values", values))
		return nil
	}
}

func (a *app) loadForm(path string) (*loader.Definition, *orchestrator.Form, error) {
	def, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	props, err := def.Props(a.logSubmit(def.Name))
	if err != nil {
		return nil, nil, err
	}
	options, err := a.formOptions()
	if err != nil {
		return nil, nil, err
	}
	form, err := orchestrator.New(props, options...)
	if err != nil {
		return nil, nil, err
	}
	return def, form, nil
}
