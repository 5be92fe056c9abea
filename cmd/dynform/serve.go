package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/httpform"
	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/model"
)

const shutdownTimeout = 5 * time.Second

func runServe(ctx context.Context, a *app, args []string) error {
	fs := subcommand(a, "serve", "[flags] <forms-dir>")
	addr := fs.String("addr", a.cfg.Server.Addr, "listen address")
	prefix := fs.String("prefix", a.cfg.Server.Prefix, "URL prefix for forms")
	redirect := fs.String("redirect", a.cfg.Server.Redirect, "redirect target after a successful submission")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	defs, err := loader.LoadFS(os.DirFS(fs.Arg(0)))
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return fmt.Errorf("no form definitions found in %s", fs.Arg(0))
	}

	formOptions, err := a.formOptions()
	if err != nil {
		return err
	}
	translator, err := a.translator()
	if err != nil {
		return err
	}

	handlerOptions := []httpform.OptionFn{
		httpform.WithLogger(a.logger),
		httpform.WithRenderer(a.cfg.Render.Renderer),
		httpform.WithFormOptions(formOptions...),
		httpform.WithSuccessRedirect(*redirect),
	}
	if translator != nil {
		handlerOptions = append(handlerOptions, httpform.WithTranslator(translator, ""))
	}

	mux, err := httpform.NewMux(*prefix, defs, func(_ context.Context, values model.Values) error {
		a.logger.Info("form submitted", zap.Any("values", values))
		return nil
	}, handlerOptions...)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving forms", zap.String("addr", *addr), zap.Strings("forms", loader.Names(defs)))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
