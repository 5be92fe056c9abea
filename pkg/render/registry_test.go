package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, render.View, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	t.Parallel()

	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla"}, stubRenderer{name: "tui"})

	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	renderer, err := registry.Get("tui")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "tui" {
		t.Fatalf("resolved wrong renderer %q", renderer.Name())
	}

	_, err = registry.Get("preact")
	if !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "tui, vanilla") {
		t.Fatalf("expected available formats in error, got %v", err)
	}
}

func TestRegistry_RegisterIsAllOrNothing(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		batch []render.Renderer
		want  error
	}{
		"nil renderer":       {batch: []render.Renderer{stubRenderer{name: "a"}, nil}, want: render.ErrInvalidRenderer},
		"unnamed renderer":   {batch: []render.Renderer{stubRenderer{name: "a"}, stubRenderer{}}, want: render.ErrInvalidRenderer},
		"taken name":         {batch: []render.Renderer{stubRenderer{name: "a"}, stubRenderer{name: "vanilla"}}, want: render.ErrDuplicateRenderer},
		"duplicate in batch": {batch: []render.Renderer{stubRenderer{name: "a"}, stubRenderer{name: "a"}}, want: render.ErrDuplicateRenderer},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			registry := render.NewRegistry()
			registry.MustRegister(stubRenderer{name: "vanilla"})

			if err := registry.Register(tc.batch...); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if diff := cmp.Diff([]string{"vanilla"}, registry.Names()); diff != "" {
				t.Fatalf("failed batch must not register anything (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil renderer")
		}
	}()
	render.NewRegistry().MustRegister(nil)
}
