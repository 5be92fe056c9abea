package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-dynform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dynform/pkg/testsupport"
)

var templates = fstest.MapFS{
	"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
	"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tpl": {Data: []byte("{{ name|shout }}")},
	"use-attr.tpl":   {Data: []byte(`<input{{ placeholder|attr:"placeholder" }}{{ missing|attr:"title" }}>`)},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if want := "Hello Ada!"; result != want || written != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q / %q", want, result, written)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "1-two" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_StructData(t *testing.T) {
	engine := newEngine(t)

	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}
	got, err := engine.RenderTemplate("hello", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Grace!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	got, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestGoTemplateEngine_AttrFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("use-attr", map[string]any{"placeholder": `say "hi"`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<input placeholder="say &quot;hi&quot;">`; got != want {
		t.Fatalf("attr filter mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templates))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
