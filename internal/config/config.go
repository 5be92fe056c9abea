// Package config loads the dynform CLI configuration from defaults, an
// optional YAML file and DYNFORM_ environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/render"
)

// EnvPrefix is stripped from environment variables; DYNFORM_SERVER_ADDR maps
// to server.addr.
const EnvPrefix = "DYNFORM_"

type Config struct {
	Log    LogConfig    `koanf:"log"`
	Server ServerConfig `koanf:"server"`
	Output OutputConfig `koanf:"output"`
	Render RenderConfig `koanf:"render"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

type ServerConfig struct {
	Addr   string `koanf:"addr"`
	Prefix string `koanf:"prefix"`
	// Redirect is where browsers go after a successful submission. Empty
	// re-renders the form.
	Redirect string `koanf:"redirect"`
}

type OutputConfig struct {
	Format string `koanf:"format"` // json, form, pretty
}

type RenderConfig struct {
	Renderer     string `koanf:"renderer"`
	Locale       string `koanf:"locale"`
	Templates    string `koanf:"templates"`
	Translations string `koanf:"translations"`
}

var defaults = map[string]any{
	"log.level":       "info",
	"log.development": false,
	"server.addr":     ":8080",
	"server.prefix":   "/forms",
	"output.format":   "json",
	"render.renderer": "vanilla",
}

// Load reads the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("config: default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// LoadCatalog reads a translation file shaped as locale -> source text ->
// message. Source texts may contain dots, so the file bypasses koanf's key
// splitting.
func LoadCatalog(path string) (render.Catalog, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read translations: %w", err)
	}
	var catalog render.Catalog
	if err := yamlv3.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("config: parse translations %s: %w", path, err)
	}
	return catalog, nil
}
