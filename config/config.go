package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const DefaultFile = "reqgen.yaml"

// Config is read from reqgen.yaml, command line flags take precedence.
type Config struct {
	Input     string  `yaml:"input"`
	OutputDir string  `yaml:"output"`
	Package   string  `yaml:"package,omitempty"`
	Format    bool    `yaml:"format"`
	Model     string  `yaml:"model,omitempty"`
	Preview   Preview `yaml:"preview"`
}

type Preview struct {
	Addr           string   `yaml:"addr"`
	BaseUrl        string   `yaml:"baseUrl"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
	Debounce       string   `yaml:"debounce"`
}

func Default() Config {
	return Config{
		Input:     "api.yaml",
		OutputDir: "client",
		Format:    true,
		Preview: Preview{
			Addr:           ":8080",
			BaseUrl:        "/",
			AllowedOrigins: []string{"*"},
			Debounce:       "100ms",
		},
	}
}

// Load reads filename on top of Default. A missing file is not an error.
func Load(filename string) (Config, error) {
	cfg := Default()

	if filename == "" {
		return cfg, nil
	}

	bytes, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config %v: %w", filename, err)
	}

	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to parse config %v: %w", filename, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input file is required")
	}
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if _, err := c.Preview.DebounceTime(); err != nil {
		return err
	}
	return nil
}

func (p Preview) DebounceTime() (time.Duration, error) {
	if p.Debounce == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(p.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid preview debounce %q: %w", p.Debounce, err)
	}
	return d, nil
}
