package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// config holds the settings shared by the calculator and the server.
type config struct {
	Domain  string `yaml:"domain"`
	Prec    uint   `yaml:"prec"`
	History string `yaml:"history"`
	Addr    string `yaml:"addr"`
}

func defaults() config {
	c := config{
		Domain: "real",
		Prec:   calc.DefaultPrec,
		Addr:   "localhost:8080",
	}
	if home, err := os.UserHomeDir(); err == nil {
		c.History = filepath.Join(home, ".calc_history")
	}
	return c
}

// configPath picks the config file. The second result reports whether the
// file was requested explicitly, in which case it must exist.
func configPath(flag string, getenv func(string) string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if v := getenv("CALC_CONFIG"); v != "" {
		return v, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "calc", "config.yaml"), false
}

// load overlays the YAML file at path onto c.
func (c *config) load(path string, required bool) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// env overlays settings from the environment onto c.
func (c *config) env(getenv func(string) string) error {
	if v := getenv("CALC_DOMAIN"); v != "" {
		c.Domain = v
	}
	if v := getenv("CALC_PREC"); v != "" {
		p, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("CALC_PREC: %w", err)
		}
		c.Prec = uint(p)
	}
	return nil
}
