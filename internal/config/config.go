// Package config reads the user settings file, ~/.flowdraw.yaml.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"flowdraw/internal/shape"
)

// FileName is the settings file looked up in the home directory.
const FileName = ".flowdraw.yaml"

type Config struct {
	SaveDirectory string  `yaml:"save_directory"`
	StartMenu     bool    `yaml:"start_menu"`
	Confirmations bool    `yaml:"confirmations"`
	CellWidth     float64 `yaml:"cell_width"`
	CellHeight    float64 `yaml:"cell_height"`
	HistoryLimit  int     `yaml:"history_limit"`
	PNGScale      float64 `yaml:"png_scale"`
	LogFile       string  `yaml:"log_file"`
	DefaultFill   string  `yaml:"default_fill"`
	DefaultStroke string  `yaml:"default_stroke"`

	fill, stroke color.NRGBA
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		StartMenu:     true,
		Confirmations: true,
		CellWidth:     10,
		CellHeight:    20,
		HistoryLimit:  200,
		PNGScale:      1,
		DefaultFill:   shape.FormatColor(shape.White),
		DefaultStroke: shape.FormatColor(shape.Black),
		fill:          shape.White,
		stroke:        shape.Black,
	}
}

// Load reads settings from the default location. A missing or unreadable
// file yields the defaults; the error says why the file was not used.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), err
	}
	cfg, err := LoadFile(filepath.Join(home, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads settings from path. On error the defaults are returned
// alongside it.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads settings from r. Keys left out keep their defaults.
func Parse(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Default(), err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	var err error
	if c.fill, err = shape.ParseColor(c.DefaultFill); err != nil {
		return fmt.Errorf("default_fill: %w", err)
	}
	if c.stroke, err = shape.ParseColor(c.DefaultStroke); err != nil {
		return fmt.Errorf("default_stroke: %w", err)
	}
	if !(c.CellWidth > 0) || !(c.CellHeight > 0) {
		return fmt.Errorf("cell size must be positive, got %gx%g", c.CellWidth, c.CellHeight)
	}
	if !(c.PNGScale > 0) {
		return fmt.Errorf("png_scale must be positive, got %g", c.PNGScale)
	}
	c.SaveDirectory = expandPath(c.SaveDirectory)
	c.LogFile = expandPath(c.LogFile)
	return nil
}

func expandPath(p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

// Fill is the parsed default fill colour.
func (c *Config) Fill() color.NRGBA { return c.fill }

// Stroke is the parsed default stroke colour.
func (c *Config) Stroke() color.NRGBA { return c.stroke }

// GetSavePath places filename in the save directory, creating it if
// needed. Absolute names and an unset directory leave filename as is.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
