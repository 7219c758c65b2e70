package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/saleboard/saleboard/internal/derive"
	"github.com/saleboard/saleboard/internal/importer"
	"github.com/saleboard/saleboard/internal/logger"
)

// FileName is the default config file name.
const FileName = "saleboard.yaml"

// Config represents the top-level saleboard.yaml configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Fiscal     FiscalConfig     `yaml:"fiscal"`
	Derive     DeriveConfig     `yaml:"derive"`
	Processing ProcessingConfig `yaml:"processing"`
	Log        LogConfig        `yaml:"log"`
}

// SourceConfig describes the input sheet.
type SourceConfig struct {
	Sheet       string   `yaml:"sheet"`
	DateLayouts []string `yaml:"date_layouts,omitempty"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "03-01"
}

// DeriveConfig controls how derived fields are computed and rendered.
type DeriveConfig struct {
	BlankNumbers string `yaml:"blank_numbers"` // zero or reject
	MonthFormat  string `yaml:"month_format"`  // number, name or padded
}

// ProcessingConfig controls the row pipeline.
type ProcessingConfig struct {
	Workers  int  `yaml:"workers"` // 0 means one per CPU
	FailFast bool `yaml:"fail_fast"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads a saleboard.yaml file from disk. Keys absent from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Sheet: importer.DefaultSheet,
		},
		Fiscal: FiscalConfig{
			YearStart: "03-01",
		},
		Derive: DeriveConfig{
			BlankNumbers: string(derive.BlankZero),
			MonthFormat:  string(derive.MonthNumber),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Source.Sheet == "" {
		return errors.New("source.sheet is empty")
	}
	if _, err := c.FiscalStart(); err != nil {
		return err
	}
	if _, err := derive.ParseBlankPolicy(c.Derive.BlankNumbers); err != nil {
		return fmt.Errorf("derive.blank_numbers: %w", err)
	}
	if _, err := derive.ParseMonthFormat(c.Derive.MonthFormat); err != nil {
		return fmt.Errorf("derive.month_format: %w", err)
	}
	if c.Processing.Workers < 0 {
		return fmt.Errorf("processing.workers must not be negative, got %d", c.Processing.Workers)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// FiscalStart parses fiscal.year_start. Fiscal years begin on the first
// of a month.
func (c *Config) FiscalStart() (time.Month, error) {
	t, err := time.Parse("01-02", c.Fiscal.YearStart)
	if err != nil {
		return 0, fmt.Errorf("fiscal.year_start %q: want MM-DD", c.Fiscal.YearStart)
	}
	if t.Day() != 1 {
		return 0, fmt.Errorf("fiscal.year_start %q: must be the first day of a month", c.Fiscal.YearStart)
	}
	return t.Month(), nil
}

// Calculator builds the field calculator for this config.
func (c *Config) Calculator() (derive.Calculator, error) {
	start, err := c.FiscalStart()
	if err != nil {
		return derive.Calculator{}, err
	}
	blank, err := derive.ParseBlankPolicy(c.Derive.BlankNumbers)
	if err != nil {
		return derive.Calculator{}, err
	}
	return derive.Calculator{
		Blank:       blank,
		FiscalStart: start,
		DateLayouts: c.dateLayouts(),
	}, nil
}

// MonthFormat returns the configured month rendering.
func (c *Config) MonthFormat() derive.MonthFormat {
	mf, err := derive.ParseMonthFormat(c.Derive.MonthFormat)
	if err != nil {
		return derive.MonthNumber
	}
	return mf
}

// Registry returns the sheet readers for this config.
func (c *Config) Registry() *importer.Registry {
	return importer.DefaultRegistry(c.Source.Sheet, c.dateLayouts())
}

func (c *Config) dateLayouts() []string {
	if len(c.Source.DateLayouts) == 0 {
		return derive.DefaultDateLayouts
	}
	return c.Source.DateLayouts
}
