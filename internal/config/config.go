package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/subcleanser/internal/cleanse"
	"github.com/nguyentantai21042004/subcleanser/internal/codec"
	"github.com/nguyentantai21042004/subcleanser/internal/timing"
)

type Config struct {
	Cleanse     CleanseConfig     `yaml:"cleanse"`
	Timing      TimingConfig      `yaml:"timing"`
	Style       StyleConfig       `yaml:"style"`
	Output      OutputConfig      `yaml:"output"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type CleanseConfig struct {
	StripInvalidChars  *bool `yaml:"strip_invalid_chars"`
	RemoveDuplicates   *bool `yaml:"remove_duplicates"`
	CorrectGrammar     bool  `yaml:"correct_grammar"`
	EnforceTwoLineWrap *bool `yaml:"enforce_two_line_wrap"`
	WrapWidth          int   `yaml:"wrap_width"`
}

type TimingConfig struct {
	GapMS         int64 `yaml:"gap_ms"`
	MinDurationMS int64 `yaml:"min_duration_ms"`
}

type StyleConfig struct {
	FontName        string `yaml:"font_name"`
	FontSize        int    `yaml:"font_size"`
	PrimaryColor    string `yaml:"primary_color"`
	OutlineColor    string `yaml:"outline_color"`
	BackgroundColor string `yaml:"background_color"`
	Bold            bool   `yaml:"bold"`
	Italic          bool   `yaml:"italic"`
	OutlineWidth    *int   `yaml:"outline_width"`
	ShadowDepth     *int   `yaml:"shadow_depth"`
	PositionTags    bool   `yaml:"position_tags"`
	PlayResX        int    `yaml:"play_res_x"`
	PlayResY        int    `yaml:"play_res_y"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates a YAML configuration file. Unknown keys are
// rejected so typos surface at startup instead of silently falling back
// to defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration and fills defaults for everything
// left unset.
func (c *Config) Validate() error {
	if c.Output.Format == "" {
		c.Output.Format = "vtt"
	}
	if _, err := codec.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	if c.Cleanse.WrapWidth == 0 {
		c.Cleanse.WrapWidth = cleanse.DefaultWrapWidth
	}
	if c.Cleanse.WrapWidth < 0 {
		return fmt.Errorf("cleanse.wrap_width must be positive")
	}

	if c.Timing.GapMS == 0 {
		c.Timing.GapMS = 1
	}
	if c.Timing.MinDurationMS == 0 {
		c.Timing.MinDurationMS = 700
	}
	if c.Timing.GapMS < 0 || c.Timing.MinDurationMS < 0 {
		return fmt.Errorf("timing values must not be negative")
	}

	def := codec.DefaultStyle()
	if c.Style.FontName == "" {
		c.Style.FontName = def.FontName
	}
	if c.Style.FontSize == 0 {
		c.Style.FontSize = def.FontSize
	}
	if c.Style.PrimaryColor == "" {
		c.Style.PrimaryColor = def.PrimaryColor
	}
	if c.Style.OutlineColor == "" {
		c.Style.OutlineColor = def.OutlineColor
	}
	if c.Style.BackgroundColor == "" {
		c.Style.BackgroundColor = def.BackgroundColor
	}
	if c.Style.PlayResX == 0 {
		c.Style.PlayResX = def.PlayResX
	}
	if c.Style.PlayResY == 0 {
		c.Style.PlayResY = def.PlayResY
	}
	if err := c.StyleConfig().Validate(); err != nil {
		return fmt.Errorf("style: %w", err)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

// CleanseOptions maps the config onto the cleansing stage's options.
// Boolean steps default to enabled except grammar correction, which the
// caller opts into.
func (c *Config) CleanseOptions() cleanse.Options {
	return cleanse.Options{
		StripInvalidChars:  boolOr(c.Cleanse.StripInvalidChars, true),
		RemoveDuplicates:   boolOr(c.Cleanse.RemoveDuplicates, true),
		CorrectGrammar:     c.Cleanse.CorrectGrammar,
		EnforceTwoLineWrap: boolOr(c.Cleanse.EnforceTwoLineWrap, true),
		WrapWidth:          c.Cleanse.WrapWidth,
	}
}

// TimingOptions maps the config onto the timing reconciler's options.
func (c *Config) TimingOptions() timing.Options {
	return timing.Options{
		GapMS:         c.Timing.GapMS,
		MinDurationMS: c.Timing.MinDurationMS,
	}
}

// StyleConfig maps the config onto the serializer's style settings.
func (c *Config) StyleConfig() codec.StyleConfig {
	def := codec.DefaultStyle()
	return codec.StyleConfig{
		FontName:        c.Style.FontName,
		FontSize:        c.Style.FontSize,
		PrimaryColor:    c.Style.PrimaryColor,
		OutlineColor:    c.Style.OutlineColor,
		BackgroundColor: c.Style.BackgroundColor,
		Bold:            c.Style.Bold,
		Italic:          c.Style.Italic,
		OutlineWidth:    intOr(c.Style.OutlineWidth, def.OutlineWidth),
		ShadowDepth:     intOr(c.Style.ShadowDepth, def.ShadowDepth),
		PositionTags:    c.Style.PositionTags,
		PlayResX:        c.Style.PlayResX,
		PlayResY:        c.Style.PlayResY,
	}
}

// OutputFormat returns the configured output format. Only valid after
// Validate.
func (c *Config) OutputFormat() codec.Format {
	f, _ := codec.ParseFormat(c.Output.Format)
	return f
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
