// Package config loads pattern tables and analysis thresholds from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/seglens/pkg/seglens/patterns"
)

// PatternEntry is one label with its match phrases. YAML uses a list rather
// than a map so declaration order survives parsing.
type PatternEntry struct {
	Label   string   `yaml:"label"`
	Phrases []string `yaml:"phrases"`
}

// Thresholds holds the tunable constants of the analytics stages. Override
// them deliberately; the defaults are part of the output contract.
type Thresholds struct {
	OverIndex      float64 `yaml:"over_index"`
	UnderIndex     float64 `yaml:"under_index"`
	QuoteMinLength int     `yaml:"quote_min_length"`
	QuoteMaxLength int     `yaml:"quote_max_length"`
	QuoteLimit     int     `yaml:"quote_limit"`
	TopPatterns    int     `yaml:"top_patterns"`
	JourneyLimit   int     `yaml:"journey_limit"`
}

// DefaultThresholds returns the shipped constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OverIndex:      1.2,
		UnderIndex:     0.8,
		QuoteMinLength: 50,
		QuoteMaxLength: 300,
		QuoteLimit:     3,
		TopPatterns:    5,
		JourneyLimit:   5,
	}
}

// File is the on-disk configuration shape.
type File struct {
	IdentitySegments   []PatternEntry `yaml:"identity_segments"`
	MotivationSegments []PatternEntry `yaml:"motivation_segments"`
	PainPoints         []PatternEntry `yaml:"pain_points"`
	Benefits           []PatternEntry `yaml:"benefits"`
	Transformations    []PatternEntry `yaml:"transformations"`
	Thresholds         *Thresholds    `yaml:"thresholds"`
}

// Components holds everything the pipeline needs from configuration.
type Components struct {
	Tables     *patterns.Tables
	Thresholds Thresholds
}

// Load reads a YAML config file and returns initialized components. An empty
// path yields the compiled-in defaults. Sets omitted from the file fall back
// to their defaults individually.
func Load(path string) (*Components, error) {
	comp := &Components{
		Tables:     patterns.Defaults(),
		Thresholds: DefaultThresholds(),
	}
	if path == "" {
		return comp, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	defaults := comp.Tables
	tables, err := patterns.NewTables(
		setOrDefault("identity_segments", file.IdentitySegments, defaults.Identity),
		setOrDefault("motivation_segments", file.MotivationSegments, defaults.Motivation),
		setOrDefault("pain_points", file.PainPoints, defaults.Pains),
		setOrDefault("benefits", file.Benefits, defaults.Benefits),
		setOrDefault("transformations", file.Transformations, defaults.Transformations),
	)
	if err != nil {
		return nil, fmt.Errorf("build pattern tables: %w", err)
	}
	comp.Tables = tables

	if file.Thresholds != nil {
		comp.Thresholds = mergeThresholds(comp.Thresholds, *file.Thresholds)
	}
	return comp, nil
}

func setOrDefault(name string, entries []PatternEntry, fallback *patterns.Set) *patterns.Set {
	if len(entries) == 0 {
		return fallback
	}
	pats := make([]patterns.Pattern, len(entries))
	for i, e := range entries {
		pats[i] = patterns.Pattern{Label: e.Label, Phrases: e.Phrases}
	}
	return patterns.NewSet(name, pats)
}

// mergeThresholds overlays non-zero file values onto the defaults, so a file
// can override one constant without restating the rest.
func mergeThresholds(base, file Thresholds) Thresholds {
	if file.OverIndex > 0 {
		base.OverIndex = file.OverIndex
	}
	if file.UnderIndex > 0 {
		base.UnderIndex = file.UnderIndex
	}
	if file.QuoteMinLength > 0 {
		base.QuoteMinLength = file.QuoteMinLength
	}
	if file.QuoteMaxLength > 0 {
		base.QuoteMaxLength = file.QuoteMaxLength
	}
	if file.QuoteLimit > 0 {
		base.QuoteLimit = file.QuoteLimit
	}
	if file.TopPatterns > 0 {
		base.TopPatterns = file.TopPatterns
	}
	if file.JourneyLimit > 0 {
		base.JourneyLimit = file.JourneyLimit
	}
	return base
}
