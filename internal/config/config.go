// Package config defines the tool's configuration and how it is loaded.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and environment on top.
// - Command-line flags override loaded values in cmd/.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/okian/qperformance/internal/adapters/eventlog"
	"github.com/okian/qperformance/internal/adapters/filesystem"
	"github.com/okian/qperformance/internal/domain/answerkey"
	"github.com/okian/qperformance/internal/domain/grid"
	"github.com/okian/qperformance/internal/domain/model"
	"github.com/okian/qperformance/internal/domain/tally"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "text" or "json" diagnostics.
	LogFormat string `koanf:"log_format"`

	// QuestionTypes lists the recognised type codes in column order. The
	// first code is the fallback column for unknown types.
	QuestionTypes string `koanf:"question_types"`

	// GeneralType is the default/general category code.
	GeneralType string `koanf:"general_type"`

	// GeneralPosition is the 1-indexed question forced to GeneralType.
	// Zero disables the override.
	GeneralPosition int `koanf:"general_position"`

	// PageSize is the number of questions per re-paginated round.
	PageSize int `koanf:"page_size"`

	// DocumentExt is the answer-key file extension.
	DocumentExt string `koanf:"document_ext"`

	// TabMarker separates answer-key cells.
	TabMarker string `koanf:"tab_marker"`

	// Delimiter separates event log fields.
	Delimiter string `koanf:"delimiter"`

	// EventCodes are the literal event column values.
	EventCodes model.EventCodes `koanf:"event_codes"`

	// Columns locates each field in an event log row.
	Columns model.Layout `koanf:"columns"`

	// MetricsTextfile, when set, receives run metrics in Prometheus text
	// format after each run.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "warn",
		LogFormat:       "text",
		QuestionTypes:   model.DefaultTypeCodes,
		GeneralType:     string(model.DefaultGeneralType),
		GeneralPosition: tally.DefaultGeneralPosition,
		PageSize:        grid.DefaultPageSize,
		DocumentExt:     filesystem.DefaultExtension,
		TabMarker:       answerkey.DefaultTabMarker,
		Delimiter:       eventlog.DefaultDelimiter,
		EventCodes:      model.DefaultEventCodes(),
		Columns:         model.DefaultLayout(),
	}
}

// TypeSet builds the immutable question type table described by c.
func (c *Config) TypeSet() (model.TypeSet, error) {
	if utf8.RuneCountInString(c.GeneralType) != 1 {
		return model.TypeSet{}, fmt.Errorf("%w: general_type must be a single character, got %q", ErrInvalidConfig, c.GeneralType)
	}
	general, _ := utf8.DecodeRuneInString(c.GeneralType)
	set, err := model.NewTypeSet(c.QuestionTypes, general)
	if err != nil {
		return model.TypeSet{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return set, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := c.TypeSet(); err != nil {
		return err
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	}
	if c.TabMarker == "" {
		return fmt.Errorf("%w: tab_marker must not be empty", ErrInvalidConfig)
	}
	for _, code := range c.EventCodes.List() {
		if code == "" {
			return fmt.Errorf("%w: event codes must not be empty", ErrInvalidConfig)
		}
	}
	cols := c.Columns
	for _, col := range []struct {
		name string
		v    int
	}{
		{"tournament", cols.Tournament}, {"round", cols.Round}, {"question", cols.Question},
		{"quizzer", cols.Quizzer}, {"team", cols.Team}, {"event", cols.Event},
	} {
		if col.v < 0 {
			return fmt.Errorf("%w: columns.%s must not be negative", ErrInvalidConfig, col.name)
		}
	}
	return nil
}
