// Package config loads gridstruct settings from a YAML file, environment
// variables and defaults.
package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/detect"
)

// Config holds all gridstruct settings.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Detection DetectionConfig `mapstructure:"detection"`
	Extract   ExtractConfig   `mapstructure:"extract"`
	Output    OutputConfig    `mapstructure:"output"`
	Log       LogConfig       `mapstructure:"log"`
}

// DetectionConfig holds construct detection settings.
type DetectionConfig struct {
	MaxDepth      int     `mapstructure:"max_depth"`
	MinConfidence float64 `mapstructure:"min_confidence"`
	Connectivity  string  `mapstructure:"connectivity"`
	IndentWidth   int     `mapstructure:"indent_width"`
}

// ExtractConfig holds workbook extraction settings.
type ExtractConfig struct {
	Mode              string `mapstructure:"mode"`
	Workers           int    `mapstructure:"workers"`
	IncludeCells      *bool  `mapstructure:"include_cells"`
	IncludePrintAreas *bool  `mapstructure:"include_print_areas"`
}

// OutputConfig holds serialization settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Pretty bool   `mapstructure:"pretty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default values.
const (
	DefaultMaxDepth     = detect.DefaultMaxDepth
	DefaultConnectivity = "four"
	DefaultMode         = string(gridstruct.ModeStandard)
	DefaultFormat       = "json"
	DefaultLogLevel     = "warn"
)

// Validation errors.
var (
	ErrInvalidMaxDepth      = errors.New("detection.max_depth must be non-negative")
	ErrInvalidMinConfidence = errors.New("detection.min_confidence must be between 0 and 1")
	ErrInvalidConnectivity  = errors.New("detection.connectivity must be four or eight")
	ErrInvalidIndentWidth   = errors.New("detection.indent_width must be non-negative")
	ErrInvalidMode          = errors.New("extract.mode must be light, standard or verbose")
	ErrInvalidWorkers       = errors.New("extract.workers must be non-negative")
	ErrInvalidFormat        = errors.New("output.format must be json, yaml or text")
	ErrInvalidLogLevel      = errors.New("log.level must be debug, info, warn or error")
)

// Validate checks that all settings are in range.
func (c *Config) Validate() error {
	detectionErr := c.validateDetection()
	if detectionErr != nil {
		return detectionErr
	}

	if !gridstruct.Mode(c.Extract.Mode).Valid() {
		return ErrInvalidMode
	}

	if c.Extract.Workers < 0 {
		return ErrInvalidWorkers
	}

	switch c.Output.Format {
	case "json", "yaml", "text":
	default:
		return ErrInvalidFormat
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	if c.Detection.MinConfidence < 0 || c.Detection.MinConfidence > 1 {
		return ErrInvalidMinConfidence
	}

	if _, err := cluster.ParseConnectivity(c.Detection.Connectivity); err != nil {
		return ErrInvalidConnectivity
	}

	if c.Detection.IndentWidth < 0 {
		return ErrInvalidIndentWidth
	}

	return nil
}

// Options converts the settings to extraction options. The config is
// expected to be valid.
func (c *Config) Options(logger *slog.Logger) gridstruct.Options {
	conn, _ := cluster.ParseConnectivity(c.Detection.Connectivity)

	return gridstruct.Options{
		Mode:              gridstruct.Mode(c.Extract.Mode),
		IncludeCells:      c.Extract.IncludeCells,
		IncludePrintAreas: c.Extract.IncludePrintAreas,
		Detection: detect.Params{
			MaxDepth:      c.Detection.MaxDepth,
			MinConfidence: c.Detection.MinConfidence,
			Connectivity:  conn,
			IndentWidth:   c.Detection.IndentWidth,
		},
		Workers: c.Extract.Workers,
		Logger:  logger,
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, ErrInvalidLogLevel
}
