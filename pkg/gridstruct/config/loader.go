package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".gridstruct"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for gridstruct settings.
const envPrefix = "GRIDSTRUCT"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows; the optional
	// booleans have no default, so bind them explicitly.
	for _, key := range []string{"extract.include_cells", "extract.include_print_areas"} {
		_ = viperCfg.BindEnv(key)
	}

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("detection.max_depth", DefaultMaxDepth)
	viperCfg.SetDefault("detection.min_confidence", 0.0)
	viperCfg.SetDefault("detection.connectivity", DefaultConnectivity)
	viperCfg.SetDefault("detection.indent_width", 0)

	viperCfg.SetDefault("extract.mode", DefaultMode)
	viperCfg.SetDefault("extract.workers", 0)

	viperCfg.SetDefault("output.format", DefaultFormat)
	viperCfg.SetDefault("output.pretty", false)

	viperCfg.SetDefault("log.level", DefaultLogLevel)
}
