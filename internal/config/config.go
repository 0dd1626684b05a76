// Package config defines the application settings and the loan property
// store, and includes functions for loading them.
package config

import (
	"fmt"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds the application settings for amortize.
type Settings struct {
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json, yaml
}

// flagBindings maps settings keys to the command line flags overriding them.
var flagBindings = map[string]string{
	"logging.level": "log-level",
	"output.format": "output-format",
}

// LoadSettings loads the YAML-formatted settings file at settingsPath, if
// any, with the given flags taking precedence when they were set. An empty
// settingsPath yields the defaults.
func LoadSettings(settingsPath string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetDefault("logging.level", constants.DefaultLogLevel)
	v.SetDefault("logging.format", constants.DefaultLogFormat)
	v.SetDefault("output.format", constants.OutputFormatPretty)

	if flags != nil {
		for key, name := range flagBindings {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("unable to bind flag %s, %s", name, err)
			}
		}
	}

	if settingsPath != "" {
		v.SetConfigFile(settingsPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	settings.applyDefaults()

	return &settings, nil
}

// applyDefaults fills values left empty by a flag bound with an empty default.
func (s *Settings) applyDefaults() {
	if s.Logging.Level == "" {
		s.Logging.Level = constants.DefaultLogLevel
	}
	if s.Logging.Format == "" {
		s.Logging.Format = constants.DefaultLogFormat
	}
	if s.Output.Format == "" {
		s.Output.Format = constants.OutputFormatPretty
	}
}
