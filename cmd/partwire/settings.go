package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/partwire/internal/export"
	"github.com/alexisbeaulieu97/partwire/internal/infrastructure/tracing"
)

const (
	defaultLogLevel = "warn"
	envPrefix       = "PARTWIRE"
)

// settings is the resolved CLI configuration. Precedence is flag, then
// PARTWIRE_* environment, then config file, then defaults.
type settings struct {
	LogLevel        string         `mapstructure:"log_level"`
	HumanReadable   bool           `mapstructure:"human_readable"`
	DuplicatePolicy string         `mapstructure:"duplicate_policy"`
	Tracing         tracing.Config `mapstructure:"tracing"`
}

func (s settings) registryConfig() (*export.RegistryConfig, error) {
	cfg := export.DefaultConfig()
	switch export.DuplicatePolicy(strings.ToLower(s.DuplicatePolicy)) {
	case "":
	case export.PolicyStrict:
		cfg.DuplicatePolicy = export.PolicyStrict
	case export.PolicyGraceful:
		cfg.DuplicatePolicy = export.PolicyGraceful
	default:
		return nil, fmt.Errorf("unknown duplicate policy %q (expected strict or graceful)", s.DuplicatePolicy)
	}
	return cfg, nil
}

func loadSettings(cmd *cobra.Command, flags *rootFlags) (settings, error) {
	v := viper.New()

	tracingDefaults := tracing.DefaultConfig()
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("human_readable", true)
	v.SetDefault("duplicate_policy", "")
	v.SetDefault("tracing.enabled", tracingDefaults.Enabled)
	v.SetDefault("tracing.exporter", tracingDefaults.Exporter)
	v.SetDefault("tracing.service_name", tracingDefaults.ServiceName)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	pflags := cmd.Root().PersistentFlags()
	_ = v.BindPFlag("log_level", pflags.Lookup("log-level"))
	_ = v.BindPFlag("duplicate_policy", pflags.Lookup("duplicate-policy"))
	_ = v.BindPFlag("tracing.enabled", pflags.Lookup("trace"))

	if flags.configFile != "" {
		v.SetConfigFile(flags.configFile)
	} else if _, err := os.Stat(".partwire.yaml"); err == nil {
		v.SetConfigFile(".partwire.yaml")
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "partwire"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, newCommandError("load settings", "reading config file", err, "Check the file passed with --config is valid YAML.")
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, newCommandError("load settings", "decoding configuration", err, "Check the types of the values in your config file.")
	}
	if flags.verbose {
		s.LogLevel = "debug"
	}
	return s, nil
}
