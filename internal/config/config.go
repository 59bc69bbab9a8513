// Package config loads runtime settings for the processor and demo
// CLIs via spf13/viper, matching the config.yaml/env convention
// common to the rest of the retrieved corpus (see DESIGN.md).
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the processor and demo commands need.
type Config struct {
	NATSURL         string `mapstructure:"nats_url"`
	SnapshotSubject string `mapstructure:"snapshot_subject"`
	TicksSubject    string `mapstructure:"ticks_subject"`
	Workers         int    `mapstructure:"workers"`
	LogLevel        string `mapstructure:"log_level"`
}

// defaults mirrors the original's NATS_URL env-var fallback
// (original_source/examples/nats_processor.cpp), extended with the
// rest of the processor's tunables.
func defaults() Config {
	return Config{
		NATSURL:         "nats://localhost:4222",
		SnapshotSubject: "orderbook.snapshots",
		TicksSubject:    "orderbook.tbt",
		Workers:         10,
		LogLevel:        "info",
	}
}

// Load reads configuration from an optional file (searched in the
// current directory and /etc/seeklob), environment variables prefixed
// SEEKLOB_, and falls back to defaults for anything unset. The bare
// NATS_URL env var (no prefix) is also honoured for nats_url, matching
// the original CLI; SEEKLOB_NATS_URL and a config file both take
// precedence over it.
func Load(configFile string) (Config, error) {
	cfg := defaults()

	// The original's nats_processor.cpp falls back to the bare NATS_URL
	// env var with no prefix (original_source/examples/nats_processor.cpp);
	// honour that here as the pre-viper default so it still applies even
	// when no seeklob.yaml or SEEKLOB_-prefixed override is present.
	if url := os.Getenv("NATS_URL"); url != "" {
		cfg.NATSURL = url
	}

	v := viper.New()
	v.SetConfigName("seeklob")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/seeklob")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix("seeklob")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("nats_url", cfg.NATSURL)
	v.SetDefault("snapshot_subject", cfg.SnapshotSubject)
	v.SetDefault("ticks_subject", cfg.TicksSubject)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("log_level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
