package main

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	envPrefix = "BTS"

	keyLogLevel  = "log.level"
	keyReadAs    = "read.as"
	keyReadRaw   = "read.raw"
	keyReadLimit = "read.limit"
)

// defaultConfigPath returns ~/.config/bts/config.yaml, or "" if the home
// directory cannot be determined.
func defaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "bts", "config.yaml")
}

// expandPath resolves a leading ~ in path.
func expandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// loadConfig reads the YAML config file at path, if any, over the built-in
// defaults. BTS_* environment variables override both, for example
// BTS_READ_AS=FLOAT.
//
// A missing file is only an error when explicit is true.
func loadConfig(path string, explicit bool) (*viper.Viper, error) {
	cfg := viper.New()
	cfg.SetDefault(keyLogLevel, "warn")
	cfg.SetDefault(keyReadAs, "DOUBLE")
	cfg.SetDefault(keyReadRaw, false)
	cfg.SetDefault(keyReadLimit, 0)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(keyReplacer)
	cfg.AutomaticEnv()

	if path == "" {
		return cfg, nil
	}

	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	cfg.SetConfigFile(expanded)
	cfg.SetConfigType("yaml")

	if err := cfg.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return nil, err
	}

	return cfg, nil
}
