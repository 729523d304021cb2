// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/doc-combiner/internal/secrets"
	"github.com/pdiddy/doc-combiner/pkg/types"
)

// envKeys maps config keys to the environment variables that set them.
var envKeys = map[string]string{
	"db_driver":    "DB_DRIVER",
	"db_host":      "DB_HOST",
	"db_port":      "DB_PORT",
	"db_name":      "DB_NAME",
	"db_user":      "DB_USER",
	"db_password":  "DB_PASSWORD",
	"db_proc_name": "DB_PROC_NAME",
	"db_sslmode":   "DB_SSLMODE",
	"db_timeout":   "DB_TIMEOUT",
	"listen_addr":  "LISTEN_ADDR",
}

// bindEnv binds each config key to its environment variable and sets the
// documented defaults.
func bindEnv(v *viper.Viper) {
	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}
	v.SetDefault("db_driver", types.DefaultDBDriver)
	v.SetDefault("db_port", types.DefaultDBPort)
	v.SetDefault("db_proc_name", types.DefaultProcedure)
	v.SetDefault("db_sslmode", types.DefaultSSLMode)
	v.SetDefault("db_timeout", types.DefaultDBTimeout)
	v.SetDefault("listen_addr", types.DefaultListenAddr)
}

// mergeEnvFile reads a dotenv file into v as config values. Config values
// sit below bound environment variables, so the real environment wins. A
// missing file is not an error.
func mergeEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	settings := make(map[string]any)
	// dotenv keys are case-insensitive in viper, so DB_HOST reads as db_host.
	for key := range envKeys {
		if env.IsSet(key) {
			settings[key] = env.Get(key)
		}
	}
	return v.MergeConfigMap(settings)
}

// summaryConfig assembles the summary database settings from v, falling
// back to .secrets/ for the user and password.
func summaryConfig(v *viper.Viper, s secrets.Secrets) types.SummaryConfig {
	return types.SummaryConfig{
		Driver:    v.GetString("db_driver"),
		Host:      v.GetString("db_host"),
		Port:      v.GetString("db_port"),
		Name:      v.GetString("db_name"),
		User:      s.Get(secrets.DBUser, v.GetString("db_user")),
		Password:  s.Get(secrets.DBPassword, v.GetString("db_password")),
		Procedure: v.GetString("db_proc_name"),
		SSLMode:   v.GetString("db_sslmode"),
		Timeout:   v.GetDuration("db_timeout"),
	}
}
