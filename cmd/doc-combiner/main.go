// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc-combiner CLI. It merges PDFs,
// images and text files into one PDF, optionally asks a database procedure
// for a summary, and serves the same workflow as a small web page.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-combiner/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the doc-combiner CLI.
var rootCmd = &cobra.Command{
	Use:   "doc-combiner",
	Short: "Combine PDFs, images and text files into a single PDF",
	Long: `doc-combiner merges uploaded documents (PDF, PNG, JPEG, TIFF, BMP, GIF
and plain text) into one PDF in the order given. Files that cannot be read
are reported as warnings and skipped; the rest are still merged.

The combined PDF can optionally be sent to a database procedure that returns
a summary. Connection settings come from DB_HOST, DB_PORT, DB_NAME, DB_USER,
DB_PASSWORD and DB_PROC_NAME (environment or .env file).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Names())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doc-combiner.yaml or ~/.config/doc-combiner/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with DB_* settings; real environment variables take precedence")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files (db-password, db-user)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doc-combiner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doc-combiner"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if err := mergeEnvFile(viper.GetViper(), envFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	bindEnv(viper.GetViper())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
