// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gradepack CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the gradepack CLI.
var rootCmd = &cobra.Command{
	Use:   "gradepack",
	Short: "Assemble exam grading packets from student responses and mark schemes",
	Long: `gradepack combines student answer pages with the matching mark-scheme
pages into per-question landscape PDF bundles. A page-mapping table ties
question identifiers to page ranges in the question paper and mark
scheme; every student response is sliced accordingly and laid out beside
the grading criteria, one composed page per answer page.

Each stage is a subcommand: inspect previews discovery and the parsed
mapping, collate runs the full pipeline, and runs lists past batches.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gradepack.yaml or ~/.config/gradepack/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gradepack")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gradepack"))
		}
	}

	viper.SetEnvPrefix("GRADEPACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
