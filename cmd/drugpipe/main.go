// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the drugpipe CLI. It orchestrates
// four inference backends (alignment search, structure prediction,
// molecule generation, docking) into a linear drug-discovery pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintelligence/drugpipe/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the drugpipe CLI.
var rootCmd = &cobra.Command{
	Use:   "drugpipe",
	Short: "Orchestrate inference backends into a drug-discovery pipeline",
	Long: `drugpipe chains four inference microservices into a linear virtual-screening
pipeline: sequence-alignment search, protein structure prediction, molecule
generation, and protein-ligand docking. Each backend is an opaque HTTP
service; drugpipe sequences the calls and threads each response into the
next request.

Each stage is a subcommand (align, fold, generate, dock) and run executes
the whole pipeline end to end. status probes the backends' health endpoints.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./drugpipe.yaml or ~/.config/drugpipe/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("drugpipe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "drugpipe"))
		}
	}

	viper.SetEnvPrefix("DRUGPIPE")
	viper.AutomaticEnv()

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
