// Copyright 2019 - 2025 The Samply Community
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/samply/cqlfsh/config"
	"github.com/samply/cqlfsh/data"
	"github.com/samply/cqlfsh/logging"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

var cfg = config.Default()
var configFile string
var noProgress bool

var logger = zerolog.Nop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cqlfsh",
	Short: "Generate FHIR Shorthand from CQL indicator libraries",
	Long: `cqlfsh is a command line tool which turns the CQL libraries of WHO SMART
guidelines indicators into FHIR Shorthand (FSH) Library and Measure instances.

Indicator metadata like titles and population descriptions are taken from the
indicator definitions of the DAK, exported as YAML, CSV or Parquet.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := mergeConfigFile(cmd); err != nil {
			return err
		}
		if err := cfg.ValidateLogFormat(); err != nil {
			return err
		}
		logger = logging.Setup(cfg.LogFormat, cmd.ErrOrStderr())
		return nil
	},
}

// mergeConfigFile applies the values of the config file to all settings whose
// flags weren't given explicitly.
func mergeConfigFile(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	fromFile := config.Default()
	if err := fromFile.LoadFromFile(configFile); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("metadata") {
		cfg.Metadata = fromFile.Metadata
	}
	if !flags.Changed("output") {
		cfg.Output = fromFile.Output
	}
	if !flags.Changed("log-format") {
		cfg.LogFormat = fromFile.LogFormat
	}
	if !flags.Changed("force") {
		cfg.Force = fromFile.Force
	}
	if !flags.Changed("server") {
		cfg.Server = fromFile.Server
	}
	return nil
}

// loadIndicators loads the indicator metadata file if one is configured.
func loadIndicators(ctx context.Context, fs afs.Service) (data.Indicators, error) {
	if cfg.Metadata == "" {
		return nil, nil
	}
	return data.LoadIndicators(ctx, fs, location(cfg.Metadata))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML file with default settings")
	rootCmd.PersistentFlags().StringVarP(&cfg.Metadata, "metadata", "m", cfg.Metadata, "indicator definitions as .yaml, .csv or .parquet file or URL")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&noProgress, "no-progress", "", false, "don't show progress bar")
}
