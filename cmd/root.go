/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clockdump/config"
	"clockdump/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logPretty bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clockdump",
	Short: "Fetch Clockify time entries and export them as normalized JSON, CSV, Excel or SQLite.",
	Long: `
**********************************************
*              CLOCKDUMP                     *
**********************************************

This CLI runs two independent batch jobs:
- fetch: download projects, tasks and time entries from the Clockify API
  into JSON (or YAML) files, pacing requests to stay under the rate limit
- preprocess: join time entries with project and task names and write
  normalized rows as JSON, plus optional CSV, Excel or SQLite tables

The API key is read from --api-key, then $CLOCKIFY_API_KEY (a .env file in the
working directory is honored), then clockify.api_key in the config file.
`,
	Example: `
  # Fetch the 58 most recent pages of time entries
  clockdump fetch --pages 58

  # Fetch enough pages for at least 2853 entries, pausing 500ms between calls
  clockdump fetch --entries 2853 --delay 500ms

  # Normalize the fetched files and also write a CSV table
  clockdump preprocess --table

  # Normalize into YAML and write an Excel table
  clockdump preprocess --output ./normalized.yaml --table --table-output ./normalized.xlsx
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(logging.Config{
			Level:  logging.ParseLevel(viper.GetString(config.KeyLogLevel)),
			Pretty: viper.GetBool(config.KeyLogPretty),
		})
		if used := viper.ConfigFileUsed(); used != "" {
			logging.Debug().Str("file", used).Msg("config loaded")
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.clockdump.yaml, then ./.clockdump.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "Human-readable log output instead of JSON lines")

	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogPretty, rootCmd.PersistentFlags().Lookup("log-pretty"))
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring unreadable .env file:", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".clockdump" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".clockdump")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// The config file is optional; defaults and flags cover every setting.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Config file could not be read:", err)
		}
	}
}
