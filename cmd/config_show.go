package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clockdump/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.
The API key itself is never printed, only the source it would be taken from.`,
	Example: `
  # Show active configuration
  clockdump config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, using defaults.")
		}
		printConfig(os.Stdout, cfg)
	},
}

func printConfig(w io.Writer, cfg *config.Config) {
	workspace := cfg.Clockify.WorkspaceID
	if workspace == "" {
		workspace = "(active workspace of API key owner)"
	}

	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "clockify.base_url: %s\n", cfg.Clockify.BaseURL)
	fmt.Fprintf(w, "clockify.workspace_id: %s\n", workspace)
	fmt.Fprintf(w, "clockify.api_key: %s\n", apiKeyStatus(cfg.Clockify.APIKey, os.LookupEnv))
	fmt.Fprintf(w, "fetch.page_size: %d\n", cfg.Fetch.PageSize)
	fmt.Fprintf(w, "fetch.delay: %s\n", cfg.Fetch.Delay)
	fmt.Fprintf(w, "fetch.timeout: %s\n", cfg.Fetch.Timeout)
	fmt.Fprintf(w, "log.level: %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "log.pretty: %t\n", cfg.Log.Pretty)
}

func apiKeyStatus(configured string, lookupEnv func(string) (string, bool)) string {
	_, source, err := config.ResolveAPIKey(
		config.EnvSource(config.EnvAPIKey, lookupEnv),
		config.ValueSource("config file", configured),
	)
	if err != nil {
		return "not set"
	}
	return "set (from " + source + ")"
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
