package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the loaded configuration file.",
	Long: `Remove the configuration file clockdump loaded (see "config show").

If that file stored clockify.api_key, the command reports whether
$CLOCKIFY_API_KEY still provides a key for the next fetch.`,
	Example: `
  # Delete the active config
  clockdump config delete

  # Delete a specific file
  clockdump --configFile ./.clockdump.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			return fmt.Errorf("no configuration file loaded")
		}

		notice, err := deleteConfigFile(path, os.LookupEnv)
		if err != nil {
			return err
		}
		fmt.Printf("Config file deleted: %s\n", path)
		if notice != "" {
			fmt.Println(notice)
		}
		return nil
	},
}

// deleteConfigFile removes path and returns the credential notice for the key
// it stored. An unparsable file is still removed.
func deleteConfigFile(path string, lookupEnv func(string) (string, bool)) (string, error) {
	stored := ""
	if cfg, err := validateConfigFile(path); err == nil {
		stored = cfg.Clockify.APIKey
	}

	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("delete config file %s: %w", path, err)
	}
	return credentialNotice(stored, lookupEnv), nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
