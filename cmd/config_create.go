package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write the example configuration file.",
	Long: `Write the commented example configuration (the same template "config edit"
starts from) to the --configFile path, the loaded config file, or
$HOME/.clockdump.yaml. An existing file is never overwritten.

The API key is left empty; prefer $CLOCKIFY_API_KEY or a .env file.`,
	Example: `
  # Create $HOME/.clockdump.yaml
  clockdump config create

  # Create a project-local config
  clockdump --configFile ./.clockdump.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, created, err := createConfigFile(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("Example config written to: %s\n", path)
		} else {
			fmt.Printf("Config file already exists, left unchanged: %s\n", path)
		}
		return nil
	},
}

func createConfigFile(flagValue, loaded string) (string, bool, error) {
	path, err := configTargetPath(flagValue, loaded, os.UserHomeDir)
	if err != nil {
		return "", false, err
	}
	created, err := writeConfigTemplate(path)
	return path, created, err
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
