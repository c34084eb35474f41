package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage clockdump configuration file values.",
	Long: `Create, edit, display, and delete the clockdump configuration file.

The configuration stores application-wide defaults:
- clockify.base_url / clockify.api_key / clockify.workspace_id
- fetch.page_size / fetch.delay / fetch.timeout
- log.level / log.pretty`,
	Example: `
  # Create default config in $HOME/.clockdump.yaml
  clockdump config create

  # Show active config and source file
  clockdump config show

  # Open active config in editor (creates example if missing)
  clockdump config edit

  # Delete active config file
  clockdump config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
