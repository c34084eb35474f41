package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clockdump/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file and validate the result.",
	Long: `Open the configuration file in $VISUAL, else $EDITOR, else vi. A missing file
is first created from the example template.

When the editor exits the file is validated and the effective values are
printed, including where the API key would be taken from.`,
	Example: `
  # Edit the active config
  clockdump config edit

  # Edit with a specific editor
  EDITOR="code --wait" clockdump config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, created, err := createConfigFile(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("Example config written to: %s\n", path)
		}

		argv, err := editorArgv(os.Getenv("VISUAL"), os.Getenv("EDITOR"), path)
		if err != nil {
			return err
		}
		editor := exec.Command(argv[0], argv[1:]...)
		editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor %s: %w", argv[0], err)
		}

		cfg, err := validateConfigFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("Config file validated: %s\n", path)
		printConfig(os.Stdout, cfg)
		return nil
	},
}

// editorArgv splits the first non-blank editor setting into a command line
// ending with path.
func editorArgv(visual, editor, path string) ([]string, error) {
	command := "vi"
	for _, candidate := range []string{visual, editor} {
		if strings.TrimSpace(candidate) != "" {
			command = candidate
			break
		}
	}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return append(fields, path), nil
}

func validateConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
