package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodewee/doc-translate/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the persisted configuration",
	Long: `Manage the settings stored in the configuration file.

Configuration is stored as YAML in your home directory (~/.doc-translate/config.yaml),
or at the path given by --config or DOC_TRANSLATE_CONFIG. The file is created with
defaults and auto-detected tool paths on first use.

Available commands:
  list  - List all persisted settings
  get   - Get a specific setting
  set   - Set a specific setting

Examples:
  doc-translate config list                                   # List all settings
  doc-translate config get libretranslate_url                 # Get the server URL
  doc-translate config set libretranslate_url http://gpu:5000 # Use another server
  doc-translate config set source_lang de                     # Translate from German`,
}

// listConfig lists all persisted settings
func listConfig() error {
	fmt.Println("🛠️  Configuration")
	fmt.Println("=================")

	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("📁 Config file: %s\n\n", path)

	for _, key := range config.ListConfigKeys() {
		value, err := config.GetConfigValue(path, key)
		if err != nil {
			return err
		}
		if key == "libretranslate_api_key" && value != "" {
			value = "********"
		}
		fmt.Printf("  %-24s = %s\n", key, getDisplayValue(value))
	}

	fmt.Println("\n💡 Tip: Use 'doc-translate config get <key>' to get specific values")
	fmt.Println("💡 Tip: Use 'doc-translate config set <key> <value>' to change a setting")
	fmt.Println("💡 Note: Other settings (OCR engine, concurrency, etc.) are runtime-only")
	return nil
}

// getConfig gets a specific configuration value
func getConfig(key string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	value, err := config.GetConfigValue(path, key)
	if err != nil {
		return err
	}

	fmt.Printf("📝 %s = %s\n", key, getDisplayValue(value))
	return nil
}

// setConfig sets a specific configuration value
func setConfig(key, value string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return err
	}
	if err := config.SetConfigValue(path, key, value); err != nil {
		return err
	}

	fmt.Printf("✅ Successfully set %s = %s\n", key, value)
	return nil
}

// resolvedConfigPath returns the --config path or the default location
func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigFilePath()
}

// getDisplayValue returns a display-friendly value for empty strings
func getDisplayValue(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// configListCmd represents the 'config list' command
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all persisted settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(listConfig())
	},
}

// configGetCmd represents the 'config get' command
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific setting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(getConfig(args[0]))
	},
}

// configSetCmd represents the 'config set' command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a specific setting",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(setConfig(args[0], args[1]))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
