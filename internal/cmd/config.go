package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/vlist/internal/config"
	"github.com/charmbracelet/vlist/internal/log"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write configuration values",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the effective configuration or one value of it",
	Example: heredoc.Doc(`
		# Everything, after merging files, defaults and environment
		vlist config get

		# A single value
		vlist config get list.item_height
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCommandConfig(cmd)
		if err != nil {
			return err
		}

		var key string
		if len(args) > 0 {
			key = args[0]
		}
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if !value.Exists() {
			return fmt.Errorf("unknown config key: %s", key)
		}
		if value.IsObject() || value.IsArray() {
			fmt.Fprintln(cmd.OutOrStdout(), value.Get("@pretty").String())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), value.String())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Long: heredoc.Doc(`
		Persist a value to the data config file, which takes precedence over the
		global config file. Values are parsed as JSON when possible and stored
		as strings otherwise.
	`),
	Example: heredoc.Doc(`
		vlist config set list.item_height 3
		vlist config set source.key_field id
	`),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCommandConfig(cmd)
		if err != nil {
			return err
		}

		var value any
		if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
			value = args[1]
		}
		if err := cfg.SetConfigField(args[0], value); err != nil {
			return err
		}
		slog.Info("Updated config", "key", args[0], "file", config.GlobalConfigData())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func loadCommandConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	log.SetupConsole(os.Stderr, debug)
	cwd, err := resolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	return config.Load(cwd, debug)
}
