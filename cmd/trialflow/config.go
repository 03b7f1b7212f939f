package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"trialflow/pkg/config"
	"trialflow/pkg/model"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change the user configuration",
	GroupID: "maintenance",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return toml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := setConfigKey(&cfg, args[0], args[1]); err != nil {
			return err
		}
		return config.Save(cfg)
	},
}

// setConfigKey applies one key=value pair to the configuration, validating
// the value against the key's type.
func setConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "count_format":
		if !model.CountFormat(value).IsValid() {
			return fmt.Errorf("invalid count format %q (upper or parenthetical)", value)
		}
		cfg.CountFormat = value
	case "arrows", "auto_calc":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q for %s", value, key)
		}
		if key == "arrows" {
			cfg.Arrows = v
		} else {
			cfg.AutoCalc = v
		}
	case "template":
		cfg.Template = value
	case "archive_dir":
		cfg.ArchiveDir = value
	case "watch_debounce_ms":
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid debounce %q (milliseconds)", value)
		}
		cfg.WatchDebounceMs = v
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}
