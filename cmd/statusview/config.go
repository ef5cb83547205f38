package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hakkabon/StatusView/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the daemon configuration",
}

var configShowOpts struct {
	format string
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration the daemon would run with: the defaults
overlaid with the config file, if one exists.`,
	RunE: runConfigShow,
}

var configInitOpts struct {
	force bool
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configShowCmd.Flags().StringVar(&configShowOpts.format, "format", "toml",
		"Output format (toml, json, yaml)")
	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing configuration file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var (
		out []byte
		err error
	)
	switch configShowOpts.format {
	case "toml":
		out, err = toml.Marshal(cfg)
	case "json":
		out, err = json.MarshalIndent(cfg, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("invalid format %q: must be toml, json or yaml", configShowOpts.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Print(string(out))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := globalOpts.configPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil && !configInitOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveFile(config.Default(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Println(path)
	return nil
}
