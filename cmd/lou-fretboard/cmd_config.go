package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file and
LOU_FRETBOARD_* environment overrides are applied. With --write the result
is saved to the --config path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if writeConfig {
			if err := cfg.Save(configPath); err != nil {
				return err
			}
			logger.Info("config written", "path", configPath)
			return nil
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().BoolVar(&writeConfig, "write", false, "save the effective configuration")
	rootCmd.AddCommand(configCmd)
}
