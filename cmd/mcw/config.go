package main

import (
	"fmt"

	"mcw/internal/domain"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change mcw's configuration.

Settings:
  instance-dir     Minecraft instance directory whose mods folder is managed
  game-version     default game version to match (e.g. 1.20.1)
  loader           default mod loader to match (e.g. fabric)
  default-catalog  catalog used when --catalog is not given

Examples:
  mcw config show
  mcw config set game-version 1.20.1
  mcw config set loader fabric`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Change a configuration setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	cfg := service.Config()
	fmt.Printf("instance-dir:     %s\n", orUnset(cfg.InstanceDir))
	fmt.Printf("game-version:     %s\n", orUnset(cfg.GameVersion))
	fmt.Printf("loader:           %s\n", orUnset(cfg.Loader))
	fmt.Printf("default-catalog:  %s\n", cfg.DefaultCatalog)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	setting, value := args[0], args[1]

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	cfg := service.Config()
	switch setting {
	case "instance-dir":
		cfg.InstanceDir = value
	case "game-version":
		cfg.GameVersion = value
	case "loader":
		cfg.Loader = string(domain.CanonicalLoader(value))
	case "default-catalog":
		if _, err := service.GetCatalog(domain.Provider(value)); err != nil {
			return fmt.Errorf("%w: unknown catalog %q", domain.ErrInvalidConfig, value)
		}
		cfg.DefaultCatalog = value
	default:
		return fmt.Errorf("unknown setting %q; see 'mcw config --help'", setting)
	}

	if err := service.SaveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Set %s to %s.\n", setting, value)
	return nil
}

// orUnset renders empty settings as "(not set)"
func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
