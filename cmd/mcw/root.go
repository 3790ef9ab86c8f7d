package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mcw/internal/core"
	"mcw/internal/domain"
	"mcw/internal/source/curseforge"
	"mcw/internal/source/modrinth"

	"github.com/spf13/cobra"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
// When returned from a command, Execute exits with code 2.
var ErrCancelled = errors.New("cancelled")

var (
	version = "0.3.0"

	// Global flags
	configDir   string
	dataDir     string
	gameVersion string
	loader      string
	verbose     bool
	jsonOutput  bool
	noColor     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcw",
	Short: "mcw - Terminal-based Minecraft mod manager",
	Long: `mcw is a terminal-based mod manager for Minecraft, for searching,
installing, updating, and managing mods from Modrinth and CurseForge.

Mods are matched against your instance's game version and loader, with
dependencies resolved and installed automatically.

Use subcommands for operations. Run 'mcw --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/mcw)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/mcw)")
	rootCmd.PersistentFlags().StringVar(&gameVersion, "game-version", "", "game version to match (default: from config)")
	rootCmd.PersistentFlags().StringVar(&loader, "loader", "", "mod loader to match (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (list, search, versions, update)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// colorGreen returns s with green ANSI when color is enabled, otherwise s.
func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

// colorRed returns s with red ANSI when color is enabled, otherwise s.
func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

// colorYellow returns s with yellow ANSI when color is enabled, otherwise s.
func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error, 2 = user cancelled.
// When --json is set and an error occurs, prints {"error":"..."} to stdout before exiting.
// Cancellation (ErrCancelled) exits with code 2 without printing JSON, since it is a user action, not an error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrCancelled) {
			os.Exit(2)
		}
		if jsonOutput {
			fmt.Printf(`{"error":%q}`+"\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	cfg, err := getServiceConfig()
	if err != nil {
		return nil, err
	}

	// Ensure directories exist
	if err := os.MkdirAll(cfg.ConfigDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	svc, err := core.NewService(cfg)
	if err != nil {
		return nil, err
	}

	registerCatalogs(svc)

	return svc, nil
}

// registerCatalogs registers all available mod catalogs with the service
func registerCatalogs(svc *core.Service) {
	svc.RegisterCatalog(modrinth.New(nil))

	curseKey := os.Getenv("CURSEFORGE_API_KEY")
	if curseKey == "" {
		curseKey = svc.Config().CurseForgeAPIKey
	}
	svc.RegisterCatalog(curseforge.New(nil, curseKey))
}

// getServiceConfig returns the service configuration with defaults.
// Returns an error if UserHomeDir fails and defaults are needed.
func getServiceConfig() (core.ServiceConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return core.ServiceConfig{}, fmt.Errorf("home directory: %w", err)
	}

	cfg := core.ServiceConfig{
		ConfigDir: configDir,
		DataDir:   dataDir,
	}

	if cfg.ConfigDir == "" {
		cfg.ConfigDir = filepath.Join(homeDir, ".config", "mcw")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(homeDir, ".local", "share", "mcw")
	}
	cfg.CacheDir = filepath.Join(cfg.DataDir, "cache")

	return cfg, nil
}

// requestGameVersion resolves the game version for a request: the
// --game-version flag wins over the configured default.
func requestGameVersion(svc *core.Service) string {
	if gameVersion != "" {
		return gameVersion
	}
	return svc.Config().GameVersion
}

// requestLoader resolves the loader for a request, flag over config
func requestLoader(svc *core.Service) string {
	if loader != "" {
		return loader
	}
	return svc.Config().Loader
}

// resolveCatalog returns the provider to query: the given flag value, or
// the configured default catalog.
func resolveCatalog(svc *core.Service, catalogFlag string) domain.Provider {
	if catalogFlag != "" {
		return domain.Provider(catalogFlag)
	}
	return domain.Provider(svc.Config().DefaultCatalog)
}

// closeService closes the service, reporting errors to stderr
func closeService(svc *core.Service) {
	if err := svc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", err)
	}
}
