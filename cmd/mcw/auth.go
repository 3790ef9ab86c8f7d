package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage catalog authentication",
	Long: `Manage API credentials for catalogs.

Modrinth needs no authentication. CurseForge requires an API key, read
from the CURSEFORGE_API_KEY environment variable or stored in the config
file by 'mcw auth login'.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a CurseForge API key",
	Long: `Store a CurseForge API key in the config file.

To get a key:
  1. Visit https://console.curseforge.com/
  2. Create a project and generate an API key
  3. Copy your API key`,
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored CurseForge API key",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog authentication status",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	apiKey, err := readAPIKey()
	if err != nil {
		return fmt.Errorf("reading API key: %w", err)
	}
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	service.Config().CurseForgeAPIKey = apiKey
	if err := service.SaveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("CurseForge API key saved.")
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	if service.Config().CurseForgeAPIKey == "" {
		fmt.Println("No CurseForge API key stored.")
		return nil
	}

	service.Config().CurseForgeAPIKey = ""
	if err := service.SaveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("Removed CurseForge credentials.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	fmt.Println("Modrinth: no authentication required")

	if key := os.Getenv("CURSEFORGE_API_KEY"); key != "" {
		fmt.Printf("CurseForge: authenticated via CURSEFORGE_API_KEY (key: %s)\n", maskAPIKey(key))
		return nil
	}
	if key := service.Config().CurseForgeAPIKey; key != "" {
		fmt.Printf("CurseForge: authenticated (key: %s)\n", maskAPIKey(key))
		return nil
	}

	fmt.Println("CurseForge: not authenticated")
	return nil
}

// readAPIKey prompts for and reads an API key from the terminal
func readAPIKey() (string, error) {
	fmt.Print("Enter API key: ")

	// Try to read securely (hidden input)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimSpace(string(keyBytes)), nil
	}

	// Fallback for non-terminal input (e.g. piped input)
	reader := bufio.NewReader(os.Stdin)
	key, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// maskAPIKey returns a masked version of the API key (shows first 3 and last 3 chars)
func maskAPIKey(key string) string {
	if len(key) <= 6 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}
