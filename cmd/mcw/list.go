package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"mcw/internal/domain"

	"github.com/spf13/cobra"
)

var listScan bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed mods",
	Long: `List all mods recorded as installed.

With --scan, the instance's mods directory is scanned first and any jar
files not yet tracked are registered as local installs.

Examples:
  mcw list
  mcw list --scan
  mcw list --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listScan, "scan", false, "scan the mods directory for untracked jars first")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	if listScan {
		added, err := service.ScanModsDir()
		if err != nil {
			return fmt.Errorf("scanning mods directory: %w", err)
		}
		if verbose {
			fmt.Printf("Scan registered %d new file(s).\n\n", len(added))
		}
	}

	records, err := service.InstalledMods()
	if err != nil {
		return fmt.Errorf("getting installed mods: %w", err)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No mods installed.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILENAME\tVERSION\tCATALOG\tENABLED")
	fmt.Fprintln(w, "--------\t-------\t-------\t-------")

	for _, rec := range records {
		enabled := colorGreen("yes")
		if !rec.Enabled {
			enabled = colorRed("no")
		}
		catalogDisplay := string(rec.Provider)
		if rec.Provider == domain.ProviderLocal {
			catalogDisplay = "(local)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(rec.Filename, 50),
			rec.RawVersion,
			catalogDisplay,
			enabled,
		)
	}
	w.Flush()

	if verbose {
		fmt.Printf("\nTotal: %d mod(s)\n", len(records))
	}

	return nil
}
