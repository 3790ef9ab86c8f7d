package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"mcw/internal/core"

	"github.com/spf13/cobra"
)

var (
	updateApply bool
	updateYes   bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check installed mods for updates",
	Long: `Check all installed mods for newer versions compatible with your game
version and loader.

Without --apply this only reports what is outdated. With --apply, each
update is installed after confirmation.

Examples:
  mcw update
  mcw update --apply
  mcw update --apply --yes`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateApply, "apply", false, "install available updates")
	updateCmd.Flags().BoolVarP(&updateYes, "yes", "y", false, "skip the confirmation prompt (with --apply)")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	gv := requestGameVersion(service)
	ld := requestLoader(service)

	if verbose {
		fmt.Printf("Checking for updates against %s / %s...\n", gv, ld)
	}

	ctx := context.Background()
	updates, checkErr := service.Updater().CheckUpdates(ctx, gv, ld)

	// Partial failures still leave usable results; report them and go on
	if checkErr != nil {
		fmt.Fprintf(os.Stderr, "warning: some checks failed: %v\n", checkErr)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(updates)
	}

	if len(updates) == 0 {
		fmt.Println("All mods are up to date.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILENAME\tINSTALLED\tAVAILABLE")
	fmt.Fprintln(w, "--------\t---------\t---------")
	for _, upd := range updates {
		number := core.StripVersionFromNumber(upd.NewVersion.VersionNumber, gv)
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(upd.Record.Filename, 50),
			upd.Record.RawVersion,
			colorYellow(number),
		)
	}
	w.Flush()

	if !updateApply {
		fmt.Println("\nRun 'mcw update --apply' to install these updates.")
		return nil
	}

	if !updateYes {
		if err := confirm(fmt.Sprintf("\nApply %d update(s)?", len(updates))); err != nil {
			return err
		}
	}

	installer := service.Installer()
	var failed int
	for _, upd := range updates {
		if verbose {
			fmt.Printf("Updating %s...\n", upd.Record.Filename)
		}

		plan, err := installer.Prepare(ctx, core.InstallRequest{
			Provider:    upd.Record.Provider,
			ProjectID:   upd.Record.ProjectID,
			GameVersion: gv,
			Loader:      ld,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: preparing %s: %v\n", upd.Record.Filename, err)
			failed++
			continue
		}

		// Drop the old record before the new file lands
		if err := installer.Uninstall(&upd.Record); err != nil {
			fmt.Fprintf(os.Stderr, "warning: removing old %s: %v\n", upd.Record.Filename, err)
		}

		if err := installer.Execute(ctx, plan, false, nil); err != nil {
			fmt.Fprintf(os.Stderr, "warning: updating %s: %v\n", upd.Record.Filename, err)
			failed++
			continue
		}
	}

	applied := len(updates) - failed
	fmt.Println(colorGreen(fmt.Sprintf("✓ Applied %d update(s)", applied)))
	if failed > 0 {
		return fmt.Errorf("%d update(s) failed", failed)
	}
	return nil
}
