package main

import (
	"fmt"

	"mcw/internal/domain"

	"github.com/spf13/cobra"
)

var uninstallYes bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <filename>",
	Short: "Uninstall a mod",
	Long: `Remove a mod's installed record and its cached files.

The argument is the installed filename as shown by 'mcw list'. The
catalog project id of a tracked mod also works.

Examples:
  mcw uninstall sodium-0.5.3.jar
  mcw uninstall AANobbMI --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	target := args[0]

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	records, err := service.InstalledMods()
	if err != nil {
		return fmt.Errorf("getting installed mods: %w", err)
	}

	rec := findRecord(records, target)
	if rec == nil {
		return fmt.Errorf("%w: no installed mod matches %q", domain.ErrProjectNotFound, target)
	}

	if !uninstallYes {
		if err := confirm(fmt.Sprintf("Uninstall %s?", rec.Filename)); err != nil {
			return err
		}
	}

	if err := service.Installer().Uninstall(rec); err != nil {
		return fmt.Errorf("uninstalling %s: %w", rec.Filename, err)
	}

	fmt.Println(colorGreen("✓ Uninstalled " + rec.Filename))
	return nil
}

// findRecord matches an installed record by filename first, then by the
// project id of a catalog-tracked record.
func findRecord(records []domain.InstalledRecord, target string) *domain.InstalledRecord {
	for i := range records {
		if records[i].Filename == target {
			return &records[i]
		}
	}
	for i := range records {
		if records[i].ProjectID != "" && records[i].ProjectID == target {
			return &records[i]
		}
	}
	return nil
}
