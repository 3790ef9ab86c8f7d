package main

import (
	"context"
	"errors"
	"fmt"

	"mcw/internal/core"
	"mcw/internal/domain"

	"github.com/spf13/cobra"
)

var (
	installCatalog  string
	installOptional bool
	installYes      bool
)

var installCmd = &cobra.Command{
	Use:   "install <project-id>",
	Short: "Install a mod and its dependencies",
	Long: `Install a mod from a catalog.

The best version for your game version and loader is selected, its
dependency graph is resolved, and the plan is shown for confirmation
before anything is downloaded.

Examples:
  mcw install sodium
  mcw install indium --optional
  mcw install 238222 --catalog curseforge --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installCatalog, "catalog", "c", "", "catalog to install from (default: from config)")
	installCmd.Flags().BoolVarP(&installOptional, "optional", "o", false, "also install optional dependencies")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	projectID := args[0]

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	provider := resolveCatalog(service, installCatalog)
	gv := requestGameVersion(service)
	ld := requestLoader(service)
	if gv == "" {
		return fmt.Errorf("%w: no game version; use --game-version or 'mcw config set game-version <v>'", domain.ErrInvalidConfig)
	}

	ctx := context.Background()

	if verbose {
		fmt.Printf("Preparing %s from %s for %s / %s...\n", projectID, provider, gv, ld)
	}

	installer := service.Installer()
	plan, err := installer.Prepare(ctx, core.InstallRequest{
		Provider:    provider,
		ProjectID:   projectID,
		GameVersion: gv,
		Loader:      ld,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProjectNotFound):
			return fmt.Errorf("project %s not found on %s", projectID, provider)
		case errors.Is(err, domain.ErrNoCompatibleVersion):
			return fmt.Errorf("no version of %s is compatible with %s / %s", projectID, gv, ld)
		case errors.Is(err, domain.ErrAuthRequired):
			return fmt.Errorf("%s requires an API key; run 'mcw auth login'", provider)
		}
		return err
	}

	printPlan(plan, gv)

	if !installYes {
		if err := confirm("Proceed with install?"); err != nil {
			return err
		}
	}

	var progressFn core.ProgressFunc
	if verbose {
		progressFn = func(p core.DownloadProgress) {
			if p.Percentage > 0 {
				fmt.Printf("\r  downloading: %.0f%%", p.Percentage)
			}
		}
	}

	if err := installer.Execute(ctx, plan, installOptional, progressFn); err != nil {
		if verbose {
			fmt.Println()
		}
		return fmt.Errorf("install failed: %w", err)
	}
	if verbose {
		fmt.Println()
	}

	fmt.Println(colorGreen("✓ Installed " + plan.Project.Title))
	return nil
}

// printPlan renders an install plan grouped into target, required,
// optional, and already-installed sections, with resolver warnings last.
func printPlan(plan *core.InstallPlan, gv string) {
	number := core.StripVersionFromNumber(plan.Target.VersionNumber, gv)
	fmt.Printf("Install plan for %s:\n", plan.Project.Title)
	fmt.Printf("  target   %s version %s [%s]\n", plan.Project.Slug, number, plan.Target.Maturity)
	if plan.Selection.FallbackNotice() {
		fmt.Println(colorYellow(fmt.Sprintf("  note: closest match for %s, not an exact build", gv)))
	}

	for _, node := range plan.Deps.Nodes {
		label := node.Project.Title
		if label == "" {
			label = node.Project.Slug
		}
		switch {
		case node.AlreadyInstalled:
			fmt.Printf("  have     %s (already installed)\n", label)
		case node.Kind == domain.DependencyRequired:
			fmt.Printf("  requires %s\n", label)
		case node.Kind == domain.DependencyOptional:
			mark := "skipped; use --optional"
			if installOptional {
				mark = "will install"
			}
			fmt.Printf("  optional %s (%s)\n", label, mark)
		}
	}

	for _, warn := range plan.Deps.Warnings {
		fmt.Println(colorYellow("  warning: " + warn.Error()))
	}
}
