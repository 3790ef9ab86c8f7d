package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"mcw/internal/core"
	"mcw/internal/domain"

	"github.com/spf13/cobra"
)

var (
	versionsCatalog string
	versionsAll     bool
)

var versionsCmd = &cobra.Command{
	Use:   "versions <project-id>",
	Short: "List compatible versions of a project",
	Long: `List a project's versions compatible with your game version and loader,
best matches first.

By default only the best-matched versions are shown. Use --all to list
every compatible version.

Examples:
  mcw versions sodium
  mcw versions AANobbMI --all
  mcw versions 238222 --catalog curseforge`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().StringVarP(&versionsCatalog, "catalog", "c", "", "catalog to query (default: from config)")
	versionsCmd.Flags().BoolVarP(&versionsAll, "all", "a", false, "show all compatible versions, not just the best matches")

	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	projectID := args[0]

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	provider := resolveCatalog(service, versionsCatalog)
	gv := requestGameVersion(service)
	ld := requestLoader(service)

	catalog, err := service.GetCatalog(provider)
	if err != nil {
		return err
	}

	ctx := context.Background()
	project, err := catalog.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return fmt.Errorf("project %s not found on %s", projectID, provider)
		}
		return fmt.Errorf("fetching project: %w", err)
	}

	candidates, err := catalog.GetVersions(ctx, project.ID, gv, ld)
	if err != nil {
		return fmt.Errorf("fetching versions: %w", err)
	}

	selection := core.SelectVersions(candidates, gv, ld, project.Type)

	shown := selection.Best
	if versionsAll {
		shown = nil
		for _, v := range candidates {
			if !domain.LoaderMatches(v.Loaders, ld, project.Type) {
				continue
			}
			if core.ScoreGameVersions(v.GameVersions, gv) == 0 {
				continue
			}
			shown = append(shown, v)
		}
		core.SortVersions(shown)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(shown)
	}

	title := core.StripVersionFromTitle(project.Title, gv)
	fmt.Printf("%s (%s on %s)\n", title, project.ID, provider)

	if len(shown) == 0 {
		fmt.Printf("No versions compatible with %s / %s.\n", gv, ld)
		return nil
	}

	if selection.FallbackNotice() {
		fmt.Println(colorYellow(fmt.Sprintf("No exact %s build; showing the closest compatible versions.", gv)))
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tCHANNEL\tGAME VERSIONS\tPUBLISHED")
	fmt.Fprintln(w, "-------\t-------\t-------------\t---------")

	for _, v := range shown {
		number := core.StripVersionFromNumber(v.VersionNumber, gv)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			number,
			v.Maturity,
			truncate(strings.Join(v.GameVersions, ", "), 40),
			v.PublishedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	if verbose {
		fmt.Printf("\nShowing %d of %d fetched versions.\n", len(shown), len(candidates))
	}

	return nil
}
