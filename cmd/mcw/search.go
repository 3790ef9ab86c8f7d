package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"mcw/internal/domain"
	"mcw/internal/source"

	"github.com/spf13/cobra"
)

var (
	searchCatalog string
	searchLimit   int
	searchType    string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for mods",
	Long: `Search for mods in a catalog, filtered to your game version and loader.

Examples:
  mcw search sodium
  mcw search "shulker box" --catalog modrinth
  mcw search jei --catalog curseforge --game-version 1.20.1 --loader forge`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCatalog, "catalog", "c", "", "catalog to search (default: from config)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "mod", "project type (mod, modpack, resourcepack)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := joinQuery(args)

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	provider := resolveCatalog(service, searchCatalog)
	gv := requestGameVersion(service)
	ld := requestLoader(service)

	if verbose {
		fmt.Printf("Searching for %q in %s (%s, %s)...\n", query, provider, gv, ld)
	}

	ctx := context.Background()
	projects, err := service.Search(ctx, provider, source.SearchQuery{
		Query:       query,
		GameVersion: gv,
		Loader:      ld,
		Type:        domain.ProjectType(searchType),
		PageSize:    searchLimit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			return fmt.Errorf("%s requires an API key; run 'mcw auth login'", provider)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if len(projects) > searchLimit {
		projects = projects[:searchLimit]
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(projects)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	// Mark already-installed projects
	installed, _ := service.InstalledMods()
	installedIDs := make(map[string]bool)
	for _, rec := range installed {
		if rec.Provider == provider {
			installedIDs[rec.ProjectID] = true
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUTHOR\tDOWNLOADS\t")
	fmt.Fprintln(w, "--\t----\t------\t---------\t")

	for _, p := range projects {
		installedMark := ""
		if installedIDs[p.ID] {
			installedMark = "[installed]"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			p.ID,
			truncate(p.Title, 40),
			truncate(p.Author, 20),
			p.Downloads,
			installedMark,
		)
	}
	w.Flush()

	return nil
}
