package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/osse101/GardenBot_Go/internal/catalog"
)

var validatePacksCmd = &cobra.Command{
	Use:   "validate-packs [assets-dir]",
	Short: "Validate every plants/*/pack.json and artists.json against the schemas",
	Long: `Loads the plant catalog the same way the API does at startup and reports
the first error. Defaults to the --assets directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidatePacks,
}

func runValidatePacks(cmd *cobra.Command, args []string) error {
	dir := assetsDir
	if len(args) == 1 {
		dir = args[0]
	}

	loader, err := catalog.NewLoader(dir)
	if err != nil {
		return err
	}
	plants, err := loader.LoadPlants(cmd.Context())
	if err != nil {
		return err
	}
	artists, err := loader.LoadArtists()
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(artists))
	for _, a := range artists {
		known[a.ID] = true
	}

	sort.Slice(plants, func(i, j int) bool { return plants[i].Name < plants[j].Name })
	out := cmd.OutOrStdout()
	var unknownArtists int
	for _, p := range plants {
		status := "ok"
		if p.Artist != "" && !known[p.Artist] {
			status = fmt.Sprintf("unknown artist %q", p.Artist)
			unknownArtists++
		}
		fmt.Fprintf(out, "%-24s level=%d visible=%t available=%t  %s\n", p.Name, p.PlantLevel, p.Visible, p.Available, status)
	}
	fmt.Fprintf(out, "%d plant packs, %d artists\n", len(plants), len(artists))

	if unknownArtists > 0 {
		return fmt.Errorf("%d packs reference unknown artists", unknownArtists)
	}
	return nil
}
