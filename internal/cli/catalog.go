package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/okian/phonepick/internal/catalog"
)

// NewCatalogCmd creates the 'catalog' command for inspecting the loaded
// catalog.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Summarize the smartphone catalog",
		Long:  `Load the catalog file and print record counts per operating system.`,
		Example: `  phonepick catalog
  phonepick catalog --catalog ./smartphones.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			override, _ := cmd.Flags().GetString("catalog")
			return runCatalogSummary(cmd.Context(), cmd, override)
		},
	}

	return cmd
}

// runCatalogSummary prints the catalog size and per-OS breakdown.
func runCatalogSummary(ctx context.Context, cmd *cobra.Command, catalogOverride string) error {
	cfg, err := loadConfig(ctx, catalogOverride)
	if err != nil {
		return err
	}

	phones, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store := catalog.NewMemoryStore(phones)

	cmd.Printf("Catalog: %s\n", cfg.CatalogPath)
	cmd.Printf("Devices: %d\n", store.Count(ctx))

	byOS := store.CountByOS(ctx)
	names := make([]string, 0, len(byOS))
	for os := range byOS {
		names = append(names, os)
	}
	sort.Strings(names)
	for _, os := range names {
		cmd.Printf("  %-10s %d\n", os, byOS[os])
	}

	if len(phones) > 0 {
		minMinutes, maxMinutes := phones[0].ChargingTimeMinutes, phones[0].ChargingTimeMinutes
		for _, p := range phones[1:] {
			if p.ChargingTimeMinutes < minMinutes {
				minMinutes = p.ChargingTimeMinutes
			}
			if p.ChargingTimeMinutes > maxMinutes {
				maxMinutes = p.ChargingTimeMinutes
			}
		}
		cmd.Printf("Charging time: %d-%d minutes\n", minMinutes, maxMinutes)
	}

	return nil
}
