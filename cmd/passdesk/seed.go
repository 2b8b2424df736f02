package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/lhcpl/passdesk/internal/config"
	"github.com/lhcpl/passdesk/internal/credential"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed placeholder organization credentials",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedCredentials covers every grantable slot with placeholder values; the
// admin replaces them through the credentials screen.
var seedCredentials = []credential.UpdateInput{
	{Organization: "AgoraFarming", Type: "support", Email: "support@agorafarming.com", Password: "changeme"},
	{Organization: "AgoraFarming", Type: "info", Email: "info@agorafarming.com", Password: "changeme"},
	{Organization: "LHCPL", Type: "support", Email: "support@lhcpl.in", Password: "changeme"},
	{Organization: "LHCPL", Type: "info", Email: "info@lhcpl.in", Password: "changeme"},
	{Organization: "hostinger", Type: "global", Email: "hosting@lhcpl.in", Password: "changeme"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := credential.NewStore(pool)

	// Check if seed has already run.
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("checking existing credentials: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("credentials already exist, skipping seed")
		return nil
	}

	for _, input := range seedCredentials {
		c, err := store.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("creating credential %s/%s: %w", input.Organization, input.Type, err)
		}
		slog.Info("created credential", "organization", string(c.Organization), "type", c.Type, "id", c.ID)
	}

	fmt.Printf("\n=== Credentials Seeded ===\n")
	fmt.Printf("Slots: %d\n", len(seedCredentials))
	fmt.Printf("\nReplace the placeholder values, then create users:\n")
	fmt.Printf("  curl -X PUT -H 'Authorization: Bearer <admin token>' \\\n")
	fmt.Printf("       -d '{\"organization\":\"AgoraFarming\",\"type\":\"support\",\"email\":\"...\",\"password\":\"...\"}' \\\n")
	fmt.Printf("       http://localhost:8080/admin/organization-credentials\n")

	return nil
}
