package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codacy-badger/sleuthkit/internal/config"
	"github.com/codacy-badger/sleuthkit/internal/printer"
)

var (
	initCaseName  string
	initRedisAddr string
	initSeedTypes bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a case.yml and seed the built-in type catalog",
	Long: `Create a case configuration file in the current directory and register
the built-in artifact and attribute types with the case store.

Examples:
  # Create a case with the default local Redis
  tskcase init --case smith-laptop

  # Point the case at a remote Redis, skip type seeding
  tskcase init --case smith-laptop --redis redis.lab:6379 --seed=false`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initCaseName, "case", "", "Case name (required, lowercase alphanumeric with hyphens)")
	initCmd.Flags().StringVar(&initRedisAddr, "redis", "localhost:6379", "Redis server address")
	initCmd.Flags().BoolVar(&initSeedTypes, "seed", true, "Seed built-in artifact and attribute types")
	initCmd.MarkFlagRequired("case")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := config.ValidateCaseName(initCaseName); err != nil {
		return printer.Error(
			"invalid case name",
			fmt.Sprintf("Error: %v", err),
			[]string{"Case names must be lowercase alphanumeric with hyphens, e.g. smith-laptop"},
		)
	}

	if _, err := os.Stat(configPath); err == nil {
		return printer.Error(
			"case configuration already exists",
			fmt.Sprintf("%s already exists in this directory.", configPath),
			[]string{"Remove it first, or use --config to write elsewhere"},
		)
	}

	content := fmt.Sprintf(`version: "1.0"
case:
  name: %s
redis:
  addr: %s
`, initCaseName, initRedisAddr)

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	printer.Success("Created %s for case '%s'\n", configPath, initCaseName)

	if !initSeedTypes {
		return nil
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SeedBuiltinTypes(ctx); err != nil {
		return fmt.Errorf("failed to seed built-in types: %w", err)
	}
	printer.Success("Seeded built-in artifact and attribute types\n")

	return nil
}
