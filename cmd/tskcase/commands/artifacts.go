package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codacy-badger/sleuthkit/internal/printer"
	"github.com/codacy-badger/sleuthkit/internal/report"
)

var (
	artifactsOutputFormat string
	artifactsSince        string
	artifactsUntil        string
	artifactsTypeGlob     string
	artifactsSourceID     string
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Inspect artifacts stored in the case",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var artifactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts with optional filters",
	Long: `List all artifacts in the case, oldest first.

Output Formats:
  default - Table with truncated attribute summaries
  jsonl   - Complete artifacts as line-delimited JSON

Examples:
  # All artifacts
  tskcase artifacts list

  # Web artifacts from a specific file, as JSONL
  tskcase artifacts list --type 'TSK_WEB_*' --source file-42 --output jsonl

  # Artifacts created in a window (RFC3339)
  tskcase artifacts list --since 2026-08-01T00:00:00Z --until 2026-08-28T00:00:00Z`,
	RunE: runArtifactsList,
}

var artifactsGetCmd = &cobra.Command{
	Use:   "get <artifact-id>",
	Short: "Show one artifact as JSON",
	Long: `Show a single artifact as pretty-printed JSON. Accepts a full UUID or a
unique prefix of at least 6 characters.`,
	Args: cobra.ExactArgs(1),
	RunE: runArtifactsGet,
}

func init() {
	artifactsListCmd.Flags().StringVarP(&artifactsOutputFormat, "output", "o", "default", "Output format (default or jsonl)")
	artifactsListCmd.Flags().StringVar(&artifactsSince, "since", "", "Only artifacts created at or after this RFC3339 time")
	artifactsListCmd.Flags().StringVar(&artifactsUntil, "until", "", "Only artifacts created at or before this RFC3339 time")
	artifactsListCmd.Flags().StringVar(&artifactsTypeGlob, "type", "", "Glob pattern on artifact type")
	artifactsListCmd.Flags().StringVar(&artifactsSourceID, "source", "", "Exact match on source object ID")

	artifactsCmd.AddCommand(artifactsListCmd)
	artifactsCmd.AddCommand(artifactsGetCmd)
	rootCmd.AddCommand(artifactsCmd)
}

func runArtifactsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var format report.OutputFormat
	switch artifactsOutputFormat {
	case "default":
		format = report.OutputFormatDefault
	case "jsonl":
		format = report.OutputFormatJSONL
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", artifactsOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	filters := &report.FilterCriteria{
		TypeGlob: artifactsTypeGlob,
		SourceID: artifactsSourceID,
	}

	var err error
	if filters.SinceTimestampMs, err = parseTimeFlag(artifactsSince); err != nil {
		return printer.Error("invalid --since value", fmt.Sprintf("Error: %v", err), []string{"Use RFC3339, e.g. 2026-08-01T00:00:00Z"})
	}
	if filters.UntilTimestampMs, err = parseTimeFlag(artifactsUntil); err != nil {
		return printer.Error("invalid --until value", fmt.Sprintf("Error: %v", err), []string{"Use RFC3339, e.g. 2026-08-28T00:00:00Z"})
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	return report.ListArtifacts(ctx, store, format, filters, os.Stdout)
}

func runArtifactsGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := report.GetArtifact(ctx, store, args[0], os.Stdout); err != nil {
		if report.IsNotFound(err) {
			return printer.Error(
				"artifact not found",
				fmt.Sprintf("No artifact matches '%s'.", args[0]),
				[]string{"List artifacts:\n  tskcase artifacts list"},
			)
		}
		return err
	}

	return nil
}

// parseTimeFlag converts an optional RFC3339 flag value to Unix
// milliseconds; empty means unset (0).
func parseTimeFlag(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, err
	}
	return ts.UnixMilli(), nil
}
