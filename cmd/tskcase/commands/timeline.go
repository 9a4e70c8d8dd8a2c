package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codacy-badger/sleuthkit/internal/printer"
	"github.com/codacy-badger/sleuthkit/internal/report"
)

var (
	timelineSince string
	timelineUntil string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the derived case timeline",
	Long: `Show the timeline events derived from posted artifacts,
chronologically ordered.

Examples:
  # Whole timeline
  tskcase timeline

  # A window of interest (RFC3339)
  tskcase timeline --since 2026-08-01T00:00:00Z --until 2026-08-28T00:00:00Z`,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringVar(&timelineSince, "since", "", "Only events at or after this RFC3339 time")
	timelineCmd.Flags().StringVar(&timelineUntil, "until", "", "Only events at or before this RFC3339 time")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fromMs, err := parseTimeFlag(timelineSince)
	if err != nil {
		return printer.Error("invalid --since value", fmt.Sprintf("Error: %v", err), []string{"Use RFC3339, e.g. 2026-08-01T00:00:00Z"})
	}

	toMs := int64(-1)
	if timelineUntil != "" {
		if toMs, err = parseTimeFlag(timelineUntil); err != nil {
			return printer.Error("invalid --until value", fmt.Sprintf("Error: %v", err), []string{"Use RFC3339, e.g. 2026-08-28T00:00:00Z"})
		}
	}

	store, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.TimelineRange(ctx, fromMs, toMs)
	if err != nil {
		return fmt.Errorf("failed to read timeline: %w", err)
	}

	report.FormatTimeline(os.Stdout, events, store.CaseName())
	return nil
}
