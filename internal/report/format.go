package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/codacy-badger/sleuthkit/internal/timeline"
	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

// FormatTable writes artifacts as a formatted table to the provided
// writer. Columns: ID (truncated), TYPE, SOURCE, AGE, and a summary of the
// attributes. Returns the number of artifacts formatted.
func FormatTable(w io.Writer, artifacts []*blackboard.Artifact, caseName string) int {
	if len(artifacts) == 0 {
		fmt.Fprintf(w, "No artifacts found for case '%s'\n", caseName)
		return 0
	}

	fmt.Fprintf(w, "Artifacts for case '%s':\n\n", caseName)

	fmt.Fprintf(w, "%-10s %-20s %-12s %-8s %s\n",
		"ID", "TYPE", "SOURCE", "AGE", "ATTRIBUTES")
	fmt.Fprintf(w, "%-10s %-20s %-12s %-8s %s\n",
		"----------", "--------------------", "------------", "--------", "----------------------------------------")

	for _, a := range artifacts {
		fmt.Fprintf(w, "%-10s %-20s %-12s %-8s %s\n",
			truncate(a.ID, 8),
			truncate(a.Type, 20),
			truncate(a.SourceID, 12),
			formatAge(a.CreatedAtMs),
			summarizeAttributes(a.Attributes),
		)
	}

	countMsg := "artifact"
	if len(artifacts) != 1 {
		countMsg = "artifacts"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(artifacts), countMsg)

	return len(artifacts)
}

// FormatJSONL writes artifacts as line-delimited JSON (JSONL) to the
// provided writer. Each artifact is a single JSON object on its own line,
// ideal for streaming into tools like jq.
func FormatJSONL(w io.Writer, artifacts []*blackboard.Artifact) error {
	for _, artifact := range artifacts {
		data, err := json.Marshal(artifact)
		if err != nil {
			return fmt.Errorf("failed to marshal artifact to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", string(data)); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes a single artifact as pretty-printed JSON.
// Used in get mode to display complete artifact details.
func FormatSingleJSON(w io.Writer, artifact *blackboard.Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact to JSON: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\n", string(data)); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	return nil
}

// FormatTimeline writes timeline events as a table, one row per event,
// chronologically as given.
func FormatTimeline(w io.Writer, events []timeline.Event, caseName string) int {
	if len(events) == 0 {
		fmt.Fprintf(w, "No timeline events found for case '%s'\n", caseName)
		return 0
	}

	fmt.Fprintf(w, "Timeline for case '%s':\n\n", caseName)

	fmt.Fprintf(w, "%-24s %-40s %-10s %s\n", "TIME", "EVENT", "ARTIFACT", "DESCRIPTION")
	fmt.Fprintf(w, "%-24s %-40s %-10s %s\n",
		"------------------------", "----------------------------------------", "----------", "--------------------")

	for _, e := range events {
		fmt.Fprintf(w, "%-24s %-40s %-10s %s\n",
			time.UnixMilli(e.TimeMs).UTC().Format(time.RFC3339),
			truncate(e.EventType, 40),
			truncate(e.ArtifactID, 8),
			e.Description,
		)
	}

	countMsg := "event"
	if len(events) != 1 {
		countMsg = "events"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(events), countMsg)

	return len(events)
}

// summarizeAttributes renders a compact "type=value" listing, truncated to
// keep table rows on one line.
func summarizeAttributes(attrs []blackboard.Attribute) string {
	if len(attrs) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Type, attributeValue(attr)))
	}

	return truncate(strings.Join(parts, " "), 60)
}

func attributeValue(attr blackboard.Attribute) string {
	switch attr.ValueType {
	case blackboard.ValueTypeString, blackboard.ValueTypeJSON:
		return attr.ValueString
	case blackboard.ValueTypeInt32:
		return fmt.Sprintf("%d", attr.ValueInt)
	case blackboard.ValueTypeInt64:
		return fmt.Sprintf("%d", attr.ValueLong)
	case blackboard.ValueTypeDouble:
		return fmt.Sprintf("%g", attr.ValueDouble)
	case blackboard.ValueTypeBytes:
		return fmt.Sprintf("<%d bytes>", len(attr.ValueBytes))
	case blackboard.ValueTypeDateTime:
		return time.UnixMilli(attr.ValueLong).UTC().Format(time.RFC3339)
	default:
		return "?"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// formatAge renders how long ago a timestamp was, in the largest sensible
// unit.
func formatAge(createdAtMs int64) string {
	if createdAtMs == 0 {
		return "-"
	}

	age := time.Since(time.UnixMilli(createdAtMs))
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
