// Package report retrieves and formats case contents for the CLI: artifact
// listings, single-artifact detail, and the derived timeline.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/codacy-badger/sleuthkit/internal/casedb"
	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

// OutputFormat specifies how to format the artifact list output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated attributes
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete artifacts as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// FilterCriteria defines filtering options for artifact listings.
// All filters are ANDed together.
type FilterCriteria struct {
	SinceTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	UntilTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	TypeGlob         string // Glob pattern for artifact type, empty = no filter
	SourceID         string // Exact match on source object, empty = no filter
}

// matchesFilter returns true if the artifact matches all filter criteria.
func (fc *FilterCriteria) matchesFilter(a *blackboard.Artifact) bool {
	if fc.SinceTimestampMs > 0 && a.CreatedAtMs < fc.SinceTimestampMs {
		return false
	}
	if fc.UntilTimestampMs > 0 && a.CreatedAtMs > fc.UntilTimestampMs {
		return false
	}

	if fc.TypeGlob != "" {
		matched, err := filepath.Match(fc.TypeGlob, a.Type)
		if err != nil || !matched {
			return false
		}
	}

	if fc.SourceID != "" && a.SourceID != fc.SourceID {
		return false
	}

	return true
}

// ListArtifacts retrieves all artifacts for a case and writes them to the
// provided writer. Applies filter criteria if provided and sorts artifacts
// by creation time for stable output. Skips malformed artifacts with a
// warning to stderr but continues processing.
func ListArtifacts(ctx context.Context, store *casedb.Store, format OutputFormat, filters *FilterCriteria, w io.Writer) error {
	ids, err := store.ScanArtifactIDs(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to scan artifacts: %w", err)
	}

	var artifacts []*blackboard.Artifact
	for _, id := range ids {
		artifact, err := store.GetArtifact(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Skipping malformed artifact: id=%s (error: %v)\n", id, err)
			continue
		}

		if filters != nil && !filters.matchesFilter(artifact) {
			continue
		}

		artifacts = append(artifacts, artifact)
	}

	// Oldest first for chronological output
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAtMs < artifacts[j].CreatedAtMs
	})

	switch format {
	case OutputFormatJSONL:
		return FormatJSONL(w, artifacts)
	default:
		FormatTable(w, artifacts, store.CaseName())
		return nil
	}
}
