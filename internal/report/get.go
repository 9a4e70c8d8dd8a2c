package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/codacy-badger/sleuthkit/internal/casedb"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 6 characters to balance usability with collision avoidance.
const MinShortIDLength = 6

// GetArtifact resolves an artifact reference (full UUID or unique short
// prefix) and writes the artifact as pretty-printed JSON to the writer.
func GetArtifact(ctx context.Context, store *casedb.Store, ref string, w io.Writer) error {
	id, err := resolveArtifactID(ctx, store, ref)
	if err != nil {
		return err
	}

	artifact, err := store.GetArtifact(ctx, id)
	if err != nil {
		if casedb.IsNotFound(err) {
			return &ArtifactNotFoundError{Ref: ref}
		}
		return fmt.Errorf("failed to fetch artifact: %w", err)
	}

	if err := FormatSingleJSON(w, artifact); err != nil {
		return fmt.Errorf("failed to format artifact: %w", err)
	}

	return nil
}

// resolveArtifactID resolves a short ID prefix to a full UUID.
// Full UUIDs (36 chars, 4 hyphens) pass through untouched; prefixes must
// be at least MinShortIDLength characters and match exactly one artifact.
func resolveArtifactID(ctx context.Context, store *casedb.Store, ref string) (string, error) {
	if len(ref) == 36 && strings.Count(ref, "-") == 4 {
		return ref, nil
	}

	if len(ref) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(ref))
	}

	matches, err := store.ScanArtifactIDs(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to search for artifact: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", &ArtifactNotFoundError{Ref: ref}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("short ID '%s' is ambiguous: %d artifacts match", ref, len(matches))
	}
}

// ArtifactNotFoundError represents a specific "artifact not found" error.
// This allows callers to distinguish not-found errors from other failures.
type ArtifactNotFoundError struct {
	Ref string
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("artifact '%s' not found", e.Ref)
}

// IsNotFound returns true if the error is an ArtifactNotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*ArtifactNotFoundError)
	return ok
}
