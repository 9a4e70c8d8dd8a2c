package casedb

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

// Serialization helpers for converting between Go structs and Redis hashes
//
// Redis stores data as string-to-string maps (hashes). The attribute list
// is JSON-encoded into a single hash field; scalar fields stay individual
// so they remain queryable without deserializing the whole artifact.

// ArtifactToHash converts an Artifact struct to a Redis hash format.
// The attributes array is JSON-encoded.
func ArtifactToHash(a *blackboard.Artifact) (map[string]interface{}, error) {
	attributesJSON, err := json.Marshal(a.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	hash := map[string]interface{}{
		"id":            a.ID,
		"source_id":     a.SourceID,
		"type":          a.Type,
		"attributes":    string(attributesJSON),
		"created_at_ms": a.CreatedAtMs,
	}

	return hash, nil
}

// HashToArtifact converts a Redis hash to an Artifact struct.
// The attributes JSON field is decoded back to Go types.
func HashToArtifact(hash map[string]string) (*blackboard.Artifact, error) {
	var attributes []blackboard.Attribute
	if attributesJSON := hash["attributes"]; attributesJSON != "" {
		if err := json.Unmarshal([]byte(attributesJSON), &attributes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
		}
	}

	// Ensure we have an empty slice instead of nil for consistency
	if attributes == nil {
		attributes = []blackboard.Attribute{}
	}

	createdAtMs, _ := strconv.ParseInt(hash["created_at_ms"], 10, 64)

	artifact := &blackboard.Artifact{
		ID:          hash["id"],
		SourceID:    hash["source_id"],
		Type:        hash["type"],
		Attributes:  attributes,
		CreatedAtMs: createdAtMs,
	}

	return artifact, nil
}
