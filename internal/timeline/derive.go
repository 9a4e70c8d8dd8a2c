// Package timeline derives timeline events from posted artifacts.
//
// Every datetime-valued attribute on an artifact becomes one event. An
// artifact with no datetime attributes derives nothing, which is not an
// error - plenty of artifact types (hashset hits, extracted text) carry no
// temporal information.
package timeline

import (
	"fmt"

	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

// Event is a single derived timeline entry. Events are persisted to the
// case timeline index before the artifact they came from is announced.
type Event struct {
	ArtifactID  string `json:"artifact_id"` // Artifact the event was derived from
	EventType   string `json:"event_type"`  // "{artifact type}/{attribute type}", e.g. "TSK_WEB_HISTORY/TSK_DATETIME_ACCESSED"
	TimeMs      int64  `json:"time_ms"`     // Unix timestamp in milliseconds
	Description string `json:"description"` // Short human-readable summary drawn from the artifact
}

// descriptiveAttributes are tried in order when building an event
// description.
var descriptiveAttributes = []string{
	blackboard.AttrName,
	blackboard.AttrTitle,
	blackboard.AttrURL,
	blackboard.AttrProgName,
	blackboard.AttrPath,
	blackboard.AttrKeyword,
	blackboard.AttrDomain,
}

// EventsFromArtifact derives the timeline events for an artifact: one per
// datetime attribute. The returned slice is nil when nothing derives.
func EventsFromArtifact(a *blackboard.Artifact) []Event {
	var events []Event
	description := describeArtifact(a)

	for _, attr := range a.Attributes {
		if attr.ValueType != blackboard.ValueTypeDateTime {
			continue
		}
		events = append(events, Event{
			ArtifactID:  a.ID,
			EventType:   fmt.Sprintf("%s/%s", a.Type, attr.Type),
			TimeMs:      attr.ValueLong,
			Description: description,
		})
	}

	return events
}

// describeArtifact builds a short description from the artifact's most
// descriptive string attribute, falling back to the bare type name.
func describeArtifact(a *blackboard.Artifact) string {
	byType := make(map[string]string, len(a.Attributes))
	for _, attr := range a.Attributes {
		if attr.ValueType != blackboard.ValueTypeString || attr.ValueString == "" {
			continue
		}
		if _, ok := byType[attr.Type]; !ok {
			byType[attr.Type] = attr.ValueString
		}
	}

	for _, name := range descriptiveAttributes {
		if v, ok := byType[name]; ok {
			return fmt.Sprintf("%s: %s", a.Type, v)
		}
	}

	return a.Type
}
