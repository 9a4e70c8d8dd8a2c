package casedb

import "fmt"

// Redis key pattern helpers
//
// All Redis keys and Pub/Sub channels are namespaced by case name so
// multiple cases can safely coexist on a single Redis server.
//
// Key pattern: tsk:{case_name}:{entity}[:{id}]
// Channel pattern: tsk:{case_name}:{event_type}_events

// ArtifactKey returns the Redis key for an artifact hash.
// Pattern: tsk:{case_name}:artifact:{artifact_id}
func ArtifactKey(caseName, artifactID string) string {
	return fmt.Sprintf("tsk:%s:artifact:%s", caseName, artifactID)
}

// ArtifactKeyPattern returns the SCAN pattern matching all artifact keys
// in a case.
func ArtifactKeyPattern(caseName string) string {
	return fmt.Sprintf("tsk:%s:artifact:*", caseName)
}

// ArtifactKeyPrefix returns the prefix shared by all artifact keys in a
// case. Used to recover artifact IDs from scanned keys.
func ArtifactKeyPrefix(caseName string) string {
	return fmt.Sprintf("tsk:%s:artifact:", caseName)
}

// ArtifactTypesKey returns the Redis key for the artifact type registry
// hash. Fields are type names, values are JSON descriptors.
// Pattern: tsk:{case_name}:artifact_types
func ArtifactTypesKey(caseName string) string {
	return fmt.Sprintf("tsk:%s:artifact_types", caseName)
}

// AttributeTypesKey returns the Redis key for the attribute type registry
// hash. Fields are type names, values are JSON descriptors.
// Pattern: tsk:{case_name}:attribute_types
func AttributeTypesKey(caseName string) string {
	return fmt.Sprintf("tsk:%s:attribute_types", caseName)
}

// TimelineKey returns the Redis key for the timeline ZSET. Members are
// JSON-encoded events, scores are event times in milliseconds.
// Pattern: tsk:{case_name}:timeline
func TimelineKey(caseName string) string {
	return fmt.Sprintf("tsk:%s:timeline", caseName)
}

// PostedEventsChannel returns the Pub/Sub channel name for artifacts
// posted events.
// Pattern: tsk:{case_name}:posted_events
func PostedEventsChannel(caseName string) string {
	return fmt.Sprintf("tsk:%s:posted_events", caseName)
}

// TimelineScore converts an event time in milliseconds to a ZSET score.
func TimelineScore(timeMs int64) float64 {
	return float64(timeMs)
}

// TimeFromScore converts a ZSET score back to an event time in
// milliseconds.
func TimeFromScore(score float64) int64 {
	return int64(score)
}
