package casedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPatterns(t *testing.T) {
	t.Run("artifact key", func(t *testing.T) {
		assert.Equal(t, "tsk:smith-laptop:artifact:abc-123", ArtifactKey("smith-laptop", "abc-123"))
	})

	t.Run("artifact scan pattern and prefix agree", func(t *testing.T) {
		assert.Equal(t, "tsk:smith-laptop:artifact:*", ArtifactKeyPattern("smith-laptop"))
		assert.Equal(t, "tsk:smith-laptop:artifact:", ArtifactKeyPrefix("smith-laptop"))
	})

	t.Run("type registry keys", func(t *testing.T) {
		assert.Equal(t, "tsk:smith-laptop:artifact_types", ArtifactTypesKey("smith-laptop"))
		assert.Equal(t, "tsk:smith-laptop:attribute_types", AttributeTypesKey("smith-laptop"))
	})

	t.Run("timeline key", func(t *testing.T) {
		assert.Equal(t, "tsk:smith-laptop:timeline", TimelineKey("smith-laptop"))
	})

	t.Run("posted events channel", func(t *testing.T) {
		assert.Equal(t, "tsk:smith-laptop:posted_events", PostedEventsChannel("smith-laptop"))
	})

	t.Run("different cases never share keys", func(t *testing.T) {
		assert.NotEqual(t, TimelineKey("case-a"), TimelineKey("case-b"))
		assert.NotEqual(t, PostedEventsChannel("case-a"), PostedEventsChannel("case-b"))
	})
}

func TestTimelineScore(t *testing.T) {
	t.Run("round-trips timestamps", func(t *testing.T) {
		for _, ms := range []int64{0, 1, 1700000000000} {
			assert.Equal(t, ms, TimeFromScore(TimelineScore(ms)))
		}
	})

	t.Run("preserves ordering", func(t *testing.T) {
		assert.Less(t, TimelineScore(1000), TimelineScore(2000))
	})
}
