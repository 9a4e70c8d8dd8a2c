package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codacy-badger/sleuthkit/internal/casedb"
	"github.com/codacy-badger/sleuthkit/internal/timeline"
	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

func setupTestStore(t *testing.T) *casedb.Store {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store, err := casedb.NewStore(&redis.Options{Addr: mr.Addr()}, "test-case")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func saveArtifact(t *testing.T, store *casedb.Store, typeName, sourceID string, createdAtMs int64) *blackboard.Artifact {
	t.Helper()
	a := &blackboard.Artifact{
		ID:       uuid.New().String(),
		SourceID: sourceID,
		Type:     typeName,
		Attributes: []blackboard.Attribute{
			blackboard.NewStringAttribute(blackboard.AttrName, "item"),
		},
		CreatedAtMs: createdAtMs,
	}
	require.NoError(t, store.SaveArtifact(context.Background(), a))
	return a
}

func TestListArtifacts(t *testing.T) {
	ctx := context.Background()

	t.Run("lists all artifacts chronologically", func(t *testing.T) {
		store := setupTestStore(t)
		newer := saveArtifact(t, store, blackboard.TypeWebHistory, "file-1", 2000)
		older := saveArtifact(t, store, blackboard.TypeKeywordHit, "file-2", 1000)

		var buf bytes.Buffer
		require.NoError(t, ListArtifacts(ctx, store, OutputFormatJSONL, nil, &buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)

		var first, second blackboard.Artifact
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, older.ID, first.ID)
		assert.Equal(t, newer.ID, second.ID)
	})

	t.Run("applies filters", func(t *testing.T) {
		store := setupTestStore(t)
		saveArtifact(t, store, blackboard.TypeWebHistory, "file-1", 1000)
		kept := saveArtifact(t, store, blackboard.TypeWebBookmark, "file-2", 2000)
		saveArtifact(t, store, blackboard.TypeKeywordHit, "file-2", 3000)

		var buf bytes.Buffer
		filters := &FilterCriteria{
			SinceTimestampMs: 1500,
			UntilTimestampMs: 2500,
			TypeGlob:         "TSK_WEB_*",
			SourceID:         "file-2",
		}
		require.NoError(t, ListArtifacts(ctx, store, OutputFormatJSONL, filters, &buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var got blackboard.Artifact
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
		assert.Equal(t, kept.ID, got.ID)
	})

	t.Run("empty case prints friendly message", func(t *testing.T) {
		store := setupTestStore(t)

		var buf bytes.Buffer
		require.NoError(t, ListArtifacts(ctx, store, OutputFormatDefault, nil, &buf))
		assert.Contains(t, buf.String(), "No artifacts found for case 'test-case'")
	})

	t.Run("table output includes type and count", func(t *testing.T) {
		store := setupTestStore(t)
		saveArtifact(t, store, blackboard.TypeWebHistory, "file-1", time.Now().UnixMilli())

		var buf bytes.Buffer
		require.NoError(t, ListArtifacts(ctx, store, OutputFormatDefault, nil, &buf))
		assert.Contains(t, buf.String(), "TSK_WEB_HISTORY")
		assert.Contains(t, buf.String(), "1 artifact found")
	})
}

func TestGetArtifact(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches by full UUID", func(t *testing.T) {
		store := setupTestStore(t)
		a := saveArtifact(t, store, blackboard.TypeWebHistory, "file-1", 1000)

		var buf bytes.Buffer
		require.NoError(t, GetArtifact(ctx, store, a.ID, &buf))

		var got blackboard.Artifact
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, a.ID, got.ID)
	})

	t.Run("fetches by unique short prefix", func(t *testing.T) {
		store := setupTestStore(t)
		a := saveArtifact(t, store, blackboard.TypeWebHistory, "file-1", 1000)

		var buf bytes.Buffer
		require.NoError(t, GetArtifact(ctx, store, a.ID[:8], &buf))
		assert.Contains(t, buf.String(), a.ID)
	})

	t.Run("rejects too-short prefix", func(t *testing.T) {
		store := setupTestStore(t)

		err := GetArtifact(ctx, store, "ab", &bytes.Buffer{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6 characters")
	})

	t.Run("not found", func(t *testing.T) {
		store := setupTestStore(t)

		err := GetArtifact(ctx, store, uuid.New().String(), &bytes.Buffer{})
		assert.True(t, IsNotFound(err))
	})
}

func TestFormatTimeline(t *testing.T) {
	t.Run("renders events with count", func(t *testing.T) {
		events := []timeline.Event{
			{
				ArtifactID:  uuid.New().String(),
				EventType:   "TSK_WEB_HISTORY/TSK_DATETIME_ACCESSED",
				TimeMs:      1700000000000,
				Description: "TSK_WEB_HISTORY: https://example.com",
			},
		}

		var buf bytes.Buffer
		n := FormatTimeline(&buf, events, "test-case")
		assert.Equal(t, 1, n)
		assert.Contains(t, buf.String(), "TSK_WEB_HISTORY/TSK_DATETIME_ACCESSED")
		assert.Contains(t, buf.String(), "1 event found")
	})

	t.Run("empty timeline prints friendly message", func(t *testing.T) {
		var buf bytes.Buffer
		n := FormatTimeline(&buf, nil, "test-case")
		assert.Equal(t, 0, n)
		assert.Contains(t, buf.String(), "No timeline events found")
	})
}
