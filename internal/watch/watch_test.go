package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codacy-badger/sleuthkit/internal/casedb"
	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

// syncWriter serializes writes so the stream goroutine and test assertions
// don't race.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func setupTestStore(t *testing.T) *casedb.Store {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store, err := casedb.NewStore(&redis.Options{Addr: mr.Addr()}, "test-case")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func postedEvent(moduleName string, n int) *blackboard.ArtifactsPostedEvent {
	artifacts := make([]*blackboard.Artifact, 0, n)
	for i := 0; i < n; i++ {
		artifacts = append(artifacts, &blackboard.Artifact{
			ID:       uuid.New().String(),
			SourceID: "file-1",
			Type:     blackboard.TypeWebHistory,
		})
	}
	return blackboard.NewArtifactsPostedEvent(moduleName, blackboard.TypeWebHistory, artifacts)
}

func waitForOutput(t *testing.T, w *syncWriter, substr string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if bytes.Contains([]byte(w.String()), []byte(substr)) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for output containing %q, got: %q", substr, w.String())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStreamEvents(t *testing.T) {
	t.Run("default format renders module and type", func(t *testing.T) {
		store := setupTestStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := &syncWriter{}
		done := make(chan error, 1)
		go func() {
			done <- StreamEvents(ctx, store, OutputFormatDefault, w)
		}()

		// Give the subscription a moment to establish before publishing.
		time.Sleep(50 * time.Millisecond)
		require.NoError(t, store.PublishPostedEvent(ctx, postedEvent("RecentActivity", 2)))

		waitForOutput(t, w, "RecentActivity posted 2 artifacts of type TSK_WEB_HISTORY")

		cancel()
		assert.NoError(t, <-done)
	})

	t.Run("json format round-trips the event", func(t *testing.T) {
		store := setupTestStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := &syncWriter{}
		done := make(chan error, 1)
		go func() {
			done <- StreamEvents(ctx, store, OutputFormatJSON, w)
		}()

		time.Sleep(50 * time.Millisecond)
		require.NoError(t, store.PublishPostedEvent(ctx, postedEvent("KeywordSearch", 1)))

		waitForOutput(t, w, "KeywordSearch")

		cancel()
		assert.NoError(t, <-done)

		var decoded streamedEvent
		require.NoError(t, json.Unmarshal([]byte(w.String()), &decoded))
		assert.Equal(t, "KeywordSearch", decoded.Event.ModuleName)
		assert.NotZero(t, decoded.ReceivedAtMs)
		assert.Len(t, decoded.Event.Artifacts, 1)
	})

	t.Run("returns nil on context cancellation", func(t *testing.T) {
		store := setupTestStore(t)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- StreamEvents(ctx, store, OutputFormatDefault, &syncWriter{})
		}()

		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("StreamEvents did not return after cancellation")
		}
	})
}
