// Package watch streams posted-artifact notifications to a writer for the
// CLI watch command.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/codacy-badger/sleuthkit/internal/casedb"
	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

// OutputFormat specifies how streamed events are rendered.
type OutputFormat string

const (
	// OutputFormatDefault renders human-readable lines with timestamps
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON renders line-delimited JSON for programmatic use
	OutputFormatJSON OutputFormat = "json"
)

// streamedEvent is the JSON shape written in OutputFormatJSON. It wraps
// the raw event with a receive timestamp.
type streamedEvent struct {
	ReceivedAtMs int64                            `json:"received_at_ms"`
	Event        *blackboard.ArtifactsPostedEvent `json:"event"`
}

// StreamEvents subscribes to posted events on the store and writes each
// one to w until the context is cancelled. Subscription errors (e.g.
// malformed payloads) are reported to w as warnings; the stream continues.
// Returns nil when the context ends.
func StreamEvents(ctx context.Context, store *casedb.Store, format OutputFormat, w io.Writer) error {
	sub, err := store.SubscribePostedEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to posted events: %w", err)
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "⚠️  %v\n", err)

		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := writeEvent(w, format, event); err != nil {
				return err
			}
		}
	}
}

func writeEvent(w io.Writer, format OutputFormat, event *blackboard.ArtifactsPostedEvent) error {
	switch format {
	case OutputFormatJSON:
		data, err := json.Marshal(streamedEvent{
			ReceivedAtMs: time.Now().UnixMilli(),
			Event:        event,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err

	default:
		_, err := fmt.Fprintf(w, "[%s] 📌 %s posted %s %s\n",
			time.Now().UTC().Format("15:04:05"),
			event.ModuleName,
			countArtifacts(len(event.Artifacts)),
			event.ArtifactTypeName,
		)
		return err
	}
}

func countArtifacts(n int) string {
	if n == 1 {
		return "1 artifact of type"
	}
	return fmt.Sprintf("%d artifacts of type", n)
}
