// Package blackboard provides the posting gateway through which analysis
// modules publish their findings into a shared case store.
//
// # Overview
//
// The blackboard is the single serialization point of a multi-writer,
// multi-reader system. Many analysis modules run concurrently and post
// typed artifacts (web history entries, keyword hits, installed programs,
// and so on) into a shared case store. For every posted artifact the
// blackboard derives and persists its timeline events, then broadcasts a
// notification so downstream consumers can react. Both steps happen under
// a single exclusive lock, so the case store only ever sees one
// derive-then-notify sequence at a time, and a notification is never
// broadcast for an artifact whose derived records failed to persist.
//
// # Core Concepts
//
// Artifacts are immutable, fully-populated findings. Each carries an
// artifact type name and a set of typed attributes. The blackboard treats
// a posted artifact as opaque: it does not validate attribute completeness
// and never mutates the artifact.
//
// Artifact types and attribute types are named descriptors, unique by
// type name within a case. Registration is idempotent: registering a name
// that already exists returns the existing descriptor rather than failing.
//
// ArtifactsPostedEvent is the notification payload. It names the posting
// module, the declared artifact type, and the de-duplicated set of
// artifacts that were posted.
//
// # Lifecycle
//
// A blackboard is constructed open, bound to a CaseStore. Close moves it
// permanently to the closed state; there is no reopen. Close is idempotent
// and safe to call concurrently with in-flight posts - the lock guarantees
// a post either completes entirely before the close or fails with
// ErrBlackboardClosed.
//
// # Usage Example
//
//	bb := blackboard.New(store)
//	defer bb.Close()
//
//	webHistory, err := bb.GetOrAddArtifactType(ctx, "TSK_WEB_HISTORY", "Web History")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	artifact := &blackboard.Artifact{
//		ID:       uuid.New().String(),
//		SourceID: fileObjectID,
//		Type:     webHistory.Name,
//		Attributes: []blackboard.Attribute{
//			blackboard.NewStringAttribute("TSK_URL", "https://example.com"),
//			blackboard.NewDateTimeAttribute("TSK_DATETIME_ACCESSED", visitedAtMs),
//		},
//	}
//
//	if err := bb.PostArtifact(ctx, "RecentActivity", artifact); err != nil {
//		log.Fatal(err)
//	}
//
// # Design Principles
//
//   - Single lock: posting, type registration, and close are fully
//     serialized. This trades throughput for a race-free invariant and
//     means the store's notification fan-out need not be reentrant-safe.
//   - Persist before notify: timeline events are durably stored before any
//     consumer hears about the artifact.
//   - No retries, no background work: every failure is returned to the
//     caller synchronously, who decides whether to retry.
package blackboard
