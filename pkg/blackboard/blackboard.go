package blackboard

import (
	"context"
	"errors"
	"sync"
)

// CaseStore is the persistence collaborator the blackboard posts through.
// The canonical implementation is internal/casedb.Store, but any store
// satisfying this contract works (tests use in-memory doubles).
//
// The blackboard serializes every call into the store, so implementations
// never see two post sequences interleaved and their notification fan-out
// need not be reentrant-safe.
type CaseStore interface {
	// AddTimelineEvents derives the timeline events for an artifact and
	// durably stores them. Artifacts that derive no events succeed with
	// nothing written.
	AddTimelineEvents(ctx context.Context, artifact *Artifact) error

	// AddArtifactType registers a new artifact type. Returns ErrTypeExists
	// if the type name is already registered.
	AddArtifactType(ctx context.Context, typeName, displayName string) (ArtifactType, error)

	// GetArtifactType looks up an artifact type by name. Returns
	// ErrTypeNotFound if it has not been registered.
	GetArtifactType(ctx context.Context, typeName string) (ArtifactType, error)

	// AddAttributeType registers a new attribute type. Returns
	// ErrTypeExists if the type name is already registered.
	AddAttributeType(ctx context.Context, typeName string, valueType ValueType, displayName string) (AttributeType, error)

	// GetAttributeType looks up an attribute type by name. Returns
	// ErrTypeNotFound if it has not been registered.
	GetAttributeType(ctx context.Context, typeName string) (AttributeType, error)

	// PublishPostedEvent broadcasts a posted event to subscribers.
	// Delivery and ordering guarantees are the store's concern.
	PublishPostedEvent(ctx context.Context, event *ArtifactsPostedEvent) error
}

// Blackboard is the posting gateway. It is safe for concurrent use from
// multiple goroutines: one exclusive lock covers the entire body of every
// mutating operation, so posts, type registrations, and Close are fully
// serialized relative to each other.
type Blackboard struct {
	mu     sync.Mutex
	store  CaseStore
	closed bool
}

// New constructs an open blackboard bound to the given case store.
func New(store CaseStore) *Blackboard {
	return &Blackboard{store: store}
}

// PostArtifact posts a single artifact. The artifact should be complete
// (all attributes added) before being posted. Posting derives and persists
// the artifact's timeline events, then broadcasts an ArtifactsPostedEvent
// announcing it.
//
// If derivation fails, a *DerivationError is returned and nothing is
// broadcast: an artifact whose derived records could not be persisted is
// never announced as ready. If the broadcast fails, a *NotificationError
// is returned; the timeline events are already persisted at that point.
func (b *Blackboard) PostArtifact(ctx context.Context, moduleName string, artifact *Artifact) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBlackboardClosed
	}

	if err := b.store.AddTimelineEvents(ctx, artifact); err != nil {
		return &DerivationError{ArtifactID: artifact.ID, Err: err}
	}

	event := NewArtifactsPostedEvent(moduleName, artifact.Type, []*Artifact{artifact})
	if err := b.store.PublishPostedEvent(ctx, event); err != nil {
		return &NotificationError{Err: err}
	}

	return nil
}

// PostArtifacts posts a batch of artifacts of the declared type. The type
// should match the artifacts, but is not checked.
//
// Artifacts are processed one by one with no atomicity across the batch:
// if any artifact's derivation fails, the whole batch aborts with a
// *DerivationError naming the offending artifact, earlier artifacts keep
// their persisted timeline events, and nothing is broadcast. If every
// derivation succeeds, a single ArtifactsPostedEvent covering the entire
// batch is broadcast once.
func (b *Blackboard) PostArtifacts(ctx context.Context, moduleName, artifactTypeName string, artifacts []*Artifact) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBlackboardClosed
	}

	// One at a time for now. Could batch these into a store transaction
	// if ingestion volume ever demands it.
	for _, artifact := range artifacts {
		if err := b.store.AddTimelineEvents(ctx, artifact); err != nil {
			return &DerivationError{ArtifactID: artifact.ID, Err: err}
		}
	}

	event := NewArtifactsPostedEvent(moduleName, artifactTypeName, artifacts)
	if err := b.store.PublishPostedEvent(ctx, event); err != nil {
		return &NotificationError{Err: err}
	}

	return nil
}

// GetOrAddArtifactType returns the artifact type with the given name,
// registering it first if it does not already exist. Use this to define
// custom artifact types; racing registrations of the same name all
// resolve to the same descriptor.
func (b *Blackboard) GetOrAddArtifactType(ctx context.Context, typeName, displayName string) (ArtifactType, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ArtifactType{}, ErrBlackboardClosed
	}

	t, err := b.store.AddArtifactType(ctx, typeName, displayName)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrTypeExists) {
		return ArtifactType{}, &TypeRegistrationError{Kind: "artifact", TypeName: typeName, Err: err}
	}

	t, err = b.store.GetArtifactType(ctx, typeName)
	if err != nil {
		return ArtifactType{}, &TypeRegistrationError{Kind: "artifact", TypeName: typeName, Err: err}
	}

	return t, nil
}

// GetOrAddAttributeType returns the attribute type with the given name,
// registering it first if it does not already exist. Use this to define
// custom attribute types.
func (b *Blackboard) GetOrAddAttributeType(ctx context.Context, typeName string, valueType ValueType, displayName string) (AttributeType, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return AttributeType{}, ErrBlackboardClosed
	}

	t, err := b.store.AddAttributeType(ctx, typeName, valueType, displayName)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrTypeExists) {
		return AttributeType{}, &TypeRegistrationError{Kind: "attribute", TypeName: typeName, Err: err}
	}

	t, err = b.store.GetAttributeType(ctx, typeName)
	if err != nil {
		return AttributeType{}, &TypeRegistrationError{Kind: "attribute", TypeName: typeName, Err: err}
	}

	return t, nil
}

// Close permanently closes the blackboard and drops its store reference.
// Implements io.Closer. Safe to call multiple times; every call returns
// nil. After Close, all posting and registration operations fail with
// ErrBlackboardClosed. Closing the blackboard does not close the
// underlying case store.
func (b *Blackboard) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.store = nil
	return nil
}
