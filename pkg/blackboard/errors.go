package blackboard

import (
	"errors"
	"fmt"
)

// Sentinel errors for the blackboard and its case store collaborator.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrBlackboardClosed indicates an operation was attempted after Close().
	// A closed blackboard stays closed; callers must not reuse it.
	ErrBlackboardClosed = errors.New("blackboard is closed")

	// ErrTypeExists is returned by a CaseStore when registering a type name
	// that is already registered. The blackboard treats it as a signal to
	// fall back to a lookup, so callers never see it from GetOrAdd methods.
	ErrTypeExists = errors.New("type already exists")

	// ErrTypeNotFound is returned by a CaseStore when looking up a type
	// name that has not been registered.
	ErrTypeNotFound = errors.New("type not found")
)

// DerivationError indicates that deriving or persisting timeline events
// for an artifact failed. No notification was broadcast: downstream
// consumers have not heard about this artifact, nor about any other
// artifact in the same batch.
type DerivationError struct {
	ArtifactID string // ID of the artifact whose derivation failed
	Err        error  // Underlying cause from the case store
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("failed to add timeline events for artifact %s: %v", e.ArtifactID, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }

// NotificationError indicates the case store failed to broadcast a posted
// event. Timeline events for the artifacts ARE already persisted at this
// point; derivation is not undone.
type NotificationError struct {
	Err error // Underlying cause from the case store
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to broadcast artifacts posted event: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// TypeRegistrationError indicates that registering a type failed and the
// exists-fallback lookup could not recover.
type TypeRegistrationError struct {
	Kind     string // "artifact" or "attribute"
	TypeName string // Name that failed to register
	Err      error  // Underlying cause
}

func (e *TypeRegistrationError) Error() string {
	return fmt.Sprintf("failed to get or add %s type %q: %v", e.Kind, e.TypeName, e.Err)
}

func (e *TypeRegistrationError) Unwrap() error { return e.Err }
