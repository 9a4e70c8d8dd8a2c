// Package casedb implements the case store over Redis: artifact
// persistence, the artifact/attribute type registries, the timeline
// index, and the posted-event fan-out the blackboard broadcasts through.
package casedb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/codacy-badger/sleuthkit/internal/timeline"
	"github.com/codacy-badger/sleuthkit/pkg/blackboard"
)

// Store provides case-scoped Redis operations. All keys and channels are
// automatically namespaced with the case name. The store is thread-safe
// and can be used concurrently from multiple goroutines.
//
// Store satisfies blackboard.CaseStore.
type Store struct {
	rdb      *redis.Client
	caseName string
}

var _ blackboard.CaseStore = (*Store)(nil)

// NewStore creates a case store for the named case.
// All keys and channels are namespaced with the case name.
// Returns an error if caseName is empty.
func NewStore(redisOpts *redis.Options, caseName string) (*Store, error) {
	if caseName == "" {
		return nil, fmt.Errorf("case name cannot be empty")
	}

	return &Store{
		rdb:      redis.NewClient(redisOpts),
		caseName: caseName,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
// After calling Close(), the store should not be used.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// CaseName returns the case this store is scoped to.
func (s *Store) CaseName() string {
	return s.caseName
}

// SaveArtifact writes an artifact to Redis. Validates the artifact before
// writing. Saving does not post: the artifact is stored but no timeline
// events are derived and no notification goes out until it is posted
// through the blackboard.
//
// The artifact is stored as a Redis hash at tsk:{case}:artifact:{id}.
// This method is idempotent - writing the same artifact twice is safe.
func (s *Store) SaveArtifact(ctx context.Context, a *blackboard.Artifact) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("invalid artifact: %w", err)
	}

	hash, err := ArtifactToHash(a)
	if err != nil {
		return fmt.Errorf("failed to serialize artifact: %w", err)
	}

	key := ArtifactKey(s.caseName, a.ID)
	if err := s.rdb.HSet(ctx, key, hash).Err(); err != nil {
		return fmt.Errorf("failed to write artifact to Redis: %w", err)
	}

	return nil
}

// GetArtifact retrieves an artifact by ID.
// Returns (nil, redis.Nil) if the artifact doesn't exist.
// Use IsNotFound() to check for not-found errors.
func (s *Store) GetArtifact(ctx context.Context, artifactID string) (*blackboard.Artifact, error) {
	key := ArtifactKey(s.caseName, artifactID)

	hashData, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact from Redis: %w", err)
	}

	// HGetAll returns an empty map for non-existent keys
	if len(hashData) == 0 {
		return nil, redis.Nil
	}

	artifact, err := HashToArtifact(hashData)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize artifact: %w", err)
	}

	return artifact, nil
}

// ArtifactExists checks if an artifact exists without fetching it.
func (s *Store) ArtifactExists(ctx context.Context, artifactID string) (bool, error) {
	key := ArtifactKey(s.caseName, artifactID)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check artifact existence: %w", err)
	}
	return exists > 0, nil
}

// ScanArtifactIDs returns the IDs of all artifacts whose ID starts with
// the given prefix. An empty prefix matches every artifact in the case.
// Uses Redis SCAN to iterate without blocking the server.
func (s *Store) ScanArtifactIDs(ctx context.Context, prefix string) ([]string, error) {
	pattern := fmt.Sprintf("%s%s*", ArtifactKeyPrefix(s.caseName), prefix)
	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()

	var ids []string
	keyPrefix := ArtifactKeyPrefix(s.caseName)
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan artifacts: %w", err)
	}

	return ids, nil
}

// AddTimelineEvents derives the timeline events for an artifact and
// persists them to the case timeline ZSET, scored by event time.
// Artifacts that derive no events succeed with nothing written.
//
// Implements blackboard.CaseStore.
func (s *Store) AddTimelineEvents(ctx context.Context, artifact *blackboard.Artifact) error {
	events := timeline.EventsFromArtifact(artifact)
	if len(events) == 0 {
		return nil
	}

	members := make([]redis.Z, 0, len(events))
	for _, event := range events {
		eventJSON, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal timeline event: %w", err)
		}
		members = append(members, redis.Z{
			Score:  TimelineScore(event.TimeMs),
			Member: string(eventJSON),
		})
	}

	key := TimelineKey(s.caseName)
	if err := s.rdb.ZAdd(ctx, key, members...).Err(); err != nil {
		return fmt.Errorf("failed to write timeline events to Redis: %w", err)
	}

	return nil
}

// TimelineRange retrieves the timeline events in [fromMs, toMs],
// chronologically ordered. Pass 0 and -1 for an unbounded range.
func (s *Store) TimelineRange(ctx context.Context, fromMs, toMs int64) ([]timeline.Event, error) {
	max := "+inf"
	if toMs >= 0 {
		max = fmt.Sprintf("%d", toMs)
	}

	key := TimelineKey(s.caseName)
	members, err := s.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", fromMs),
		Max: max,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline from Redis: %w", err)
	}

	events := make([]timeline.Event, 0, len(members))
	for _, member := range members {
		var event timeline.Event
		if err := json.Unmarshal([]byte(member), &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal timeline event: %w", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// AddArtifactType registers an artifact type in the case registry.
// Registration races are settled by HSETNX: the loser gets
// blackboard.ErrTypeExists, exactly like a repeat registration.
//
// Implements blackboard.CaseStore.
func (s *Store) AddArtifactType(ctx context.Context, typeName, displayName string) (blackboard.ArtifactType, error) {
	t := blackboard.ArtifactType{Name: typeName, DisplayName: displayName}
	if err := t.Validate(); err != nil {
		return blackboard.ArtifactType{}, fmt.Errorf("invalid artifact type: %w", err)
	}

	descriptorJSON, err := json.Marshal(t)
	if err != nil {
		return blackboard.ArtifactType{}, fmt.Errorf("failed to marshal artifact type: %w", err)
	}

	key := ArtifactTypesKey(s.caseName)
	set, err := s.rdb.HSetNX(ctx, key, typeName, string(descriptorJSON)).Result()
	if err != nil {
		return blackboard.ArtifactType{}, fmt.Errorf("failed to write artifact type to Redis: %w", err)
	}
	if !set {
		return blackboard.ArtifactType{}, blackboard.ErrTypeExists
	}

	return t, nil
}

// GetArtifactType looks up an artifact type by name.
// Returns blackboard.ErrTypeNotFound if it has not been registered.
//
// Implements blackboard.CaseStore.
func (s *Store) GetArtifactType(ctx context.Context, typeName string) (blackboard.ArtifactType, error) {
	key := ArtifactTypesKey(s.caseName)
	descriptorJSON, err := s.rdb.HGet(ctx, key, typeName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return blackboard.ArtifactType{}, blackboard.ErrTypeNotFound
		}
		return blackboard.ArtifactType{}, fmt.Errorf("failed to read artifact type from Redis: %w", err)
	}

	var t blackboard.ArtifactType
	if err := json.Unmarshal([]byte(descriptorJSON), &t); err != nil {
		return blackboard.ArtifactType{}, fmt.Errorf("failed to unmarshal artifact type: %w", err)
	}

	return t, nil
}

// ListArtifactTypes returns every registered artifact type descriptor.
func (s *Store) ListArtifactTypes(ctx context.Context) ([]blackboard.ArtifactType, error) {
	key := ArtifactTypesKey(s.caseName)
	raw, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact types from Redis: %w", err)
	}

	types := make([]blackboard.ArtifactType, 0, len(raw))
	for name, descriptorJSON := range raw {
		var t blackboard.ArtifactType
		if err := json.Unmarshal([]byte(descriptorJSON), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal artifact type %q: %w", name, err)
		}
		types = append(types, t)
	}

	return types, nil
}

// AddAttributeType registers an attribute type in the case registry.
// Same HSETNX race handling as AddArtifactType.
//
// Implements blackboard.CaseStore.
func (s *Store) AddAttributeType(ctx context.Context, typeName string, valueType blackboard.ValueType, displayName string) (blackboard.AttributeType, error) {
	t := blackboard.AttributeType{Name: typeName, ValueType: valueType, DisplayName: displayName}
	if err := t.Validate(); err != nil {
		return blackboard.AttributeType{}, fmt.Errorf("invalid attribute type: %w", err)
	}

	descriptorJSON, err := json.Marshal(t)
	if err != nil {
		return blackboard.AttributeType{}, fmt.Errorf("failed to marshal attribute type: %w", err)
	}

	key := AttributeTypesKey(s.caseName)
	set, err := s.rdb.HSetNX(ctx, key, typeName, string(descriptorJSON)).Result()
	if err != nil {
		return blackboard.AttributeType{}, fmt.Errorf("failed to write attribute type to Redis: %w", err)
	}
	if !set {
		return blackboard.AttributeType{}, blackboard.ErrTypeExists
	}

	return t, nil
}

// GetAttributeType looks up an attribute type by name.
// Returns blackboard.ErrTypeNotFound if it has not been registered.
//
// Implements blackboard.CaseStore.
func (s *Store) GetAttributeType(ctx context.Context, typeName string) (blackboard.AttributeType, error) {
	key := AttributeTypesKey(s.caseName)
	descriptorJSON, err := s.rdb.HGet(ctx, key, typeName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return blackboard.AttributeType{}, blackboard.ErrTypeNotFound
		}
		return blackboard.AttributeType{}, fmt.Errorf("failed to read attribute type from Redis: %w", err)
	}

	var t blackboard.AttributeType
	if err := json.Unmarshal([]byte(descriptorJSON), &t); err != nil {
		return blackboard.AttributeType{}, fmt.Errorf("failed to unmarshal attribute type: %w", err)
	}

	return t, nil
}

// ListAttributeTypes returns every registered attribute type descriptor.
func (s *Store) ListAttributeTypes(ctx context.Context) ([]blackboard.AttributeType, error) {
	key := AttributeTypesKey(s.caseName)
	raw, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read attribute types from Redis: %w", err)
	}

	types := make([]blackboard.AttributeType, 0, len(raw))
	for name, descriptorJSON := range raw {
		var t blackboard.AttributeType
		if err := json.Unmarshal([]byte(descriptorJSON), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attribute type %q: %w", name, err)
		}
		types = append(types, t)
	}

	return types, nil
}

// SeedBuiltinTypes registers the built-in artifact and attribute type
// catalog. Types that already exist are left untouched, so seeding is
// idempotent and safe to run on every case open.
func (s *Store) SeedBuiltinTypes(ctx context.Context) error {
	for _, t := range blackboard.BuiltinArtifactTypes() {
		if _, err := s.AddArtifactType(ctx, t.Name, t.DisplayName); err != nil && !errors.Is(err, blackboard.ErrTypeExists) {
			return fmt.Errorf("failed to seed artifact type %q: %w", t.Name, err)
		}
	}

	for _, t := range blackboard.BuiltinAttributeTypes() {
		if _, err := s.AddAttributeType(ctx, t.Name, t.ValueType, t.DisplayName); err != nil && !errors.Is(err, blackboard.ErrTypeExists) {
			return fmt.Errorf("failed to seed attribute type %q: %w", t.Name, err)
		}
	}

	return nil
}

// PublishPostedEvent broadcasts a posted event to subscribers.
// Publishes the full event JSON to tsk:{case}:posted_events.
//
// Implements blackboard.CaseStore.
func (s *Store) PublishPostedEvent(ctx context.Context, event *blackboard.ArtifactsPostedEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal posted event: %w", err)
	}

	channel := PostedEventsChannel(s.caseName)
	if err := s.rdb.Publish(ctx, channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish posted event: %w", err)
	}

	return nil
}

// Subscription represents an active Pub/Sub subscription to posted
// events. Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *blackboard.ArtifactsPostedEvent
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of posted events.
// The channel is closed when the subscription is closed or the context is
// cancelled.
func (s *Subscription) Events() <-chan *blackboard.ArtifactsPostedEvent {
	return s.events
}

// Errors returns the channel of subscription errors.
// Errors include JSON unmarshaling failures and other non-fatal issues.
// The subscription continues after errors - messages are skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements
// io.Closer. Safe to call multiple times - subsequent calls are no-ops.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribePostedEvents subscribes to artifacts posted events for this
// case. Returns a Subscription delivering full event objects. Caller must
// call subscription.Close() when done. Context cancellation also stops
// the subscription.
//
// Events are delivered on a buffered channel (size 10) to prevent
// blocking. If the subscriber is too slow, events may be dropped by Redis
// Pub/Sub (at-most-once delivery).
func (s *Store) SubscribePostedEvents(ctx context.Context) (*Subscription, error) {
	channel := PostedEventsChannel(s.caseName)
	pubsub := s.rdb.Subscribe(ctx, channel)

	eventsChan := make(chan *blackboard.ArtifactsPostedEvent, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event blackboard.ArtifactsPostedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal posted event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error
// (redis.Nil). Use this to check if GetArtifact returned "not found".
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
