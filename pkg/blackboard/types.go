package blackboard

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Artifact represents a single finding posted to the blackboard.
// An artifact is immutable once posted: all attributes must be added
// before the artifact is handed to the blackboard.
type Artifact struct {
	ID          string      `json:"id"`            // UUID - unique identifier for this artifact
	SourceID    string      `json:"source_id"`     // Identifier of the object this artifact was drawn from (file, volume, image)
	Type        string      `json:"type"`          // Artifact type name (e.g. "TSK_WEB_HISTORY")
	Attributes  []Attribute `json:"attributes"`    // Typed key/value attributes describing the finding
	CreatedAtMs int64       `json:"created_at_ms"` // Unix timestamp in milliseconds when the artifact was created
}

// Attribute is a single typed value attached to an artifact.
// Exactly one value slot is meaningful, selected by ValueType.
// Use the New*Attribute constructors rather than building the struct by hand.
type Attribute struct {
	Type        string    `json:"type"`                   // Attribute type name (e.g. "TSK_URL")
	ValueType   ValueType `json:"value_type"`             // Which value slot carries the payload
	ValueString string    `json:"value_string,omitempty"` // String, JSON
	ValueInt    int32     `json:"value_int,omitempty"`    // Int32
	ValueLong   int64     `json:"value_long,omitempty"`   // Int64, DateTime (ms since epoch)
	ValueDouble float64   `json:"value_double,omitempty"` // Double
	ValueBytes  []byte    `json:"value_bytes,omitempty"`  // Bytes
}

// ValueType defines the kind of value an attribute carries.
type ValueType string

const (
	// ValueTypeString holds arbitrary text in ValueString.
	ValueTypeString ValueType = "string"

	// ValueTypeInt32 holds a 32-bit integer in ValueInt.
	ValueTypeInt32 ValueType = "int32"

	// ValueTypeInt64 holds a 64-bit integer in ValueLong.
	ValueTypeInt64 ValueType = "int64"

	// ValueTypeDouble holds a floating point value in ValueDouble.
	ValueTypeDouble ValueType = "double"

	// ValueTypeBytes holds raw bytes in ValueBytes.
	ValueTypeBytes ValueType = "bytes"

	// ValueTypeDateTime holds a Unix timestamp in milliseconds in ValueLong.
	// DateTime attributes are what the timeline derivation looks for.
	ValueTypeDateTime ValueType = "datetime"

	// ValueTypeJSON holds a JSON document in ValueString.
	ValueTypeJSON ValueType = "json"
)

// ArtifactType describes a registrable category of artifacts.
// Type names are unique within a case; registration is idempotent.
type ArtifactType struct {
	Name        string `json:"name"`         // Unique type name (e.g. "TSK_WEB_HISTORY")
	DisplayName string `json:"display_name"` // Human-readable name (e.g. "Web History")
}

// AttributeType describes a registrable category of attributes.
// Type names are unique within a case; registration is idempotent.
type AttributeType struct {
	Name        string    `json:"name"`         // Unique type name (e.g. "TSK_URL")
	ValueType   ValueType `json:"value_type"`   // Kind of value attributes of this type carry
	DisplayName string    `json:"display_name"` // Human-readable name (e.g. "URL")
}

// NewStringAttribute returns a string-valued attribute.
func NewStringAttribute(typeName, value string) Attribute {
	return Attribute{Type: typeName, ValueType: ValueTypeString, ValueString: value}
}

// NewInt32Attribute returns a 32-bit integer attribute.
func NewInt32Attribute(typeName string, value int32) Attribute {
	return Attribute{Type: typeName, ValueType: ValueTypeInt32, ValueInt: value}
}

// NewInt64Attribute returns a 64-bit integer attribute.
func NewInt64Attribute(typeName string, value int64) Attribute {
	return Attribute{Type: typeName, ValueType: ValueTypeInt64, ValueLong: value}
}

// NewDoubleAttribute returns a floating point attribute.
func NewDoubleAttribute(typeName string, value float64) Attribute {
	return Attribute{Type: typeName, ValueType: ValueTypeDouble, ValueDouble: value}
}

// NewBytesAttribute returns a raw bytes attribute.
func NewBytesAttribute(typeName string, value []byte) Attribute {
	return Attribute{Type: typeName, ValueType: ValueTypeBytes, ValueBytes: value}
}

// NewDateTimeAttribute returns a datetime attribute.
// The value is a Unix timestamp in milliseconds.
func NewDateTimeAttribute(typeName string, unixMs int64) Attribute {
	return Attribute{Type: typeName, ValueType: ValueTypeDateTime, ValueLong: unixMs}
}

// NewJSONAttribute returns a JSON-valued attribute. The value is marshalled
// into the string slot.
func NewJSONAttribute(typeName string, value any) (Attribute, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return Attribute{}, fmt.Errorf("failed to marshal JSON attribute value: %w", err)
	}
	return Attribute{Type: typeName, ValueType: ValueTypeJSON, ValueString: string(data)}, nil
}

// Validate checks if the Artifact has valid field values.
// Returns an error if any validation fails.
func (a *Artifact) Validate() error {
	if !isValidUUID(a.ID) {
		return fmt.Errorf("invalid artifact ID: not a valid UUID")
	}

	if a.Type == "" {
		return fmt.Errorf("artifact type cannot be empty")
	}

	if a.SourceID == "" {
		return fmt.Errorf("artifact source ID cannot be empty")
	}

	for i, attr := range a.Attributes {
		if err := attr.Validate(); err != nil {
			return fmt.Errorf("invalid attribute at index %d: %w", i, err)
		}
	}

	return nil
}

// Validate checks if the Attribute has valid field values.
func (at Attribute) Validate() error {
	if at.Type == "" {
		return fmt.Errorf("attribute type cannot be empty")
	}

	if err := at.ValueType.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks if the ValueType is a valid enum value.
func (vt ValueType) Validate() error {
	switch vt {
	case ValueTypeString, ValueTypeInt32, ValueTypeInt64, ValueTypeDouble,
		ValueTypeBytes, ValueTypeDateTime, ValueTypeJSON:
		return nil
	default:
		return fmt.Errorf("unknown value type: %q", vt)
	}
}

// Validate checks if the ArtifactType has valid field values.
func (t ArtifactType) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("artifact type name cannot be empty")
	}

	if t.DisplayName == "" {
		return fmt.Errorf("artifact type display name cannot be empty")
	}

	return nil
}

// Validate checks if the AttributeType has valid field values.
func (t AttributeType) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("attribute type name cannot be empty")
	}

	if err := t.ValueType.Validate(); err != nil {
		return fmt.Errorf("invalid value type: %w", err)
	}

	if t.DisplayName == "" {
		return fmt.Errorf("attribute type display name cannot be empty")
	}

	return nil
}

// isValidUUID checks if a string is a valid UUID format.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
