// Package diag defines the sink that receives every non-fatal recovered
// condition the codec encounters: duplicate header variables, dropped
// or corrupt thumbnails, missing ENDSEC, unknown enum values, unknown
// entity types. The library never logs to a global logger or writes to
// stderr on its own; callers that want visibility supply a Sink.
package diag

// Sink receives one recovered condition at a time. Implementations must be
// safe to call from a single goroutine during a load/save call; the codec
// never calls a Sink concurrently.
type Sink interface {
	Warn(code string, detail string, fields map[string]interface{})
}

// Noop discards every condition. It is the default when a caller does not
// supply a Sink.
type Noop struct{}

func (Noop) Warn(code, detail string, fields map[string]interface{}) {}

// Condition codes reported through Sink.Warn. These are stable strings so
// callers can filter/route on them without depending on message text.
const (
	CodeDuplicateHeaderVar = "duplicate_header_var"
	CodeMissingEndsec      = "missing_endsec"
	CodeInvalidThumbnail   = "invalid_thumbnail"
	CodeUnknownEnumValue   = "unknown_enum_value"
	CodeUnknownEntityType  = "unknown_entity_type"
	CodeDanglingHandle     = "dangling_handle"
	CodeOrphanedOwner      = "orphaned_owner"
)
