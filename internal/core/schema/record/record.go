// Package record defines the versioned record mapping shared by the
// validator and the migrator.
package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zeusync/schemaver/internal/core/schema/registry"
)

// VersionKey is the field carrying a record's schema version.
const VersionKey = "schema_version"

// DefaultVersion applies to records without a VersionKey field. Untagged
// records predate versioning and therefore have the version 1 shape.
const DefaultVersion = registry.V1

// Record maps field names to values.
type Record map[string]any

// Clone returns a shallow copy. Values are not deep-copied; the migrator only
// ever replaces top-level fields.
func (r Record) Clone() Record {
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether field is present, including when its value is nil.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// GetOr returns the field value, or fallback when the field is absent.
// A present nil value is returned as-is.
func (r Record) GetOr(field string, fallback any) any {
	if v, ok := r[field]; ok {
		return v
	}
	return fallback
}

// Version reads the schema version tag, returning DefaultVersion when the
// tag is absent. Integers, integral floats (as produced by JSON decoding) and
// decimal strings are accepted.
func (r Record) Version() (registry.Version, error) {
	raw, ok := r[VersionKey]
	if !ok {
		return DefaultVersion, nil
	}
	return ParseVersion(raw)
}

// SetVersion stamps the version tag.
func (r Record) SetVersion(v registry.Version) {
	r[VersionKey] = int(v)
}

// ParseVersion converts a tag value into a Version.
func ParseVersion(raw any) (registry.Version, error) {
	switch v := raw.(type) {
	case int:
		return registry.Version(v), nil
	case int8:
		return registry.Version(v), nil
	case int16:
		return registry.Version(v), nil
	case int32:
		return registry.Version(v), nil
	case int64:
		return registry.Version(v), nil
	case uint:
		if uint64(v) > math.MaxInt {
			return 0, fmt.Errorf("%w: %d is out of range", ErrInvalidVersionTag, v)
		}
		return registry.Version(v), nil
	case uint8:
		return registry.Version(v), nil
	case uint16:
		return registry.Version(v), nil
	case uint32:
		return registry.Version(v), nil
	case uint64:
		if uint64(v) > math.MaxInt {
			return 0, fmt.Errorf("%w: %d is out of range", ErrInvalidVersionTag, v)
		}
		return registry.Version(v), nil
	case float32:
		return parseFloatVersion(float64(v))
	case float64:
		return parseFloatVersion(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidVersionTag, v)
		}
		return registry.Version(n), nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidVersionTag, raw)
	}
}

func parseFloatVersion(f float64) (registry.Version, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidVersionTag, f)
	}
	// float64(math.MaxInt) rounds up to 2^63, which int cannot hold.
	if f < float64(math.MinInt) || f >= float64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %v is out of range", ErrInvalidVersionTag, f)
	}
	return registry.Version(int(f)), nil
}
