// Package registry holds the closed set of schema versions a record can be
// validated against or upgraded through.
package registry

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Version identifies a schema shape. Known versions are fixed at build time.
type Version int

func (v Version) String() string { return strconv.Itoa(int(v)) }

type FieldType uint16

const (
	TypeText FieldType = iota + 1
)

func (t FieldType) String() string {
	switch t {
	case TypeText:
		return "string"
	default:
		return "unknown"
	}
}

// FieldSpec is the allowed type of one field. Nullable fields also accept an
// explicit nil, which is how fields introduced by later versions stay
// compatible with records that were upgraded without a value.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Nullable bool
}

// Accepts reports whether value satisfies the spec.
func (f FieldSpec) Accepts(value any) bool {
	if value == nil {
		return f.Nullable
	}
	switch f.Type {
	case TypeText:
		_, ok := value.(string)
		return ok
	default:
		return false
	}
}

// TypeName renders the accepted types, e.g. "string" or "string | null".
func (f FieldSpec) TypeName() string {
	if f.Nullable {
		return f.Type.String() + " | null"
	}
	return f.Type.String()
}

// Definition describes one schema version.
type Definition struct {
	Version        Version
	RequiredFields []string
	Fields         []FieldSpec
}

// Field returns the spec declared for name.
func (d *Definition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Fingerprint is a stable digest of the declared shape. Two definitions with
// the same required fields and field specs in the same order share it.
func (d *Definition) Fingerprint() uint64 {
	var b strings.Builder
	b.WriteString("required:")
	b.WriteString(strings.Join(d.RequiredFields, ","))
	for _, f := range d.Fields {
		b.WriteString(";")
		b.WriteString(f.Name)
		b.WriteString(":")
		b.WriteString(f.TypeName())
	}
	return xxhash.Sum64String(b.String())
}

// Registry is a read-only lookup table of definitions keyed by version.
type Registry struct {
	defs map[Version]*Definition
}

// New returns the registry with every known schema version.
func New() *Registry {
	defs := builtinDefinitions()
	r := &Registry{defs: make(map[Version]*Definition, len(defs))}
	for _, d := range defs {
		r.defs[d.Version] = d
	}
	return r
}

// DefinitionFor returns the definition for exactly v.
func (r *Registry) DefinitionFor(v Version) (*Definition, bool) {
	d, ok := r.defs[v]
	return d, ok
}

// Versions returns the known versions in ascending order.
func (r *Registry) Versions() []Version {
	out := make([]Version, 0, len(r.defs))
	for v := range r.defs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Latest returns the highest known version.
func (r *Registry) Latest() Version {
	var latest Version
	for v := range r.defs {
		if v > latest {
			latest = v
		}
	}
	return latest
}
