package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/schemaver/internal/core/schema/registry"
)

func TestVersionDefaultsToOne(t *testing.T) {
	v, err := Record{"id": "1"}.Version()
	require.NoError(t, err)
	assert.Equal(t, registry.V1, v)
	assert.Equal(t, DefaultVersion, v)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    registry.Version
		wantErr bool
	}{
		{"int", 2, 2, false},
		{"int64", int64(3), 3, false},
		{"uint8", uint8(1), 1, false},
		{"json number", float64(2), 2, false},
		{"string", " 3 ", 3, false},
		{"fractional", 2.5, 0, true},
		{"max int", math.MaxInt, math.MaxInt, false},
		{"uint64 max int", uint64(math.MaxInt), math.MaxInt, false},
		{"uint64 past max int", uint64(1 << 63), 0, true},
		{"uint64 max", uint64(math.MaxUint64), 0, true},
		{"uint past max int", uint(math.MaxUint), 0, true},
		{"huge float", 1e300, 0, true},
		{"huge negative float", -1e300, 0, true},
		{"float 2^63", float64(1 << 63), 0, true},
		{"float -2^63", float64(math.MinInt), math.MinInt, false},
		{"word", "two", 0, true},
		{"nil", nil, 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVersionTag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := Record{"id": "1", VersionKey: 1}
	cp := orig.Clone()
	cp["id"] = "2"
	cp.SetVersion(registry.V3)

	assert.Equal(t, "1", orig["id"])
	assert.Equal(t, 1, orig[VersionKey])
	assert.Equal(t, 3, cp[VersionKey])
}

func TestGetOrAndHas(t *testing.T) {
	r := Record{"email": nil, "name": "A"}

	assert.True(t, r.Has("email"))
	assert.False(t, r.Has("phone"))
	assert.Nil(t, r.GetOr("email", "fallback"), "present nil wins over fallback")
	assert.Equal(t, "fallback", r.GetOr("phone", "fallback"))
	assert.Equal(t, "A", r.GetOr("name", nil))
}
