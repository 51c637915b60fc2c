package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionFor(t *testing.T) {
	r := New()

	for _, v := range []Version{V1, V2, V3} {
		d, ok := r.DefinitionFor(v)
		require.True(t, ok, "version %d", v)
		assert.Equal(t, v, d.Version)
	}

	for _, v := range []Version{0, -1, 4, 10} {
		_, ok := r.DefinitionFor(v)
		assert.False(t, ok, "version %d", v)
	}
}

func TestVersionsAndLatest(t *testing.T) {
	r := New()
	assert.Equal(t, []Version{V1, V2, V3}, r.Versions())
	assert.Equal(t, V3, r.Latest())
}

func TestRequiredFieldsHaveSpecs(t *testing.T) {
	r := New()
	for _, v := range r.Versions() {
		d, _ := r.DefinitionFor(v)
		for _, name := range d.RequiredFields {
			_, ok := d.Field(name)
			assert.True(t, ok, "v%d: %s has no field spec", v, name)
		}
	}
}

func TestRequiredFieldsGrowMonotonically(t *testing.T) {
	r := New()
	versions := r.Versions()
	for i := 1; i < len(versions); i++ {
		prev, _ := r.DefinitionFor(versions[i-1])
		cur, _ := r.DefinitionFor(versions[i])
		for _, name := range prev.RequiredFields {
			assert.Contains(t, cur.RequiredFields, name, "v%d dropped %s", cur.Version, name)
		}
	}

	v2, _ := r.DefinitionFor(V2)
	assert.Equal(t, []string{"id", "name", "email", "created_at", "updated_at"}, v2.RequiredFields)
	v3, _ := r.DefinitionFor(V3)
	assert.Equal(t, []string{"id", "name", "email", "phone", "created_at", "updated_at"}, v3.RequiredFields)
}

func TestFieldSpecAccepts(t *testing.T) {
	plain := FieldSpec{Name: "id", Type: TypeText}
	nullable := FieldSpec{Name: "email", Type: TypeText, Nullable: true}

	assert.True(t, plain.Accepts("x"))
	assert.False(t, plain.Accepts(nil))
	assert.False(t, plain.Accepts(1))

	assert.True(t, nullable.Accepts("a@b.c"))
	assert.True(t, nullable.Accepts(nil))
	assert.False(t, nullable.Accepts(3.5))

	assert.Equal(t, "string", plain.TypeName())
	assert.Equal(t, "string | null", nullable.TypeName())
}

func TestFingerprint(t *testing.T) {
	r := New()
	v1, _ := r.DefinitionFor(V1)
	v2, _ := r.DefinitionFor(V2)

	assert.Equal(t, v1.Fingerprint(), New().defs[V1].Fingerprint())
	assert.NotEqual(t, v1.Fingerprint(), v2.Fingerprint())

	same := &Definition{Version: 99, RequiredFields: v1.RequiredFields, Fields: v1.Fields}
	assert.Equal(t, v1.Fingerprint(), same.Fingerprint(), "version number is not part of the shape")
}
