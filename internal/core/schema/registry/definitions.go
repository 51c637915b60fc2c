package registry

const (
	V1 Version = 1
	V2 Version = 2
	V3 Version = 3
)

func text(name string) FieldSpec { return FieldSpec{Name: name, Type: TypeText} }

func nullableText(name string) FieldSpec {
	return FieldSpec{Name: name, Type: TypeText, Nullable: true}
}

// builtinDefinitions is the extension point for new schema versions. Each
// version must keep every required field of the previous one.
func builtinDefinitions() []*Definition {
	return []*Definition{
		{
			Version:        V1,
			RequiredFields: []string{"id", "name", "created_at"},
			Fields: []FieldSpec{
				text("id"),
				text("name"),
				text("created_at"),
			},
		},
		{
			Version:        V2,
			RequiredFields: []string{"id", "name", "email", "created_at", "updated_at"},
			Fields: []FieldSpec{
				text("id"),
				text("name"),
				nullableText("email"),
				text("created_at"),
				text("updated_at"),
			},
		},
		{
			Version:        V3,
			RequiredFields: []string{"id", "name", "email", "phone", "created_at", "updated_at"},
			Fields: []FieldSpec{
				text("id"),
				text("name"),
				nullableText("email"),
				nullableText("phone"),
				text("created_at"),
				text("updated_at"),
			},
		},
	}
}
