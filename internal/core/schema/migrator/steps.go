package migrator

import (
	"github.com/zeusync/schemaver/internal/core/schema/record"
	"github.com/zeusync/schemaver/internal/core/schema/registry"
)

// stepFunc turns a record shaped for one version into the next version's
// shape. It receives its own copy and may modify it.
type stepFunc func(rec record.Record) record.Record

type step struct {
	apply  stepFunc
	script string
}

// steps is keyed by the version a step starts from.
var steps = map[registry.Version]step{
	registry.V1: {apply: v1ToV2, script: scriptV1ToV2},
	registry.V2: {apply: v2ToV3, script: scriptV2ToV3},
}

func v1ToV2(rec record.Record) record.Record {
	rec["email"] = rec.GetOr("email", nil)
	rec["updated_at"] = rec.GetOr("updated_at", rec["created_at"])
	return rec
}

func v2ToV3(rec record.Record) record.Record {
	rec["phone"] = rec.GetOr("phone", nil)
	return rec
}

const scriptV1ToV2 = `-- Migration V1 → V2
ALTER TABLE users ADD COLUMN email VARCHAR(255);
ALTER TABLE users ADD COLUMN updated_at TIMESTAMP;
UPDATE users SET updated_at = created_at WHERE updated_at IS NULL;`

const scriptV2ToV3 = `-- Migration V2 → V3
ALTER TABLE users ADD COLUMN phone VARCHAR(50);`
