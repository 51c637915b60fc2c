package record

import "errors"

var (
	ErrInvalidVersionTag = errors.New("invalid schema version tag")
)
