package steering

import "errors"

var (
	ErrUnknownKind   = errors.New("unknown steering behavior")
	ErrInvalidParams = errors.New("invalid steering parameters")
)
