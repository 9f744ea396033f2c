package analyses

import "errors"

var (
	ErrNotFound   = errors.New("analysis not found")
	ErrValidation = errors.New("validation error")
)
