package favorite

import "errors"

var (
	ErrEmailRequired     = errors.New("user email is required")
	ErrArtworkIDRequired = errors.New("artwork id is required")
)
