package user

import "errors"

var (
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidRole   = errors.New("role must be member or admin")
)
