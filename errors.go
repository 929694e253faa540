package iontrap

import "errors"

var (
	ErrInvalidAxisSpec   = errors.New("iontrap: invalid axis spec")
	ErrInvalidParameters = errors.New("iontrap: invalid parameters")
	ErrIndexOutOfBounds  = errors.New("iontrap: index out of bounds")
	ErrUnknownVariant    = errors.New("iontrap: unknown potential variant")
	ErrDimensionMismatch = errors.New("iontrap: dimension mismatch")
)
