package entity

import "errors"

var (
	// ErrInvalidConfig is returned when tuning values are out of range
	ErrInvalidConfig = errors.New("invalid config")
	// ErrMissingDependency is returned when a controller is built without a required collaborator
	ErrMissingDependency = errors.New("missing dependency")
)
