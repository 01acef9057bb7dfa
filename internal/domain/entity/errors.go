package entity

import "errors"

// Errors returned by the docking model. Callers match them with errors.Is;
// the wrapped message carries the offending id or index.
var (
	// ErrDuplicateID is returned when a live panel already uses the id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrMissingReference is returned when a referenced panel or group does not exist.
	ErrMissingReference = errors.New("missing reference")

	// ErrConflictingOptions is returned when mutually exclusive options are combined.
	ErrConflictingOptions = errors.New("conflicting options")

	// ErrUnknownComponent is returned when no renderer is registered for a component name.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrInvalidLayout is returned when a serialized layout fails structural validation.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrInvalidLocation is returned for out-of-range indexes and unaddressable locations.
	ErrInvalidLocation = errors.New("invalid location")
)
