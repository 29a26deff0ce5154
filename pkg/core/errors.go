package core

import "errors"

var (
	// ErrPathNotFound is returned when a configured path does not resolve against a state
	ErrPathNotFound = errors.New("path not found")

	// ErrEmptyTrajectory is returned when there is no episode or state to read from
	ErrEmptyTrajectory = errors.New("empty trajectory")

	// ErrShapeMismatch is returned when extracted data does not have the expected shape
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidOptions is returned when render options or simulation metadata are unusable
	ErrInvalidOptions = errors.New("invalid render options")

	// ErrIO is returned when an output file cannot be written
	ErrIO = errors.New("output write failed")
)
