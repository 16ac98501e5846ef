package core

import "errors"

// Container and wiring errors.
var (
	ErrOutOfRange   = errors.New("obsqueue: index out of range")
	ErrBadPosition  = errors.New("obsqueue: missing or invalid paste position")
	ErrNoContents   = errors.New("obsqueue: backend has no contents bound")
	ErrNoBackend    = errors.New("obsqueue: queue has no backend bound")
	ErrInvalidLabel = errors.New("obsqueue: invalid label (must be alphanumeric, start with letter)")
	ErrLabelTooLong = errors.New("obsqueue: label too long")
)
