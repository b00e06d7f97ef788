package service

import "errors"

// Handler-recoverable failures. All but ErrPersistence are answered with a
// short notice and a re-rendered menu.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrStaleReference  = errors.New("stale task reference")
	ErrPersistence     = errors.New("persistence failure")
)
