package ecs

import "errors"

var (
	// ErrSlotOutOfRange is returned by checked accessors for an index that was never allocated.
	ErrSlotOutOfRange = errors.New("ecs: slot index out of range")
	// ErrSlotFreed is returned by checked accessors for an index that has been freed.
	ErrSlotFreed = errors.New("ecs: slot has been freed")
)
