package bplus

import "errors"

// ErrNotFound is returned when a key or cursor target does not exist.
var ErrNotFound = errors.New("bplus: not found")

// ErrNoMem is returned when an allocation needed to complete an operation
// could not be obtained. The tree is left unchanged.
var ErrNoMem = errors.New("bplus: no memory")
