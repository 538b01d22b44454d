package store

import "errors"

// ErrCorrupt marks a persisted slot that could not be decoded.
var ErrCorrupt = errors.New("corrupt persisted state")
