package db

import "errors"

// ErrUnreachable marks a store that was configured but did not answer at
// startup.
var ErrUnreachable = errors.New("store unreachable")
