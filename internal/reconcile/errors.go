package reconcile

import "errors"

// ErrInvalidRule indicates a rule that cannot be applied as declared.
var ErrInvalidRule = errors.New("invalid rule")
