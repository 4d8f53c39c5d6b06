package generator

import "errors"

// ErrInvalidPolicy is returned when a policy cannot be satisfied.
var ErrInvalidPolicy = errors.New("invalid generation policy")
