package primitive

import "errors"

// ErrConfiguration marks programmer errors caught at construction or
// registration time: a missing document, a sub-primitive registered
// without its root. These fail fast; nothing recovers them at runtime.
var ErrConfiguration = errors.New("primitive: invalid configuration")
