package generation

import "errors"

// ErrConfiguration marks a defect in the world configuration: a malformed
// rule table, a missing referenced biome or noise parameters that cannot
// produce a bounded field. It is never retried.
var ErrConfiguration = errors.New("configuration error")
