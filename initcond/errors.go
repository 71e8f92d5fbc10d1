package initcond

import "errors"

// ErrInvalidN is returned by every generator when n is not strictly
// positive; a generator's contract is to yield a finite, non-empty body
// sequence. GalaxyCollision also returns it for n = 1, since each of its
// two disks needs at least one body.
var ErrInvalidN = errors.New("initcond: n must be positive")
