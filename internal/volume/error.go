package volume

import "errors"

// ErrPoolUnset is an error that occurs when a volume path is requested
// without a disk pool.
var ErrPoolUnset = errors.New("disk pool is not set")
