package cache

import "errors"

// ErrDisabled is returned by Ping when the cache runs without Redis.
var ErrDisabled = errors.New("cache disabled")
