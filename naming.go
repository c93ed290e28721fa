package toolform

import (
	"strconv"
	"sync/atomic"
)

// NameAllocator issues process-unique, monotonically increasing identifiers
// for dynamically defined models and callables. It is safe for concurrent
// use; identifiers are never reclaimed or reused. Construct one explicitly
// with NewNameAllocator and inject it where anonymous names are needed
// instead of relying on ambient module state.
type NameAllocator struct {
	prefix string
	n      atomic.Uint64
}

// NewNameAllocator returns an allocator whose identifiers carry the given
// prefix (for example "Model").
func NewNameAllocator(prefix string) *NameAllocator {
	return &NameAllocator{prefix: prefix}
}

// Next returns the next identifier, e.g. "Model1", "Model2", ...
func (a *NameAllocator) Next() string {
	return a.prefix + strconv.FormatUint(a.n.Add(1), 10)
}
