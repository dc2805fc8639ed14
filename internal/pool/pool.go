// Package pool provides bucketed sync.Pool instances for the scratch rows
// used while reading 16-bit planes. Buffers are organized by size class to
// minimize waste.
package pool

import "sync"

// Size classes for bucketed pools, in samples.
const (
	Size256 = 256
	Size1K  = 1024
	Size4K  = 4096
	Size16K = 16384
	Size64K = 65536
)

// bucketIndex returns the pool index for a given length.
func bucketIndex(n int) int {
	switch {
	case n <= Size256:
		return 0
	case n <= Size1K:
		return 1
	case n <= Size4K:
		return 2
	case n <= Size16K:
		return 3
	default:
		return 4
	}
}

var sizes = [5]int{Size256, Size1K, Size4K, Size16K, Size64K}

var pools [5]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]uint16, sz)
				return &b
			},
		}
	}
}

// GetUint16 returns a uint16 slice of the requested length from the pool.
// The returned slice may have a larger capacity and holds stale data.
// The caller must call PutUint16 when done.
func GetUint16(n int) []uint16 {
	bp := pools[bucketIndex(n)].Get().(*[]uint16)
	b := *bp
	if cap(b) < n {
		return make([]uint16, n)
	}
	return b[:n]
}

// PutUint16 returns a slice obtained from GetUint16 to the pool. Slices
// smaller than the smallest size class are dropped.
func PutUint16(b []uint16) {
	c := cap(b)
	if c < Size256 {
		return
	}
	// A buffer only serves requests up to its capacity, so file it under the
	// largest class it can fully satisfy.
	idx := bucketIndex(c)
	if c < sizes[idx] {
		idx--
	}
	b = b[:c]
	pools[idx].Put(&b)
}
