// Package compute serves a CPU bound summation off a bounded worker pool.
package compute

// DefaultLimit is the upper bound summed by the /compute endpoint.
const DefaultLimit int64 = 10_000_000

// HeavyComputation returns 1 + 2 + ... + limit using a plain loop, keeping the
// CPU busy on purpose.
func HeavyComputation(limit int64) int64 {
	var result int64
	for i := int64(1); i <= limit; i++ {
		result += i
	}
	return result
}
