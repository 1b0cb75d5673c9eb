package rr

import "sync/atomic"

// RR hands out indexes round-robin. The zero value is ready to use.
type RR struct{ n atomic.Uint64 }

func (r *RR) Next(mod int) int {
	if mod <= 1 {
		return 0
	}
	x := r.n.Add(1)
	return int((x - 1) % uint64(mod))
}
