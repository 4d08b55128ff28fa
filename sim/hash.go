package sim

// hash32 mixes 32-bit input into a well-distributed 32-bit output.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash3 returns a stable hash of a seed and two counters. The particle pass
// uses it so that death rolls do not depend on worker scheduling.
func hash3(seed uint64, a uint64, b uint32) uint32 {
	h := uint32(seed) ^ uint32(seed>>32)*0x27d4eb2f
	h ^= uint32(a) * 0x9e3779b1
	h ^= uint32(a>>32) * 0x85ebca6b
	h = hash32(h)
	h ^= b * 0xc2b2ae35
	return hash32(h)
}
