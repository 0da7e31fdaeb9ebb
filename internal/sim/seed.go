package sim

import "github.com/pion/randutil"

// splitmix64: deterministic 64-bit mixer
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// streamSeed derives the seed of an independent stream (one per worker)
// from the run seed. Stream 0 is the run seed itself.
func streamSeed(seed int64, stream int) uint64 {
	if stream == 0 {
		return uint64(seed)
	}
	const mix uint64 = 0x9e3779b97f4a7c15
	return splitmix64(uint64(seed) ^ (uint64(stream) * mix))
}

// resolveSeed returns seed, or a random non-zero seed when seed is 0.
func resolveSeed(seed int64) (int64, error) {
	for seed == 0 {
		u, err := randutil.CryptoUint64()
		if err != nil {
			return 0, err
		}
		seed = int64(u >> 1)
	}
	return seed, nil
}
