package initcond

import "math/rand"

// rngFromSeed returns a deterministic *rand.Rand seeded verbatim from seed;
// unlike a zero-value Config, a seed of 0 is a legitimate, meaningful seed
// here (Config.Validate rejects nothing about Seed).
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed via a SplitMix64-style avalanche finalizer, giving well-distributed,
// uncorrelated seeds for sibling streams derived from the same parent.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG returns an independent deterministic RNG stream identified by
// stream, derived from base. Used to hand each of a scenario's
// sub-populations (two_square's two clouds, galaxy_collision's two disks)
// its own stream, so one population's draws do not depend on how many
// draws the other made.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	parent := base.Int63()
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}
