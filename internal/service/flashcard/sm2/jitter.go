package sm2

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// applyJitter multiplies an interval by a uniform random factor in
// [1−spread, 1+spread], rounds to the nearest day, and floors at 1. Jitter
// spreads due dates so cards reviewed together do not cluster on the same
// day forever. A nil rng or non-positive spread leaves the interval alone
// (still floored at 1).
func applyJitter(intervalDays int, spread float64, rng *rand.Rand) int {
	if intervalDays < 1 {
		intervalDays = 1
	}
	if rng == nil || spread <= 0 {
		return intervalDays
	}

	factor := 1 - spread + rng.Float64()*2*spread
	jittered := int(math.Round(float64(intervalDays) * factor))
	if jittered < 1 {
		return 1
	}
	return jittered
}

// JitterSeed derives a deterministic seed from the card identity, the review
// moment and the card state using FNV-1a. Seeding the jitter source this way
// keeps a single review reproducible while still spreading distinct cards
// apart — two cards reviewed in the same second with identical state must not
// draw the same jitter, or they stay clustered forever.
func JitterSeed(cardID uuid.UUID, now time.Time, repetitions int, easeFactor float64) int64 {
	h := fnv.New64a()
	h.Write(cardID[:])
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(now.Unix()))
	h.Write(b)
	binary.LittleEndian.PutUint64(b, uint64(repetitions))
	h.Write(b)
	binary.LittleEndian.PutUint64(b, math.Float64bits(easeFactor))
	h.Write(b)
	return int64(h.Sum64())
}
