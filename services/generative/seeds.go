package generative

import (
	"math/rand/v2"
	"time"
)

const defaultSeedStride = 7919

// SeedSource derives per-variant seeds as timestamp + index*stride + salt.
// Seeds are unique within one call; repeated calls move with the clock.
type SeedSource struct {
	now    func() time.Time
	stride int64
	salt   int64
}

func NewSeedSource() *SeedSource {
	return &SeedSource{
		now:    time.Now,
		stride: defaultSeedStride,
		salt:   rand.Int64N(1_000_000),
	}
}

// NewFixedSeedSource pins the clock and salt, for deterministic output.
func NewFixedSeedSource(now func() time.Time, stride, salt int64) *SeedSource {
	if stride <= 0 {
		stride = defaultSeedStride
	}
	return &SeedSource{now: now, stride: stride, salt: salt}
}

// Seeds returns n distinct seeds.
func (s *SeedSource) Seeds(n int) []int64 {
	base := s.now().UnixMilli()
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = base + int64(i)*s.stride + s.salt
	}
	return seeds
}
