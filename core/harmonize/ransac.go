package harmonize

import (
	"math"

	"laus-core/config"
	"laus-core/seeds"
)

// xorshift64 is the generator that picks RANSAC's seed pairs; it is local to
// each ransacFilter call, so results are reproducible without math/rand's
// global state.
type xorshift64 uint64

func (x *xorshift64) next() uint64 {
	v := uint64(*x)
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	*x = xorshift64(v)
	return v
}

// ransacFilter implements §4.5 step 3: sample pairs of seeds, fit a
// diagonal, score by inlier count, and keep the best sample's inliers,
// discarding anything whose residual exceeds both the relative and
// absolute delta-distance floors.
//
// The "angle" §4.5 mentions for affine seeds from differing substitution
// cost only matters once gap-filling assigns per-base penalties; the
// core's seeds carry no such weighting, so the fitted line here is a pure
// constant-diagonal model.
func ransacFilter(ss []seeds.Seed, cfg config.Config) []seeds.Seed {
	if len(ss) < 2 {
		return ss
	}

	rng := xorshift64(0x9e3779b97f4a7c15 ^ uint64(len(ss)))
	if rng == 0 {
		rng = 1
	}

	bestDiagonal := diagonal(ss[0])
	bestInliers := -1

	maxDist := func(d float64) float64 {
		rel := math.Abs(d) * cfg.MaxDeltaDist
		floor := float64(cfg.MinDeltaDist)
		if rel > floor {
			return rel
		}
		return floor
	}

	iters := int(cfg.MaxRansacIters)
	if iters <= 0 {
		iters = 1
	}
	for it := 0; it < iters; it++ {
		i := int(rng.next() % uint64(len(ss)))
		j := int(rng.next() % uint64(len(ss)))
		if i == j {
			continue
		}
		d := (diagonal(ss[i]) + diagonal(ss[j])) / 2

		inliers := 0
		for _, s := range ss {
			delta := math.Abs(diagonal(s) - d)
			if delta <= maxDist(d) {
				inliers++
			}
		}
		if inliers > bestInliers {
			bestInliers = inliers
			bestDiagonal = d
		}
	}

	out := make([]seeds.Seed, 0, len(ss))
	for _, s := range ss {
		delta := math.Abs(diagonal(s) - bestDiagonal)
		if delta <= maxDist(bestDiagonal) {
			out = append(out, s)
		}
	}
	return out
}
