// Package config holds the named parameter bundle of §6: every tunable the
// Segmenter, StripOfConsideration and Harmonizer read, with the documented
// defaults and a structural Validate. Following the teacher's plain-struct
// configuration style (no cobra/viper: see DESIGN.md), Config is just a
// struct built with DefaultConfig and mutated by the caller before use.
package config

import "fmt"

// Config is the core's entire tunable surface (§6). External collaborators
// (a CLI, a server) build one, validate it, and pass it into
// laus-core/pipeline.Align.
type Config struct {
	// Resource policy (§5).
	MaxAmbiguity uint32 // drop SA-intervals larger than this

	// Segmenter (§4.3).
	MinIntervalSize uint32
	BreakOnN        bool
	DoReseed        bool

	// StripOfConsideration (§4.4).
	MinSeedLen           uint32
	Match                uint32 // STRIP_SIZE = (Match*queryLen - Gap) / Extend
	Gap                  uint32
	Extend               uint32
	MinSeeds             uint32
	MinAccumulatedLength float64 // fraction of query length

	// Harmonizer (§4.5).
	UseRansac            bool
	MaxRansacIters       uint32 // bounds the RANSAC sampling loop; supplements §4.5's "bounded number of iterations"
	MaxDeltaDist         float64
	MinDeltaDist         uint32
	MaxDeltaInCluster    uint32
	MinSoCTries          uint32
	MaxSoCTries          uint32
	ScoreTolerance       float64
	ScoreDiffTolerance   float64
	MaxEqualScoreLookahead uint32
	OptimisticGapCost    bool

	// Scheduling (§5).
	NumThreads uint32
}

// DefaultConfig returns the documented §6 defaults. Parameters §6 leaves
// "derived" or unspecified numerically (STRIP_SIZE's inputs, MaxDeltaDist,
// MaxDeltaInCluster, the SoC-tries/tolerance family, MaxRansacIters) are
// given conservative values appropriate to short/long-read seeding and
// should be treated as configuration, not as authoritative constants (§9
// Open Questions, re SV_PENALTY-adjacent thresholds).
func DefaultConfig() Config {
	return Config{
		MaxAmbiguity:    500,
		MinIntervalSize: 1,
		BreakOnN:        true,
		DoReseed:        false,

		MinSeedLen:           16,
		Match:                8,
		Gap:                  16,
		Extend:               1,
		MinSeeds:             0,
		MinAccumulatedLength: 0.0,

		UseRansac:              true,
		MaxRansacIters:         200,
		MaxDeltaDist:           0.1,
		MinDeltaDist:           16,
		MaxDeltaInCluster:      32,
		MinSoCTries:            2,
		MaxSoCTries:            20,
		ScoreTolerance:         0.1,
		ScoreDiffTolerance:     0.05,
		MaxEqualScoreLookahead: 5,
		OptimisticGapCost:      false,

		NumThreads: 1,
	}
}

// StripSize computes STRIP_SIZE = (Match*queryLen - Gap) / Extend for a
// query of the given length (§4.4, §6). A non-positive result is clamped
// to 1 so callers never divide by (or window over) zero.
func (c Config) StripSize(queryLen int) uint32 {
	if c.Extend == 0 {
		return 1
	}
	num := int64(c.Match)*int64(queryLen) - int64(c.Gap)
	if num <= 0 {
		return 1
	}
	size := uint64(num) / uint64(c.Extend)
	if size == 0 {
		return 1
	}
	return uint32(size)
}

// Validate reports structural mistakes in the configuration itself (a
// caller error, not a §7 InvariantViolation — those are reserved for bugs
// detected deep inside the core during a query, not for bad input the
// caller could have checked up front).
func (c Config) Validate() error {
	if c.MinSoCTries > c.MaxSoCTries {
		return fmt.Errorf("config: MinSoCTries (%d) > MaxSoCTries (%d)", c.MinSoCTries, c.MaxSoCTries)
	}
	if c.MaxAmbiguity == 0 {
		return fmt.Errorf("config: MaxAmbiguity must be > 0")
	}
	if c.Extend == 0 {
		return fmt.Errorf("config: Extend must be > 0")
	}
	if c.NumThreads == 0 {
		return fmt.Errorf("config: NumThreads must be > 0")
	}
	if c.MinAccumulatedLength < 0 || c.MinAccumulatedLength > 1 {
		return fmt.Errorf("config: MinAccumulatedLength must be in [0,1], got %f", c.MinAccumulatedLength)
	}
	return nil
}
