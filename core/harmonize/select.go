package harmonize

import (
	"math"

	"laus-core/config"
	"laus-core/seeds"
	"laus-core/soc"
)

// Scored pairs a harmonized chain with the score of the strip it came
// from, since break-criteria operate on strip scores, not per-chain ones.
type Scored struct {
	Chain      seeds.Chain
	StripScore float64
}

// SelectChains implements §4.5 step 5: drains pq in priority order, running
// Harmonize on each strip, and stops once any break criterion fires:
//   - at least MinSoCTries strips have been tried and the next strip's
//     score has dropped more than ScoreTolerance below the best seen, or
//   - MaxSoCTries strips have been tried, or
//   - MaxEqualScoreLookahead consecutive strips fall within
//     ScoreDiffTolerance of each other (a plateau, unlikely to keep
//     improving the result).
//
// pq is drained destructively via PopBest.
func SelectChains(pq *soc.StripQueue, queryLen int, queryID string, cfg config.Config) ([]Scored, error) {
	var out []Scored
	tries := uint32(0)
	bestScore := math.Inf(-1)
	equalRun := uint32(0)
	var lastScore float64
	haveLast := false

	for {
		if tries >= cfg.MaxSoCTries {
			break
		}
		strip, ok := pq.PopBest()
		if !ok {
			break
		}
		tries++

		if tries > cfg.MinSoCTries && strip.Score < bestScore-cfg.ScoreTolerance {
			break
		}

		if haveLast && math.Abs(strip.Score-lastScore) <= cfg.ScoreDiffTolerance {
			equalRun++
		} else {
			equalRun = 0
		}
		lastScore = strip.Score
		haveLast = true
		if equalRun >= cfg.MaxEqualScoreLookahead {
			break
		}

		if strip.Score > bestScore {
			bestScore = strip.Score
		}

		chains, err := Harmonize(strip, queryLen, queryID, cfg)
		if err != nil {
			return out, err
		}
		for _, c := range chains {
			out = append(out, Scored{Chain: c, StripScore: strip.Score})
		}
	}
	return out, nil
}
