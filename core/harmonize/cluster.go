package harmonize

import (
	"sort"

	"laus-core/config"
	"laus-core/seeds"
)

// clusterByDelta implements §4.5 step 4: sort survivors by query position,
// then split into a new cluster whenever consecutive seeds' diagonal delta
// exceeds MaxDeltaInCluster. Each cluster becomes one Chain's seed list.
func clusterByDelta(ss []seeds.Seed, cfg config.Config) [][]seeds.Seed {
	if len(ss) == 0 {
		return nil
	}
	sorted := make([]seeds.Seed, len(ss))
	copy(sorted, ss)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].QStart < sorted[j].QStart })

	var clusters [][]seeds.Seed
	current := []seeds.Seed{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		prevDiag := diagonal(sorted[i-1])
		curDiag := diagonal(sorted[i])
		delta := curDiag - prevDiag
		if delta < 0 {
			delta = -delta
		}
		if delta > float64(cfg.MaxDeltaInCluster) {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, sorted[i])
	}
	clusters = append(clusters, current)
	return clusters
}
