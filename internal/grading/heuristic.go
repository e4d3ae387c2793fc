package grading

import (
	"strings"

	"github.com/checkdaily/checkdaily/internal/scenario"
)

const (
	heuristicBaseline = 60
	heuristicFloor    = 40
	heuristicCeiling  = 95
)

// HeuristicScore grades an answer without the external grader: baseline
// 60, plus the weight of each scenario keyword found in the answer
// (case-insensitive substring, each keyword counted once), clamped to
// [40,95]. Unknown scenario ids score the bare baseline.
func HeuristicScore(cat *scenario.Catalog, scenarioID, answer string) int {
	score := heuristicBaseline
	if sc, ok := cat.Get(scenarioID); ok {
		low := strings.ToLower(answer)
		for _, k := range sc.Keywords {
			if strings.Contains(low, strings.ToLower(k.Term)) {
				score += k.Weight
			}
		}
	}
	if score < heuristicFloor {
		return heuristicFloor
	}
	if score > heuristicCeiling {
		return heuristicCeiling
	}
	return score
}
