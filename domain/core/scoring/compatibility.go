// Package scoring computes the compatibility estimate for a set of
// reality-data items selected as fusion input. The score is a pure function
// of the selection multiset, so the live preview and the committed fusion
// always agree.
package scoring

import "creativerse-backend/domain/core/entities"

const (
	baseScore  = 100
	scoreFloor = 20
	scoreCeil  = 100

	crowdPenalty    = 5 // per item beyond the second
	unpairedPenalty = 5 // per type with a single representative

	audioVideoBonus = 10
	codeModelBonus  = 5
)

// Compatibility scores how well the given items combine, in [20,100].
// Mixed pairs complement each other (audio+video, code+model); lone type
// representatives and oversized selections cost points.
func Compatibility(items []entities.RealityData) int {
	types := make([]entities.DataType, len(items))
	for i, item := range items {
		types[i] = item.Type
	}
	return CompatibilityOfTypes(types)
}

// CompatibilityOfTypes scores a selection given only its type multiset
func CompatibilityOfTypes(types []entities.DataType) int {
	score := baseScore

	if extra := len(types) - 2; extra > 0 {
		score -= extra * crowdPenalty
	}

	counts := make(map[entities.DataType]int, len(types))
	for _, t := range types {
		counts[t]++
	}

	for _, n := range counts {
		if n == 1 {
			score -= unpairedPenalty
		}
	}

	if counts[entities.DataTypeAudio] > 0 && counts[entities.DataTypeVideo] > 0 {
		score += audioVideoBonus
	}
	if counts[entities.DataTypeCode] > 0 && counts[entities.DataTypeModel] > 0 {
		score += codeModelBonus
	}

	if score < scoreFloor {
		score = scoreFloor
	}
	if score > scoreCeil {
		score = scoreCeil
	}

	return score
}
