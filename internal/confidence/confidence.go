// Package confidence implements the fixed confidence tables and
// aggregation rules spec'd for each rule layer's outcomes.
package confidence

import "github.com/complior/engine/internal/models"

type tableEntry struct {
	confidence float64
	level      models.ConfidenceLevel
}

// For returns the ConfidenceRecord for a single CheckResult, or nil for
// skip results (which carry no confidence record).
func For(cr models.CheckResult) *models.ConfidenceRecord {
	entry, ok := lookup(cr)
	if !ok {
		return nil
	}
	return &models.ConfidenceRecord{
		Layer:        cr.Layer,
		Confidence:   entry.confidence,
		Level:        entry.level,
		ObligationID: cr.ObligationID,
	}
}

func lookup(cr models.CheckResult) (tableEntry, bool) {
	if cr.Kind == models.CheckSkip {
		return tableEntry{}, false
	}

	switch cr.Layer {
	case "L1":
		if cr.Kind == models.CheckPass {
			return tableEntry{95, models.LevelPass}, true
		}
		return tableEntry{98, models.LevelFail}, true

	case "L2":
		switch {
		case cr.Kind == models.CheckPass:
			return tableEntry{95, models.LevelPass}, true
		case cr.Severity == models.SeverityMedium:
			// PARTIAL: some but not all required sections matched.
			return tableEntry{75, models.LevelLikelyPass}, true
		default:
			// EMPTY: zero headings, blank content, or no sections matched at all.
			return tableEntry{95, models.LevelFail}, true
		}

	case "L3":
		switch {
		case cr.Severity == models.SeverityCritical:
			return tableEntry{99, models.LevelFail}, true
		case cr.Kind == models.CheckPass:
			return tableEntry{80, models.LevelLikelyPass}, true
		default:
			return tableEntry{80, models.LevelLikelyFail}, true
		}

	case "L4":
		isNegative := cr.Kind == models.CheckFail && !isNotFound(cr)
		switch {
		case isNegative:
			return tableEntry{80, models.LevelLikelyFail}, true
		case cr.Kind == models.CheckPass:
			return tableEntry{75, models.LevelLikelyPass}, true
		case isNotFound(cr) && cr.Severity != "":
			return tableEntry{80, models.LevelLikelyFail}, true
		default:
			return tableEntry{70, models.LevelLikelyPass}, true
		}
	}

	return tableEntry{}, false
}

func isNotFound(cr models.CheckResult) bool {
	return len(cr.CheckID) > 10 && cr.CheckID[len(cr.CheckID)-9:] == "not-found"
}

var layerWeights = map[string]float64{
	"L1": 1.0,
	"L2": 0.95,
	"L3": 0.85,
	"L4": 0.70,
}

// Aggregate computes the weighted-mean confidence and majority-direction
// level across a set of ConfidenceRecords.
func Aggregate(records []models.ConfidenceRecord, kinds []models.CheckResultKind) (float64, models.ConfidenceLevel) {
	if len(records) == 0 {
		return 0, models.LevelUncertain
	}

	var weightedSum, weightTotal float64
	var passSide, failSide int
	for i, r := range records {
		w := layerWeights[r.Layer]
		weightedSum += r.Confidence * w
		weightTotal += w

		if i < len(kinds) {
			if kinds[i] == models.CheckPass {
				passSide++
			} else if kinds[i] == models.CheckFail {
				failSide++
			}
		}
	}

	var aggConfidence float64
	if weightTotal > 0 {
		aggConfidence = weightedSum / weightTotal
	}

	total := passSide + failSide
	if total == 0 {
		return aggConfidence, levelFromConfidence(aggConfidence, true)
	}

	passRatio := float64(passSide) / float64(total)
	failRatio := float64(failSide) / float64(total)

	if passSide > 0 && failSide > 0 && passRatio <= 0.70 && failRatio <= 0.70 {
		return aggConfidence, models.LevelUncertain
	}

	return aggConfidence, levelFromConfidence(aggConfidence, passSide >= failSide)
}

func levelFromConfidence(confidence float64, passDirection bool) models.ConfidenceLevel {
	if passDirection {
		switch {
		case confidence >= 95:
			return models.LevelPass
		case confidence >= 70:
			return models.LevelLikelyPass
		default:
			return models.LevelUncertain
		}
	}
	switch {
	case confidence >= 95:
		return models.LevelFail
	case confidence >= 70:
		return models.LevelLikelyFail
	default:
		return models.LevelUncertain
	}
}
