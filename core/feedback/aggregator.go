package feedback

import "sort"

type (
	// FeatureTally is the per-feature sentiment breakdown. Recomputed on every
	// read, never persisted.
	FeatureTally struct {
		FeatureName string `json:"feature_name"`
		Total       int    `json:"total"`
		Positive    int    `json:"positive"`
		Negative    int    `json:"negative"`
		Neutral     int    `json:"neutral"`
	}

	// Stats are the overall feedback counters shown at the top of the screen.
	Stats struct {
		Total     int            `json:"total"`
		ByFeature map[string]int `json:"by_feature"`
		ByOption  map[string]int `json:"by_option"`
	}
)

// Breakdown tallies records per feature, classifying each option through the
// lexicon with unrecognized options folded to neutral. Tallies come back
// sorted by total descending; equal totals keep the order in which their
// feature first appeared in the input.
func Breakdown(records []Record) []FeatureTally {
	byFeature := make(map[string]int, len(records)) // feature -> index in tallies
	tallies := make([]FeatureTally, 0, len(records))

	for _, rec := range records {
		i, ok := byFeature[rec.FeatureName]
		if !ok {
			i = len(tallies)
			byFeature[rec.FeatureName] = i
			tallies = append(tallies, FeatureTally{FeatureName: rec.FeatureName})
		}
		tallies[i].Total++
		switch FoldUnrecognized(ClassifyOption(rec.SelectedOption)) {
		case SentimentPositive:
			tallies[i].Positive++
		case SentimentNegative:
			tallies[i].Negative++
		default:
			tallies[i].Neutral++
		}
	}

	sort.SliceStable(tallies, func(i, j int) bool { return tallies[i].Total > tallies[j].Total })
	return tallies
}

// ComputeStats counts records overall, per feature and per raw option.
func ComputeStats(records []Record) Stats {
	stats := Stats{
		Total:     len(records),
		ByFeature: make(map[string]int),
		ByOption:  make(map[string]int),
	}
	for _, rec := range records {
		stats.ByFeature[rec.FeatureName]++
		stats.ByOption[rec.SelectedOption]++
	}
	return stats
}
