package assessment

import "pet-care-advisor/internal/knowledge"

// match evaluates every condition applicable to the species against the
// normalized symptom set. The match ratio is the weighted fraction of a
// condition's defining symptoms that are present. Conditions for other
// species are excluded entirely, never scored; conditions with zero matched
// symptoms are dropped. Pure function of the knowledge base and input.
func match(kb *knowledge.Base, species string, in symptomInput) []matchResult {
	present := make(map[string]bool, len(in.IDs))
	for _, id := range in.IDs {
		present[id] = true
	}

	var results []matchResult
	for _, cond := range kb.Conditions() {
		if !cond.AppliesTo(species) {
			continue
		}

		var matched, missing []string
		var matchedWeight float64
		for _, ds := range cond.Symptoms {
			if present[ds.ID] {
				matched = append(matched, ds.ID)
				matchedWeight += ds.Weight
			} else {
				missing = append(missing, ds.ID)
			}
		}
		if len(matched) == 0 {
			continue
		}

		results = append(results, matchResult{
			Condition: cond,
			Matched:   matched,
			Missing:   missing,
			Ratio:     matchedWeight / cond.TotalWeight(),
		})
	}
	return results
}
