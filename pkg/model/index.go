// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package model

// Index is the compact form of an indexed event stream: every surviving
// predicate and outcome reduced to an integer id, and one row per unique
// event. Indexers produce it; numeric trainers consume it.
//
// Row alignment invariant: Contexts, Outcomes, Counts, and (when present)
// Values all have one entry per unique event, at the same position.
type Index struct {
	// OutcomeLabels holds the unique outcome names; position is the
	// canonical outcome index.
	OutcomeLabels []string

	// PredLabels holds the unique predicate names that survived the
	// frequency cutoff; position is the predicate id.
	PredLabels []string

	// PredCounts holds the total observation count per predicate id.
	PredCounts []int

	// Contexts holds, per unique event, the ids of its active predicates.
	Contexts [][]int

	// Outcomes holds, per unique event, its outcome index.
	Outcomes []int

	// Counts holds, per unique event, how many times it was seen.
	Counts []int

	// Values holds, per unique event, one real value per context predicate.
	// Nil for binary training data.
	Values [][]float64
}

// NumEvents returns the total number of events represented, counting
// merged duplicates.
func (ix *Index) NumEvents() int {
	n := 0
	for _, c := range ix.Counts {
		n += c
	}
	return n
}

// NumUniqueEvents returns the number of distinct event rows.
func (ix *Index) NumUniqueEvents() int { return len(ix.Contexts) }
