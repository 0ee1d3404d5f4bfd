// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package maxent

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// comparablePredicate is a read-only projection of one trained predicate,
// used only for sorting and grouping during persistence. It does not own
// the underlying slices.
type comparablePredicate struct {
	name     string
	outcomes []int
	params   []float64
}

// pattern renders the outcome-index sequence in token form: one leading
// space before every index, e.g. " 0 1". Group tokens are the member count
// concatenated with this string, so the format is load-bearing.
func (p comparablePredicate) pattern() string {
	var sb strings.Builder
	for _, o := range p.outcomes {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(o))
	}
	return sb.String()
}

// compareOutcomes defines the total order over outcome-index sequences:
// shorter sequences first, then element-wise index comparison. Predicates
// with identical sequences compare equal here; sortPredicates breaks those
// ties by name so the serialized order never depends on map iteration.
func compareOutcomes(a, b []int) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// sortPredicates projects every predicate of the model and sorts the
// projections into the canonical serialization order.
func sortPredicates(m *model.Model) []comparablePredicate {
	sorted := make([]comparablePredicate, 0, len(m.Predicates))
	for name, pred := range m.Predicates {
		sorted = append(sorted, comparablePredicate{
			name:     name,
			outcomes: pred.Outcomes,
			params:   pred.Params,
		})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if c := compareOutcomes(sorted[i].outcomes, sorted[j].outcomes); c != 0 {
			return c < 0
		}
		return sorted[i].name < sorted[j].name
	})
	return sorted
}

// compressionGroup is a maximal run of sorted predicates sharing one
// outcome pattern. Only the member count and the first member's pattern
// are serialized; readers re-derive membership by consuming count
// predicate names per group.
type compressionGroup struct {
	count   int
	pattern string
}

// groupPredicates walks the sorted projections once, starting a new group
// whenever the outcome sequence changes. Every predicate lands in exactly
// one group and group order preserves sorted order.
func groupPredicates(sorted []comparablePredicate) []compressionGroup {
	var groups []compressionGroup
	for i, cp := range sorted {
		if i > 0 && compareOutcomes(sorted[i-1].outcomes, cp.outcomes) == 0 {
			groups[len(groups)-1].count++
			continue
		}
		groups = append(groups, compressionGroup{count: 1, pattern: cp.pattern()})
	}
	return groups
}
