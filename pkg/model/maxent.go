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

import (
	"fmt"
	"math"
	"sort"
)

// Predicate holds the trained state of one named feature: the outcome
// indices it was observed with and one weight per outcome index.
//
// Outcomes and Params are index-aligned and always the same length. Outcome
// indices refer to positions in the owning Model's OutcomeLabels. The
// trainer does not guarantee the indices are sorted; they are treated as an
// ordered sequence everywhere, including by the codec's grouping.
type Predicate struct {
	Outcomes []int
	Params   []float64
}

// NewPredicate builds a predicate, enforcing the outcome/param alignment
// invariant.
func NewPredicate(outcomes []int, params []float64) (*Predicate, error) {
	if len(outcomes) != len(params) {
		return nil, fmt.Errorf("predicate outcome/param length mismatch: %d != %d",
			len(outcomes), len(params))
	}
	return &Predicate{Outcomes: outcomes, Params: params}, nil
}

// Model is a trained maximum-entropy classifier: an ordered outcome label
// space, a predicate table, and the identity of the algorithm that produced
// it. A Model is created once by a numeric trainer and never mutated
// afterward.
type Model struct {
	// OutcomeLabels holds the unique outcome names; a label's position is
	// the canonical outcome index used by every predicate. Always more than
	// one entry for a trainable model.
	OutcomeLabels []string

	// Predicates maps feature name to its trained predicate.
	Predicates map[string]*Predicate

	// Algorithm identifies the model family (for example "GIS").
	Algorithm string

	// Report carries provenance metadata accumulated during training.
	// It is not part of the persisted binary format.
	Report *TrainingReport
}

// NumOutcomes returns the size of the outcome label space.
func (m *Model) NumOutcomes() int { return len(m.OutcomeLabels) }

// NumPredicates returns the number of trained predicates.
func (m *Model) NumPredicates() int { return len(m.Predicates) }

// Eval scores the given context features and returns the per-outcome
// probability distribution, index-aligned with OutcomeLabels. Unknown
// features contribute nothing.
func (m *Model) Eval(context ...string) []float64 {
	scores := make([]float64, len(m.OutcomeLabels))
	for _, feature := range context {
		pred, ok := m.Predicates[feature]
		if !ok {
			continue
		}
		for i, oi := range pred.Outcomes {
			scores[oi] += pred.Params[i]
		}
	}
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s)
		sum += scores[i]
	}
	if sum > 0 {
		for i := range scores {
			scores[i] /= sum
		}
	}
	return scores
}

// BestOutcome returns the outcome label with the highest probability for
// the given context.
func (m *Model) BestOutcome(context ...string) string {
	probs := m.Eval(context...)
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return m.OutcomeLabels[best]
}

// PredicateNames returns the predicate names in lexical order. The codec
// does not rely on this; it exists for stable diagnostic output.
func (m *Model) PredicateNames() []string {
	names := make([]string, 0, len(m.Predicates))
	for name := range m.Predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
