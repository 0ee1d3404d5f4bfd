// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package train

import (
	"math"

	"github.com/AleutianAI/AleutianML/pkg/logging"
	"github.com/AleutianAI/AleutianML/pkg/model"
)

// AlgorithmGIS identifies the Generalized Iterative Scaling trainer.
const AlgorithmGIS = "GIS"

// GISTrainer computes maxent parameters with Generalized Iterative
// Scaling: start from uniform weights, then repeatedly scale each active
// (predicate, outcome) weight by the log ratio of its observed expectation
// to its current model expectation, damped by the corpus slack constant.
//
// GIS requires sorted, duplicate-merged input so that per-event counts are
// exact, and converges for any feature set whose per-event feature mass is
// bounded by the slack constant.
type GISTrainer struct {
	iterations int
	log        *logging.Logger
}

// NewGISTrainer returns a GIS trainer running the given number of
// iterations.
func NewGISTrainer(iterations int, logger *logging.Logger) *GISTrainer {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if logger == nil {
		logger = logging.New(logging.Config{Quiet: true})
	}
	return &GISTrainer{iterations: iterations, log: logger}
}

// Algorithm returns "GIS".
func (g *GISTrainer) Algorithm() string { return AlgorithmGIS }

// SortAndMerge reports that GIS needs sorted, duplicate-merged input.
func (g *GISTrainer) SortAndMerge() bool { return true }

// Train runs iterative scaling over the index and returns the trained
// model. The computation is eager and single-threaded.
func (g *GISTrainer) Train(ix *model.Index) (*model.Model, error) {
	numOutcomes := len(ix.OutcomeLabels)
	numPreds := len(ix.PredLabels)

	value := func(event, pos int) float64 {
		if ix.Values == nil {
			return 1
		}
		return ix.Values[event][pos]
	}

	// Slack constant: the maximum total feature mass of any event. Scaling
	// updates are damped by 1/C so the exponential family stays bounded.
	slack := 0.0
	for e := range ix.Contexts {
		mass := 0.0
		for i := range ix.Contexts[e] {
			mass += value(e, i)
		}
		if mass > slack {
			slack = mass
		}
	}
	if slack == 0 {
		slack = 1
	}

	// Observed expectations per (predicate, outcome).
	observed := newTable(numPreds, numOutcomes)
	for e, ctx := range ix.Contexts {
		cnt := float64(ix.Counts[e])
		for i, pid := range ctx {
			observed[pid][ix.Outcomes[e]] += cnt * value(e, i)
		}
	}

	params := newTable(numPreds, numOutcomes)
	probs := make([]float64, numOutcomes)

	for iter := 1; iter <= g.iterations; iter++ {
		modelExp := newTable(numPreds, numOutcomes)
		loglik := 0.0

		for e, ctx := range ix.Contexts {
			for o := range probs {
				probs[o] = 0
			}
			for i, pid := range ctx {
				v := value(e, i)
				for o := 0; o < numOutcomes; o++ {
					probs[o] += params[pid][o] * v
				}
			}
			softmax(probs)

			cnt := float64(ix.Counts[e])
			loglik += cnt * math.Log(probs[ix.Outcomes[e]])
			for i, pid := range ctx {
				v := value(e, i)
				for o := 0; o < numOutcomes; o++ {
					modelExp[pid][o] += cnt * probs[o] * v
				}
			}
		}

		for pid := 0; pid < numPreds; pid++ {
			for o := 0; o < numOutcomes; o++ {
				if observed[pid][o] > 0 {
					params[pid][o] += math.Log(observed[pid][o]/modelExp[pid][o]) / slack
				}
			}
		}

		g.log.Debug("gis iteration", "iteration", iter, "loglikelihood", loglik)
	}

	// Only outcomes actually observed with a predicate become part of it;
	// unobserved pairs stay out of the model entirely.
	preds := make(map[string]*model.Predicate, numPreds)
	for pid, name := range ix.PredLabels {
		var outcomes []int
		var weights []float64
		for o := 0; o < numOutcomes; o++ {
			if observed[pid][o] > 0 {
				outcomes = append(outcomes, o)
				weights = append(weights, params[pid][o])
			}
		}
		preds[name] = &model.Predicate{Outcomes: outcomes, Params: weights}
	}

	labels := make([]string, len(ix.OutcomeLabels))
	copy(labels, ix.OutcomeLabels)

	return &model.Model{
		OutcomeLabels: labels,
		Predicates:    preds,
		Algorithm:     AlgorithmGIS,
	}, nil
}

func newTable(rows, cols int) [][]float64 {
	t := make([][]float64, rows)
	for i := range t {
		t[i] = make([]float64, cols)
	}
	return t
}

// softmax exponentiates and normalizes scores in place, shifting by the
// maximum for numeric stability.
func softmax(scores []float64) {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	sum := 0.0
	for i, s := range scores {
		scores[i] = math.Exp(s - maxScore)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
}
