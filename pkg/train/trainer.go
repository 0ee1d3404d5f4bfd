// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package train orchestrates maxent model training: configuration
// validation, event indexing, data-sufficiency gating, delegation to a
// numeric trainer, and provenance recording.
//
// The orchestration contract is strict. Validation runs before any
// indexing work. An index whose outcome label count is one or less is
// rejected before the numeric trainer is ever invoked. The event stream is
// wrapped in an integrity fingerprint so every trained model's report
// carries a corpus hash covering exactly the events indexing consumed.
// Errors are fatal to the call; no partial model is ever returned.
package train

import (
	"fmt"

	"github.com/AleutianAI/AleutianML/pkg/indexer"
	"github.com/AleutianAI/AleutianML/pkg/logging"
	"github.com/AleutianAI/AleutianML/pkg/model"
)

// NumericTrainer computes model parameters from an index. Implementations
// are one algorithm family each; the orchestrator stays concrete and
// algorithm-agnostic.
type NumericTrainer interface {
	// Train computes the trained model for the index.
	Train(ix *model.Index) (*model.Model, error)

	// SortAndMerge reports whether this trainer requires sorted,
	// duplicate-merged indexed input.
	SortAndMerge() bool

	// Algorithm returns the trainer's identity tag.
	Algorithm() string
}

// EventTrainer sequences one training run end to end. It is single-use and
// single-threaded: one stream, one index, one model. Independent runs may
// proceed concurrently as long as they share nothing.
type EventTrainer struct {
	params  *Parameters
	numeric NumericTrainer
	report  *model.TrainingReport
	log     *logging.Logger
}

// NewEventTrainer builds an orchestrator from training parameters,
// selecting the numeric trainer by the Algorithm parameter.
func NewEventTrainer(params *Parameters, logger *logging.Logger) (*EventTrainer, error) {
	if params == nil {
		params = NewParameters()
	}
	if logger == nil {
		logger = logging.New(logging.Config{Quiet: true})
	}

	algorithm := params.StringValue(ParamAlgorithm, AlgorithmGIS)
	var numeric NumericTrainer
	switch algorithm {
	case AlgorithmGIS:
		iterations, err := params.IntValue(ParamIterations, DefaultIterations)
		if err != nil {
			return nil, err
		}
		numeric = NewGISTrainer(iterations, logger)
	default:
		return nil, &model.ConfigError{
			Param:  ParamAlgorithm,
			Value:  algorithm,
			Reason: "must be GIS",
		}
	}
	return NewEventTrainerWith(numeric, params, logger), nil
}

// NewEventTrainerWith builds an orchestrator around a caller-supplied
// numeric trainer. This is the seam for alternative algorithm families.
func NewEventTrainerWith(numeric NumericTrainer, params *Parameters, logger *logging.Logger) *EventTrainer {
	if params == nil {
		params = NewParameters()
	}
	if logger == nil {
		logger = logging.New(logging.Config{Quiet: true})
	}
	return &EventTrainer{
		params:  params,
		numeric: numeric,
		report:  model.NewTrainingReport(),
		log:     logger,
	}
}

// Report returns the provenance report for this run. It is also attached
// to the trained model.
func (t *EventTrainer) Report() *model.TrainingReport { return t.report }

// Validate checks the training configuration. Idempotent, side-effect
// free, and always called again by the training entry points.
func (t *EventTrainer) Validate() error {
	return t.params.Validate()
}

// BuildIndex drives the configured indexing strategy over the stream,
// consuming it exactly once. The cutoff is forced to the global default
// only when the caller did not set one; the sort/merge flag always comes
// from the numeric trainer, never from configuration.
func (t *EventTrainer) BuildIndex(stream model.EventStream) (*model.Index, error) {
	cutoff, err := t.params.IntValue(ParamCutoff, indexer.DefaultCutoff)
	if err != nil {
		return nil, err
	}
	strategy := t.params.StringValue(ParamIndexer, indexer.TwoPass)

	ix, err := indexer.New(strategy, indexer.Options{
		Cutoff:       cutoff,
		SortAndMerge: t.numeric.SortAndMerge(),
		Logger:       t.log,
	})
	if err != nil {
		return nil, err
	}

	t.report.Add(model.ReportKeyIndexer, strategy)
	t.report.Add(model.ReportKeyCutoff, fmt.Sprintf("%d", cutoff))

	index, err := ix.Index(stream)
	if err != nil {
		return nil, err
	}
	return index, nil
}

// TrainIndex validates, gates on data sufficiency, and delegates to the
// numeric trainer. An index with one or fewer outcome labels is rejected
// with *model.InsufficientDataError before the numeric trainer runs: a
// log-linear model over a single outcome is degenerate and the numeric
// code may divide by zero or never converge on it.
func (t *EventTrainer) TrainIndex(ix *model.Index) (*model.Model, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(ix.OutcomeLabels) <= 1 {
		return nil, &model.InsufficientDataError{Outcomes: len(ix.OutcomeLabels)}
	}

	t.log.Info("training started",
		"algorithm", t.numeric.Algorithm(),
		"outcomes", len(ix.OutcomeLabels),
		"predicates", len(ix.PredLabels),
		"events", ix.NumEvents())

	m, err := t.numeric.Train(ix)
	if err != nil {
		return nil, err
	}

	t.report.Add(model.ReportKeyAlgorithm, t.numeric.Algorithm())
	m.Report = t.report

	t.log.Info("training finished", "predicates", m.NumPredicates())
	return m, nil
}

// Train runs the whole pipeline over an event stream: wrap the stream in
// the integrity fingerprint, index it, record the hex corpus hash, then
// train on the index. The hash covers exactly the events indexing
// consumed, because the stream is forward-only and read once.
func (t *EventTrainer) Train(stream model.EventStream) (*model.Model, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	hashed := indexer.NewHashSumStream(stream)
	ix, err := t.BuildIndex(hashed)
	if err != nil {
		return nil, err
	}

	digest, err := hashed.HexDigest()
	if err != nil {
		return nil, fmt.Errorf("recording corpus hash: %w", err)
	}
	t.report.Add(model.ReportKeyEventHash, digest)

	return t.TrainIndex(ix)
}
