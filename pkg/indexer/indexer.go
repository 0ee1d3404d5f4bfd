// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package indexer converts raw labeled event streams into the compact
// integer-id Index consumed by the numeric trainers.
//
// Three strategies are provided. OnePass holds all events in memory.
// TwoPass spools events to a temporary file while counting predicates, then
// builds the index from the spool, so the incoming stream is still consumed
// exactly once. OnePassRealValue is OnePass with per-feature real values
// carried through.
//
// All strategies enforce the frequency cutoff (predicates observed fewer
// than cutoff times are dropped) and optionally sort and merge duplicate
// events. The package also provides HashSumStream, the integrity wrapper
// that fingerprints a corpus as it is consumed.
package indexer

import (
	"sort"

	"github.com/AleutianAI/AleutianML/pkg/logging"
	"github.com/AleutianAI/AleutianML/pkg/model"
)

// Indexing strategy names, as they appear in training configuration.
const (
	OnePass          = "OnePass"
	TwoPass          = "TwoPass"
	OnePassRealValue = "OnePassRealValue"
)

// DefaultCutoff is the frequency cutoff applied when the caller did not
// set one explicitly.
const DefaultCutoff = 5

// Names lists the recognized strategy names.
func Names() []string {
	return []string{OnePass, TwoPass, OnePassRealValue}
}

// Options configures an indexing run.
type Options struct {
	// Cutoff is the minimum observation frequency a predicate must meet to
	// be retained. Zero keeps everything.
	Cutoff int

	// SortAndMerge sorts unique-event rows and merges duplicates with
	// summed counts. Trainers that require sorted, duplicate-merged input
	// request this through the orchestrator.
	SortAndMerge bool

	// Logger receives indexing diagnostics. Nil disables logging.
	Logger *logging.Logger
}

func (o Options) logger() *logging.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.New(logging.Config{Quiet: true})
}

// Indexer converts one event stream into an Index. Implementations consume
// the stream exactly once and never rewind it.
type Indexer interface {
	// Name returns the strategy name.
	Name() string

	// Index drains the stream and builds the index tables.
	Index(stream model.EventStream) (*model.Index, error)
}

// New returns the indexer for the given strategy name.
func New(name string, opts Options) (Indexer, error) {
	switch name {
	case OnePass:
		return &onePassIndexer{opts: opts}, nil
	case TwoPass:
		return &twoPassIndexer{opts: opts}, nil
	case OnePassRealValue:
		return &onePassIndexer{opts: opts, realValued: true}, nil
	default:
		return nil, &model.ConfigError{
			Param:  "indexer",
			Value:  name,
			Reason: "must be one of OnePass, TwoPass, OnePassRealValue",
		}
	}
}

// eventRow is one unique event in integer-id form. Context ids are kept
// sorted ascending so identical events compare equal field by field.
type eventRow struct {
	context []int
	values  []float64
	outcome int
	count   int
}

// buildIndex reduces in-memory events to index tables: assign predicate
// ids to features that survive the cutoff, assign outcome ids in
// first-seen order, drop events left without context, then optionally
// sort and merge.
func buildIndex(events []*model.Event, predCounts map[string]int, opts Options) *model.Index {
	log := opts.logger()

	// Surviving predicates get ids in lexical order, which keeps the index
	// independent of map iteration order.
	predLabels := make([]string, 0, len(predCounts))
	for name, count := range predCounts {
		if count >= opts.Cutoff {
			predLabels = append(predLabels, name)
		}
	}
	sort.Strings(predLabels)
	predIDs := make(map[string]int, len(predLabels))
	for id, name := range predLabels {
		predIDs[name] = id
	}

	ix := &model.Index{
		PredLabels: predLabels,
		PredCounts: make([]int, len(predLabels)),
	}
	for id, name := range predLabels {
		ix.PredCounts[id] = predCounts[name]
	}

	outcomeIDs := make(map[string]int)
	realValued := false

	var rows []eventRow
	dropped := 0
	for _, ev := range events {
		oid, ok := outcomeIDs[ev.Outcome]
		if !ok {
			oid = len(ix.OutcomeLabels)
			outcomeIDs[ev.Outcome] = oid
			ix.OutcomeLabels = append(ix.OutcomeLabels, ev.Outcome)
		}

		row := eventRow{outcome: oid, count: ev.Count}
		if row.count == 0 {
			row.count = 1
		}
		for i, feature := range ev.Context {
			pid, ok := predIDs[feature]
			if !ok {
				continue // below cutoff
			}
			row.context = append(row.context, pid)
			if ev.Values != nil {
				realValued = true
				row.values = append(row.values, ev.Values[i])
			}
		}
		if len(row.context) == 0 {
			dropped++
			continue
		}
		sortRow(&row)
		rows = append(rows, row)
	}

	if dropped > 0 {
		log.Warn("dropped events with no surviving context features",
			"dropped", dropped, "cutoff", opts.Cutoff)
	}

	if opts.SortAndMerge {
		rows = sortAndMerge(rows)
	}

	for _, row := range rows {
		ix.Contexts = append(ix.Contexts, row.context)
		ix.Outcomes = append(ix.Outcomes, row.outcome)
		ix.Counts = append(ix.Counts, row.count)
		if realValued {
			ix.Values = append(ix.Values, row.values)
		}
	}

	log.Debug("index built",
		"predicates", len(ix.PredLabels),
		"outcomes", len(ix.OutcomeLabels),
		"unique_events", len(ix.Contexts),
		"events", ix.NumEvents())
	return ix
}

// sortRow orders a row's context ids ascending, carrying values along.
func sortRow(row *eventRow) {
	if row.values == nil {
		sort.Ints(row.context)
		return
	}
	order := make([]int, len(row.context))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return row.context[order[a]] < row.context[order[b]]
	})
	ctx := make([]int, len(order))
	vals := make([]float64, len(order))
	for i, j := range order {
		ctx[i] = row.context[j]
		vals[i] = row.values[j]
	}
	row.context = ctx
	row.values = vals
}

// sortAndMerge sorts rows into a total order and collapses identical
// neighbors, summing their counts. Rows are identical only when context,
// outcome, and values all match; real-valued rows with differing values
// stay separate.
func sortAndMerge(rows []eventRow) []eventRow {
	sort.Slice(rows, func(a, b int) bool {
		return compareRows(rows[a], rows[b]) < 0
	})
	merged := rows[:0]
	for _, row := range rows {
		if n := len(merged); n > 0 && compareRows(merged[n-1], row) == 0 {
			merged[n-1].count += row.count
			continue
		}
		merged = append(merged, row)
	}
	return merged
}

func compareRows(a, b eventRow) int {
	for i := 0; i < len(a.context) && i < len(b.context); i++ {
		switch {
		case a.context[i] < b.context[i]:
			return -1
		case a.context[i] > b.context[i]:
			return 1
		}
	}
	switch {
	case len(a.context) < len(b.context):
		return -1
	case len(a.context) > len(b.context):
		return 1
	case a.outcome < b.outcome:
		return -1
	case a.outcome > b.outcome:
		return 1
	}
	for i := range a.values {
		switch {
		case a.values[i] < b.values[i]:
			return -1
		case a.values[i] > b.values[i]:
			return 1
		}
	}
	return 0
}
