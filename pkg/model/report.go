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
	"sort"

	"github.com/google/uuid"
)

// Well-known training report keys.
const (
	// ReportKeyAlgorithm records the numeric trainer's identity.
	ReportKeyAlgorithm = "training.algorithm"

	// ReportKeyEventHash records the hex corpus hash computed over every
	// event consumed by indexing.
	ReportKeyEventHash = "training.eventhash"

	// ReportKeyRunID records the unique id assigned to the training run.
	ReportKeyRunID = "training.run_id"

	// ReportKeyCutoff records the effective frequency cutoff.
	ReportKeyCutoff = "training.cutoff"

	// ReportKeyIndexer records the indexing strategy used.
	ReportKeyIndexer = "training.indexer"
)

// TrainingReport accumulates provenance metadata during a training run:
// the algorithm identity, the corpus hash, and trainer-specific
// diagnostics. It is attached to the trained Model but is never part of
// the persisted binary format.
//
// The report is written by a single training flow and is not safe for
// concurrent mutation.
type TrainingReport struct {
	entries map[string]string
}

// NewTrainingReport returns a report pre-populated with a fresh run id.
func NewTrainingReport() *TrainingReport {
	return &TrainingReport{
		entries: map[string]string{
			ReportKeyRunID: uuid.NewString(),
		},
	}
}

// Add records a metadata entry, replacing any previous value for the key.
func (r *TrainingReport) Add(key, value string) {
	r.entries[key] = value
}

// Get returns the value for key and whether it was recorded.
func (r *TrainingReport) Get(key string) (string, bool) {
	v, ok := r.entries[key]
	return v, ok
}

// Keys returns all recorded keys in lexical order.
func (r *TrainingReport) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of recorded entries.
func (r *TrainingReport) Len() int { return len(r.entries) }
