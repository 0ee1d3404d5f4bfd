// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package indexer

import (
	"errors"
	"fmt"
	"io"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// onePassIndexer drains the stream into memory once, counting predicate
// frequencies as it goes, then reduces to index tables. It backs both the
// OnePass and OnePassRealValue strategies; the only difference is whether
// event values are expected and carried through.
type onePassIndexer struct {
	opts       Options
	realValued bool
}

func (ix *onePassIndexer) Name() string {
	if ix.realValued {
		return OnePassRealValue
	}
	return OnePass
}

func (ix *onePassIndexer) Index(stream model.EventStream) (*model.Index, error) {
	var events []*model.Event
	predCounts := make(map[string]int)

	for {
		ev, err := stream.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("indexing events: %w", err)
		}
		// The index's row tables are either all valued or all binary, so a
		// stream may not mix the two kinds of event.
		if ix.realValued && ev.Values == nil {
			return nil, fmt.Errorf("indexing events: event %q has no real values", ev.Outcome)
		}
		if !ix.realValued && ev.Values != nil {
			return nil, fmt.Errorf("indexing events: event %q carries real values; use OnePassRealValue", ev.Outcome)
		}
		count := ev.Count
		if count == 0 {
			count = 1
		}
		for _, feature := range ev.Context {
			predCounts[feature] += count
		}
		events = append(events, ev)
	}

	ix.opts.logger().Debug("one-pass scan complete",
		"events", len(events), "candidate_predicates", len(predCounts))
	return buildIndex(events, predCounts, ix.opts), nil
}
