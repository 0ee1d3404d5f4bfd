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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// twoPassIndexer counts predicate frequencies on the first pass while
// spooling events to a temporary file, then builds the index tables by
// re-reading the spool. The incoming stream is still consumed exactly
// once; the second pass runs over the spool, not the stream. This keeps
// peak memory at one event plus the count table instead of the whole
// corpus.
//
// Real-valued events are not supported; use OnePassRealValue.
type twoPassIndexer struct {
	opts Options
}

func (ix *twoPassIndexer) Name() string { return TwoPass }

func (ix *twoPassIndexer) Index(stream model.EventStream) (*model.Index, error) {
	spool, err := os.CreateTemp("", "aleutianml-events-*.txt")
	if err != nil {
		return nil, fmt.Errorf("creating event spool: %w", err)
	}
	defer func() {
		spool.Close()
		os.Remove(spool.Name())
	}()

	predCounts := make(map[string]int)
	numEvents, err := ix.spoolAndCount(stream, spool, predCounts)
	if err != nil {
		return nil, err
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding event spool: %w", err)
	}

	// Second pass over the spool. Events fit the canonical line format by
	// construction, so FileEventStream reads them back losslessly.
	events := make([]*model.Event, 0, numEvents)
	replay := NewFileEventStream(spool)
	for {
		ev, err := replay.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("replaying event spool: %w", err)
		}
		events = append(events, ev)
	}

	ix.opts.logger().Debug("two-pass scan complete",
		"events", numEvents, "candidate_predicates", len(predCounts))
	return buildIndex(events, predCounts, ix.opts), nil
}

// spoolAndCount is the first pass: drain the stream, tally predicate
// frequencies, and write each event's canonical line to the spool.
func (ix *twoPassIndexer) spoolAndCount(stream model.EventStream, spool *os.File, predCounts map[string]int) (int, error) {
	w := bufio.NewWriter(spool)
	numEvents := 0
	for {
		ev, err := stream.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("indexing events: %w", err)
		}
		if ev.Values != nil {
			return 0, fmt.Errorf("indexing events: TwoPass does not support real-valued events")
		}
		count := ev.Count
		if count == 0 {
			count = 1
		}
		for _, feature := range ev.Context {
			predCounts[feature] += count
		}
		for i := 0; i < count; i++ {
			if _, err := w.WriteString(ev.String()); err != nil {
				return 0, fmt.Errorf("writing event spool: %w", err)
			}
			if err := w.WriteByte('\n'); err != nil {
				return 0, fmt.Errorf("writing event spool: %w", err)
			}
			numEvents++
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("flushing event spool: %w", err)
	}
	return numEvents, nil
}
