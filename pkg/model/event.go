// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package model defines the shared data types of the maxent training
// pipeline: labeled events, event streams, indexed training data, trained
// models, and the training error taxonomy.
//
// Types here are plain data. Behavior lives in the packages that consume
// them: pkg/indexer turns event streams into an Index, pkg/train turns an
// Index into a Model, and pkg/maxent persists the Model.
package model

import (
	"fmt"
	"io"
	"strings"
)

// Event is a single labeled training observation: the outcome that was
// observed together with the named context features that were active.
//
// Values carries one real value per context feature for real-valued
// training and is nil for binary features. Count is the number of times
// this exact event was observed; indexers merging duplicate events sum it.
type Event struct {
	Outcome string
	Context []string
	Values  []float64
	Count   int
}

// NewEvent creates a binary-featured event observed once.
func NewEvent(outcome string, context ...string) *Event {
	return &Event{Outcome: outcome, Context: context, Count: 1}
}

// String renders the event in the canonical one-line training format:
// the outcome followed by each context feature, space separated.
// Real-valued features render as name=value. This form is also what the
// integrity wrapper hashes, so it must stay stable.
func (e *Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Outcome)
	for i, c := range e.Context {
		sb.WriteByte(' ')
		sb.WriteString(c)
		if e.Values != nil {
			fmt.Fprintf(&sb, "=%v", e.Values[i])
		}
	}
	return sb.String()
}

// EventStream is a forward-only source of training events.
//
// Read returns the next event, or io.EOF after the last one. Streams are
// consumed exactly once; no implementation supports rewinding. Any error
// other than io.EOF aborts the pipeline.
type EventStream interface {
	Read() (*Event, error)
}

// SliceEventStream adapts an in-memory event slice to EventStream.
// Primarily used by tests and by small embedded training sets.
type SliceEventStream struct {
	events []*Event
	pos    int
}

// NewSliceEventStream returns a stream over the given events.
func NewSliceEventStream(events []*Event) *SliceEventStream {
	return &SliceEventStream{events: events}
}

// Read returns the next event or io.EOF.
func (s *SliceEventStream) Read() (*Event, error) {
	if s.pos >= len(s.events) {
		return nil, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
