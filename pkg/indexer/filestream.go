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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// FileEventStream reads training events from line-oriented text, one event
// per line:
//
//	outcome feature1 feature2 ...
//
// In real-valued mode each feature carries a weight:
//
//	outcome feature1=0.5 feature2=1.25 ...
//
// Blank lines are skipped. The stream is forward-only; it does not own the
// underlying reader and never closes it.
type FileEventStream struct {
	scanner    *bufio.Scanner
	realValued bool
	line       int
}

// NewFileEventStream returns a stream over binary-featured event lines.
func NewFileEventStream(r io.Reader) *FileEventStream {
	return &FileEventStream{scanner: bufio.NewScanner(r)}
}

// NewRealValueFileEventStream returns a stream over real-valued event
// lines, where every feature must be name=value.
func NewRealValueFileEventStream(r io.Reader) *FileEventStream {
	return &FileEventStream{scanner: bufio.NewScanner(r), realValued: true}
}

// Read parses and returns the next event, or io.EOF at end of input.
func (s *FileEventStream) Read() (*model.Event, error) {
	for s.scanner.Scan() {
		s.line++
		fields := strings.Fields(s.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: event has no context features", s.line)
		}
		ev := &model.Event{Outcome: fields[0], Context: fields[1:], Count: 1}
		if s.realValued {
			if err := s.splitValues(ev); err != nil {
				return nil, fmt.Errorf("line %d: %w", s.line, err)
			}
		}
		return ev, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return nil, io.EOF
}

// splitValues rewrites name=value features into separate context and value
// slices. Negative values are rejected; maxent feature weights must be
// non-negative.
func (s *FileEventStream) splitValues(ev *model.Event) error {
	ev.Values = make([]float64, len(ev.Context))
	for i, feature := range ev.Context {
		name, raw, ok := strings.Cut(feature, "=")
		if !ok || name == "" {
			return fmt.Errorf("feature %q: expected name=value", feature)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("feature %q: %w", feature, err)
		}
		if v < 0 {
			return fmt.Errorf("feature %q: negative values not supported", feature)
		}
		ev.Context[i] = name
		ev.Values[i] = v
	}
	return nil
}
