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
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestFileEventStream_BinaryLines(t *testing.T) {
	input := "A w1 w2\n\nB w3\n"
	s := NewFileEventStream(strings.NewReader(input))

	ev, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Outcome != "A" || !reflect.DeepEqual(ev.Context, []string{"w1", "w2"}) {
		t.Errorf("first event = %+v", ev)
	}
	if ev.Values != nil {
		t.Error("binary event must not carry values")
	}

	ev, err = s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Outcome != "B" || !reflect.DeepEqual(ev.Context, []string{"w3"}) {
		t.Errorf("second event = %+v", ev)
	}

	if _, err := s.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestFileEventStream_NoContext(t *testing.T) {
	s := NewFileEventStream(strings.NewReader("A\n"))
	_, err := s.Read()
	if err == nil {
		t.Fatal("expected error for event without context features")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestFileEventStream_RealValues(t *testing.T) {
	s := NewRealValueFileEventStream(strings.NewReader("A temp=0.5 wind=1.25\n"))

	ev, err := s.Read()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ev.Context, []string{"temp", "wind"}) {
		t.Errorf("Context = %v", ev.Context)
	}
	if !reflect.DeepEqual(ev.Values, []float64{0.5, 1.25}) {
		t.Errorf("Values = %v", ev.Values)
	}
}

func TestFileEventStream_RealValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing value", "A temp\n"},
		{"missing name", "A =0.5\n"},
		{"non-numeric value", "A temp=warm\n"},
		{"negative value", "A temp=-1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRealValueFileEventStream(strings.NewReader(tt.input))
			if _, err := s.Read(); err == nil {
				t.Errorf("input %q: expected parse error", tt.input)
			}
		})
	}
}

func TestFileEventStream_EmptyInput(t *testing.T) {
	s := NewFileEventStream(strings.NewReader(""))
	if _, err := s.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want io.EOF", err)
	}
}
