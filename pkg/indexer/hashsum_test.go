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
	"testing"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

func drain(t *testing.T, s model.EventStream) int {
	t.Helper()
	n := 0
	for {
		_, err := s.Read()
		if errors.Is(err, io.EOF) {
			return n
		}
		if err != nil {
			t.Fatalf("draining stream: %v", err)
		}
		n++
	}
}

func TestHashSumStream_DigestBeforeExhaustion(t *testing.T) {
	h := NewHashSumStream(model.NewSliceEventStream([]*model.Event{
		model.NewEvent("A", "w1"),
	}))

	if _, err := h.HexDigest(); !errors.Is(err, ErrStreamNotExhausted) {
		t.Fatalf("HexDigest before EOF: err = %v, want ErrStreamNotExhausted", err)
	}

	// Reading the event but not hitting EOF is still not exhausted.
	if _, err := h.Read(); err != nil {
		t.Fatal(err)
	}
	if _, err := h.HexDigest(); !errors.Is(err, ErrStreamNotExhausted) {
		t.Fatalf("HexDigest mid-stream: err = %v, want ErrStreamNotExhausted", err)
	}
}

func TestHashSumStream_Deterministic(t *testing.T) {
	events := func() []*model.Event {
		return []*model.Event{
			model.NewEvent("A", "w1", "w2"),
			model.NewEvent("B", "w3"),
		}
	}

	h1 := NewHashSumStream(model.NewSliceEventStream(events()))
	h2 := NewHashSumStream(model.NewSliceEventStream(events()))
	drain(t, h1)
	drain(t, h2)

	d1, err := h1.HexDigest()
	if err != nil {
		t.Fatal(err)
	}
	d2, err := h2.HexDigest()
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Errorf("identical corpora hashed differently: %s vs %s", d1, d2)
	}
	if len(d1) != 32 {
		t.Errorf("digest length = %d, want 32 hex chars", len(d1))
	}
}

func TestHashSumStream_OrderSensitive(t *testing.T) {
	h1 := NewHashSumStream(model.NewSliceEventStream([]*model.Event{
		model.NewEvent("A", "w1"),
		model.NewEvent("B", "w2"),
	}))
	h2 := NewHashSumStream(model.NewSliceEventStream([]*model.Event{
		model.NewEvent("B", "w2"),
		model.NewEvent("A", "w1"),
	}))
	drain(t, h1)
	drain(t, h2)

	d1, _ := h1.HexDigest()
	d2, _ := h2.HexDigest()
	if d1 == d2 {
		t.Error("reordered corpus must hash differently")
	}
}

func TestHashSumStream_PassesEventsThrough(t *testing.T) {
	events := []*model.Event{
		model.NewEvent("A", "w1"),
		model.NewEvent("B", "w2"),
	}
	h := NewHashSumStream(model.NewSliceEventStream(events))

	for i := range events {
		ev, err := h.Read()
		if err != nil {
			t.Fatal(err)
		}
		if ev != events[i] {
			t.Errorf("event %d: stream did not pass the event through unchanged", i)
		}
	}
	if n := drain(t, h); n != 0 {
		t.Errorf("drained %d extra events, want 0", n)
	}

	// Reads after EOF stay at EOF.
	if _, err := h.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("Read after EOF: err = %v, want io.EOF", err)
	}
}
