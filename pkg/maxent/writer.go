// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package maxent persists trained maximum-entropy models in the compact
// legacy-compatible binary format and reads them back.
//
// The writer sorts predicates into a deterministic total order, compresses
// runs of identical outcome patterns into count-plus-pattern group tokens,
// and serializes header, outcome labels, groups, predicate names, and
// flattened parameters sequentially. The reader reverses the process
// losslessly. See Writer.Persist for the exact field order.
package maxent

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// FormatGIS is the format tag identifying the GIS model family.
const FormatGIS = "GIS"

// Legacy correction fields. Early versions of the format carried a
// correction feature; the fields remain at these fixed values purely for
// wire compatibility and readers must skip them without interpretation.
const (
	legacyCorrectionConstant  int32   = 1
	legacyCorrectionParameter float64 = 1.0
)

// Writer serializes a trained model to an output resource. One Writer owns
// its output exclusively for the duration of Persist; concurrent writers
// to the same resource must be serialized by the caller.
type Writer struct {
	out    *bufio.Writer
	closer io.Closer
}

// NewWriter returns a Writer over w. If w is also an io.Closer, Persist
// closes it when finished, on success and on failure alike.
func NewWriter(w io.Writer) *Writer {
	wr := &Writer{out: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		wr.closer = c
	}
	return wr
}

// Persist writes the model and then unconditionally flushes and closes the
// output resource. The field order is fixed:
//
//  1. format tag ("GIS")
//  2. legacy correction constant (int 1) and parameter (float 1.0)
//  3. outcome count, then each outcome label in canonical index order
//  4. group count, then one "<count> <pattern>" token per group
//  5. predicate count, then each predicate name in sorted order
//  6. each predicate's parameters, flattened, in the same sorted order
//
// Writing is destructive and not resumable: any error leaves a truncated
// artifact that the caller must discard.
func (w *Writer) Persist(m *model.Model) (err error) {
	defer func() {
		// Release the output on every exit path. A write error outranks
		// a close error; a close error on an otherwise clean persist is
		// still a failed persist.
		if flushErr := w.out.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flushing model output: %w", flushErr)
		}
		if w.closer != nil {
			if closeErr := w.closer.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("closing model output: %w", closeErr)
			}
		}
	}()

	bw := newBinaryWriter(w.out)

	if err := bw.writeUTF(FormatGIS); err != nil {
		return err
	}
	if err := bw.writeInt32(legacyCorrectionConstant); err != nil {
		return err
	}
	if err := bw.writeFloat64(legacyCorrectionParameter); err != nil {
		return err
	}

	if err := bw.writeInt32(int32(len(m.OutcomeLabels))); err != nil {
		return err
	}
	for _, label := range m.OutcomeLabels {
		if err := bw.writeUTF(label); err != nil {
			return err
		}
	}

	sorted := sortPredicates(m)
	groups := groupPredicates(sorted)

	if err := bw.writeInt32(int32(len(groups))); err != nil {
		return err
	}
	for _, g := range groups {
		if err := bw.writeUTF(strconv.Itoa(g.count) + g.pattern); err != nil {
			return err
		}
	}

	if err := bw.writeInt32(int32(len(sorted))); err != nil {
		return err
	}
	for _, cp := range sorted {
		if err := bw.writeUTF(cp.name); err != nil {
			return err
		}
	}

	// No per-predicate length prefix: each predicate's parameter count is
	// implied by its group's pattern length.
	for _, cp := range sorted {
		for _, p := range cp.params {
			if err := bw.writeFloat64(p); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriteFile persists the model to a file, overwriting any existing
// artifact at path. On failure the partial file is invalid and removed.
func WriteFile(path string, m *model.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	// Persist closes f on all paths.
	if err := NewWriter(f).Persist(m); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
