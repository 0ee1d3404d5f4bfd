// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package maxent

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// Reader reconstructs a trained model from the persisted binary format.
type Reader struct {
	in *binaryReader
}

// NewReader returns a Reader over r. The Reader does not close r.
func NewReader(r io.Reader) *Reader {
	return &Reader{in: newBinaryReader(bufio.NewReader(r))}
}

// Read decodes one persisted model. It re-derives per-predicate outcome
// patterns from the group tokens by assigning each group's pattern to the
// next member-count predicate names, in written order, then attaches the
// flattened parameters.
func (r *Reader) Read() (*model.Model, error) {
	tag, err := r.in.readUTF()
	if err != nil {
		return nil, err
	}
	if tag != FormatGIS {
		return nil, fmt.Errorf("unsupported model format %q", tag)
	}

	// Legacy correction fields: skip, never interpret.
	if _, err := r.in.readInt32(); err != nil {
		return nil, err
	}
	if _, err := r.in.readFloat64(); err != nil {
		return nil, err
	}

	numOutcomes, err := r.in.readInt32()
	if err != nil {
		return nil, err
	}
	outcomes := make([]string, numOutcomes)
	for i := range outcomes {
		if outcomes[i], err = r.in.readUTF(); err != nil {
			return nil, err
		}
	}

	numGroups, err := r.in.readInt32()
	if err != nil {
		return nil, err
	}
	counts := make([]int, numGroups)
	patterns := make([][]int, numGroups)
	for i := range patterns {
		token, err := r.in.readUTF()
		if err != nil {
			return nil, err
		}
		if counts[i], patterns[i], err = parseGroupToken(token); err != nil {
			return nil, err
		}
	}

	numPreds, err := r.in.readInt32()
	if err != nil {
		return nil, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != int(numPreds) {
		return nil, fmt.Errorf("corrupt model: group members sum to %d, predicate count is %d",
			total, numPreds)
	}

	names := make([]string, numPreds)
	for i := range names {
		if names[i], err = r.in.readUTF(); err != nil {
			return nil, err
		}
	}

	preds := make(map[string]*model.Predicate, numPreds)
	next := 0
	for g := range patterns {
		for member := 0; member < counts[g]; member++ {
			// Each member owns its outcome slice; group members must not
			// alias one another through the shared pattern.
			outcomes := make([]int, len(patterns[g]))
			copy(outcomes, patterns[g])
			params := make([]float64, len(outcomes))
			for i := range params {
				if params[i], err = r.in.readFloat64(); err != nil {
					return nil, err
				}
			}
			preds[names[next]] = &model.Predicate{
				Outcomes: outcomes,
				Params:   params,
			}
			next++
		}
	}

	return &model.Model{
		OutcomeLabels: outcomes,
		Predicates:    preds,
		Algorithm:     FormatGIS,
	}, nil
}

// parseGroupToken splits "<count> <i> <j> ..." into the member count and
// the outcome-index pattern. A count-only token is valid: it is what the
// writer emits for predicates observed with no outcomes at all.
func parseGroupToken(token string) (int, []int, error) {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return 0, nil, fmt.Errorf("corrupt group token %q", token)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 1 {
		return 0, nil, fmt.Errorf("corrupt group token %q: bad member count", token)
	}
	pattern := make([]int, len(fields)-1)
	for i, f := range fields[1:] {
		if pattern[i], err = strconv.Atoi(f); err != nil {
			return 0, nil, fmt.Errorf("corrupt group token %q: %w", token, err)
		}
	}
	return count, pattern, nil
}

// ReadFile reads a persisted model from a file.
func ReadFile(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()
	m, err := NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("reading model file %s: %w", path, err)
	}
	return m, nil
}
