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
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// ErrStreamNotExhausted is returned when the corpus hash is requested
// before the wrapped stream has been read to completion.
var ErrStreamNotExhausted = errors.New("corpus hash unavailable: event stream not exhausted")

// HashSumStream wraps an EventStream and computes a deterministic integrity
// fingerprint over every event that passes through it. The digest covers
// exactly the events consumed, in order, using each event's canonical
// string form, and is available only after the stream is exhausted.
//
// The fingerprint ties a trained model back to the corpus it was trained
// on: retraining on byte-identical data reproduces the same hash.
type HashSumStream struct {
	stream model.EventStream
	digest hash.Hash
	done   bool
}

// NewHashSumStream wraps the given stream.
func NewHashSumStream(stream model.EventStream) *HashSumStream {
	return &HashSumStream{
		stream: stream,
		digest: md5.New(),
	}
}

// Read returns the next event after folding it into the digest. Returns
// io.EOF once the wrapped stream is exhausted.
func (h *HashSumStream) Read() (*model.Event, error) {
	if h.done {
		return nil, io.EOF
	}
	ev, err := h.stream.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			h.done = true
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading event stream: %w", err)
	}
	// Canonical line form; io.WriteString on a hash never fails.
	io.WriteString(h.digest, ev.String())
	h.digest.Write([]byte{'\n'})
	return ev, nil
}

// HexDigest returns the hex-encoded corpus hash. It fails with
// ErrStreamNotExhausted until Read has returned io.EOF, because a partial
// digest would silently fingerprint a prefix of the corpus.
func (h *HashSumStream) HexDigest() (string, error) {
	if !h.done {
		return "", ErrStreamNotExhausted
	}
	return hex.EncodeToString(h.digest.Sum(nil)), nil
}
