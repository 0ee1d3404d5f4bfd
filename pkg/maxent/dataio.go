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
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// binaryWriter emits the persisted format's primitive fields. The encoding
// matches Java's DataOutputStream so artifacts stay interchangeable with
// the legacy toolchain: UTF strings as a big-endian uint16 byte length
// followed by UTF-8 bytes, int32 and float64 big-endian.
type binaryWriter struct {
	w   io.Writer
	buf [8]byte
}

func newBinaryWriter(w io.Writer) *binaryWriter {
	return &binaryWriter{w: w}
}

func (bw *binaryWriter) writeUTF(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string of %d bytes exceeds UTF field limit", len(s))
	}
	binary.BigEndian.PutUint16(bw.buf[:2], uint16(len(s)))
	if _, err := bw.w.Write(bw.buf[:2]); err != nil {
		return fmt.Errorf("writing string length: %w", err)
	}
	if _, err := io.WriteString(bw.w, s); err != nil {
		return fmt.Errorf("writing string: %w", err)
	}
	return nil
}

func (bw *binaryWriter) writeInt32(n int32) error {
	binary.BigEndian.PutUint32(bw.buf[:4], uint32(n))
	if _, err := bw.w.Write(bw.buf[:4]); err != nil {
		return fmt.Errorf("writing int32: %w", err)
	}
	return nil
}

func (bw *binaryWriter) writeFloat64(f float64) error {
	binary.BigEndian.PutUint64(bw.buf[:8], math.Float64bits(f))
	if _, err := bw.w.Write(bw.buf[:8]); err != nil {
		return fmt.Errorf("writing float64: %w", err)
	}
	return nil
}

// binaryReader mirrors binaryWriter field for field.
type binaryReader struct {
	r   io.Reader
	buf [8]byte
}

func newBinaryReader(r io.Reader) *binaryReader {
	return &binaryReader{r: r}
}

func (br *binaryReader) readUTF() (string, error) {
	if _, err := io.ReadFull(br.r, br.buf[:2]); err != nil {
		return "", fmt.Errorf("reading string length: %w", err)
	}
	n := binary.BigEndian.Uint16(br.buf[:2])
	b := make([]byte, n)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return "", fmt.Errorf("reading string: %w", err)
	}
	return string(b), nil
}

func (br *binaryReader) readInt32() (int32, error) {
	if _, err := io.ReadFull(br.r, br.buf[:4]); err != nil {
		return 0, fmt.Errorf("reading int32: %w", err)
	}
	return int32(binary.BigEndian.Uint32(br.buf[:4])), nil
}

func (br *binaryReader) readFloat64() (float64, error) {
	if _, err := io.ReadFull(br.r, br.buf[:8]); err != nil {
		return 0, fmt.Errorf("reading float64: %w", err)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(br.buf[:8])), nil
}
