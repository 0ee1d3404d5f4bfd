// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutAndGet(t *testing.T) {
	s := openTestStore(t)

	artifact := []byte{0x00, 0x03, 'G', 'I', 'S', 0xFF}
	require.NoError(t, s.Put("sentiment", artifact, nil))

	got, err := s.Get("sentiment")
	require.NoError(t, err)
	assert.Equal(t, artifact, got, "artifacts must round-trip bit for bit")
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_PutEmptyName(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Put("", []byte("x"), nil))
}

func TestStore_Report(t *testing.T) {
	s := openTestStore(t)

	report := model.NewTrainingReport()
	report.Add(model.ReportKeyAlgorithm, "GIS")
	report.Add(model.ReportKeyCutoff, "5")
	require.NoError(t, s.Put("sentiment", []byte("artifact"), report))

	meta, err := s.Report("sentiment")
	require.NoError(t, err)
	assert.Equal(t, "GIS", meta[model.ReportKeyAlgorithm])
	assert.Equal(t, "5", meta[model.ReportKeyCutoff])
	assert.NotEmpty(t, meta[model.ReportKeyRunID])

	_, err = s.Report("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_PutNilReport(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put("bare", []byte("artifact"), nil))

	meta, err := s.Report("bare")
	require.NoError(t, err)
	assert.Empty(t, meta)
}

func TestStore_List(t *testing.T) {
	s := openTestStore(t)

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.Put("zeta", []byte("z"), nil))
	require.NoError(t, s.Put("alpha", []byte("a"), nil))

	names, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names, "listing is in key order")
}

func TestStore_OverwriteReplaces(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("m", []byte("v1"), nil))
	require.NoError(t, s.Put("m", []byte("v2"), nil))

	got, err := s.Get("m")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	names, err := s.List()
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("m", []byte("v"), model.NewTrainingReport()))
	require.NoError(t, s.Delete("m"))

	_, err := s.Get("m")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Report("m")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Deleting an absent model is not an error.
	assert.NoError(t, s.Delete("m"))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}
