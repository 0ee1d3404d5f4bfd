// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianML/pkg/model"
	"github.com/AleutianAI/AleutianML/pkg/store"
)

func TestRunStoreList_SortedReportKeys(t *testing.T) {
	orig := storePath
	storePath = t.TempDir()
	t.Cleanup(func() { storePath = orig })

	catalog, err := store.Open(store.DefaultConfig(storePath))
	require.NoError(t, err)

	report := model.NewTrainingReport()
	report.Add(model.ReportKeyEventHash, "abc123")
	report.Add(model.ReportKeyAlgorithm, "GIS")
	report.Add(model.ReportKeyCutoff, "5")
	require.NoError(t, catalog.Put("sentiment", []byte("artifact"), report))
	require.NoError(t, catalog.Close())

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, runStoreList(cmd, nil))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, "sentiment", lines[0])
	require.Greater(t, len(lines), 2)

	var keys []string
	for _, line := range lines[1:] {
		key, _, ok := strings.Cut(strings.TrimSpace(line), ":")
		require.True(t, ok, "report line %q", line)
		keys = append(keys, key)
	}
	assert.True(t, sort.StringsAreSorted(keys), "report keys not sorted: %v", keys)
}
