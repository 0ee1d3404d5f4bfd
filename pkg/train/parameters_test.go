// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package train

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

func TestParameters_ValidateDefaults(t *testing.T) {
	assert.NoError(t, NewParameters().Validate())
}

func TestParameters_ValidateRejections(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantParam string
	}{
		{"unknown algorithm", ParamAlgorithm, "Perceptron", ParamAlgorithm},
		{"unknown indexer", ParamIndexer, "ThreePass", ParamIndexer},
		{"negative cutoff", ParamCutoff, "-1", ParamCutoff},
		{"zero iterations", ParamIterations, "0", ParamIterations},
		{"negative iterations", ParamIterations, "-3", ParamIterations},
		{"non-numeric cutoff", ParamCutoff, "five", ParamCutoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewParameters()
			params.Set(tt.key, tt.value)

			err := params.Validate()
			require.Error(t, err)

			var cfgErr *model.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantParam, cfgErr.Param)
			assert.Equal(t, tt.value, cfgErr.Value)
		})
	}
}

func TestParameters_ValidateAccepted(t *testing.T) {
	params := NewParameters()
	params.Set(ParamAlgorithm, "GIS")
	params.Set(ParamIndexer, "OnePassRealValue")
	params.SetInt(ParamCutoff, 0)
	params.SetInt(ParamIterations, 200)
	assert.NoError(t, params.Validate())
}

func TestParameters_UnsetVsExplicit(t *testing.T) {
	params := NewParameters()

	_, ok := params.Get(ParamCutoff)
	assert.False(t, ok)

	n, err := params.IntValue(ParamCutoff, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	params.SetInt(ParamCutoff, 0)
	n, err = params.IntValue(ParamCutoff, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "an explicit zero must not fall back to the default")
}

func TestParameters_IntValueNonNumeric(t *testing.T) {
	params := NewParameters()
	params.Set(ParamIterations, "lots")

	_, err := params.IntValue(ParamIterations, DefaultIterations)
	var cfgErr *model.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ParamIterations, cfgErr.Param)
	assert.Equal(t, "lots", cfgErr.Value)
}

func TestParameters_StringValue(t *testing.T) {
	params := NewParameters()
	assert.Equal(t, "TwoPass", params.StringValue(ParamIndexer, "TwoPass"))
	params.Set(ParamIndexer, "OnePass")
	assert.Equal(t, "OnePass", params.StringValue(ParamIndexer, "TwoPass"))
}
