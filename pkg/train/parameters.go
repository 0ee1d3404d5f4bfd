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
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// Recognized training parameter keys.
const (
	// ParamAlgorithm names the numeric training algorithm. Default: GIS.
	ParamAlgorithm = "Algorithm"

	// ParamIndexer names the event indexing strategy.
	// One of OnePass, TwoPass, OnePassRealValue. Default: TwoPass.
	ParamIndexer = "DataIndexer"

	// ParamCutoff is the minimum predicate frequency. When unset, the
	// orchestrator applies the global default of 5 at indexing time; an
	// explicit value, including 0, is never overridden.
	ParamCutoff = "Cutoff"

	// ParamIterations is the number of numeric training iterations.
	ParamIterations = "Iterations"
)

// DefaultIterations is used when ParamIterations is unset.
const DefaultIterations = 100

// Parameters is the training configuration surface. It is backed by a
// string map so the orchestrator can distinguish "unset" from an explicit
// value, which matters for the cutoff default.
type Parameters struct {
	values map[string]string
}

// NewParameters returns an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{values: make(map[string]string)}
}

// Set records a string parameter.
func (p *Parameters) Set(key, value string) {
	p.values[key] = value
}

// SetInt records an integer parameter.
func (p *Parameters) SetInt(key string, value int) {
	p.values[key] = strconv.Itoa(value)
}

// Get returns the raw value for key and whether it was set.
func (p *Parameters) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// StringValue returns the value for key, or def when unset.
func (p *Parameters) StringValue(key, def string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// IntValue returns the integer value for key, or def when unset. A set but
// non-numeric value is a configuration error.
func (p *Parameters) IntValue(key string, def int) (int, error) {
	raw, ok := p.values[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.ConfigError{Param: key, Value: raw, Reason: "must be an integer"}
	}
	return n, nil
}

// paramsView is the typed projection of Parameters that the validator
// checks. Defaults are substituted before validation so only explicitly
// set values can fail.
type paramsView struct {
	Algorithm  string `validate:"oneof=GIS"`
	Indexer    string `validate:"oneof=OnePass TwoPass OnePassRealValue"`
	Cutoff     int    `validate:"gte=0"`
	Iterations int    `validate:"gt=0"`
}

var paramValidate = validator.New()

// Validate checks the parameter set for consistency. It is idempotent and
// side-effect free; failures are *model.ConfigError naming the offending
// parameter.
func (p *Parameters) Validate() error {
	cutoff, err := p.IntValue(ParamCutoff, 0)
	if err != nil {
		return err
	}
	iterations, err := p.IntValue(ParamIterations, DefaultIterations)
	if err != nil {
		return err
	}

	view := paramsView{
		Algorithm:  p.StringValue(ParamAlgorithm, AlgorithmGIS),
		Indexer:    p.StringValue(ParamIndexer, "TwoPass"),
		Cutoff:     cutoff,
		Iterations: iterations,
	}
	if err := paramValidate.Struct(view); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return configErrorFor(fieldErrs[0], p)
		}
		return &model.ConfigError{Param: "parameters", Reason: err.Error()}
	}
	return nil
}

// configErrorFor maps a validator field error back to the parameter key
// the caller actually set.
func configErrorFor(fe validator.FieldError, p *Parameters) *model.ConfigError {
	keyForField := map[string]string{
		"Algorithm":  ParamAlgorithm,
		"Indexer":    ParamIndexer,
		"Cutoff":     ParamCutoff,
		"Iterations": ParamIterations,
	}
	reasonForField := map[string]string{
		"Algorithm":  "must be GIS",
		"Indexer":    "must be one of OnePass, TwoPass, OnePassRealValue",
		"Cutoff":     "must be a non-negative integer",
		"Iterations": "must be a positive integer",
	}
	key := keyForField[fe.Field()]
	value, _ := p.Get(key)
	return &model.ConfigError{
		Param:  key,
		Value:  value,
		Reason: reasonForField[fe.Field()],
	}
}
