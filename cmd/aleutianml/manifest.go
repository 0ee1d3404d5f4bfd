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
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/AleutianML/pkg/train"
)

// Manifest is the YAML training manifest consumed by the train command.
// Each entry describes one independent model; entries share nothing, so
// they may train concurrently.
type Manifest struct {
	// Models lists the models to train.
	Models []ModelSpec `yaml:"models" validate:"required,min=1,dive"`

	// Store optionally names a model store directory; trained artifacts
	// are cataloged there in addition to their output files.
	Store string `yaml:"store,omitempty"`
}

// ModelSpec describes one training run.
type ModelSpec struct {
	// Name identifies the model in logs and in the store.
	Name string `yaml:"name" validate:"required"`

	// Events is the path to the labeled event file, one event per line.
	Events string `yaml:"events" validate:"required"`

	// Output is the path the persisted model is written to.
	Output string `yaml:"output" validate:"required"`

	// Algorithm selects the numeric trainer. Default GIS.
	Algorithm string `yaml:"algorithm,omitempty" validate:"omitempty,oneof=GIS"`

	// Indexer selects the indexing strategy. Default TwoPass.
	Indexer string `yaml:"indexer,omitempty" validate:"omitempty,oneof=OnePass TwoPass OnePassRealValue"`

	// Cutoff is the minimum predicate frequency. A nil pointer means
	// unset, which lets the trainer apply its default; an explicit 0
	// keeps every predicate.
	Cutoff *int `yaml:"cutoff,omitempty" validate:"omitempty,gte=0"`

	// Iterations is the numeric trainer's iteration count. A nil pointer
	// means unset; an explicit value must be positive.
	Iterations *int `yaml:"iterations,omitempty" validate:"omitempty,gt=0"`
}

var manifestValidate = validator.New()

// loadManifest reads and validates a training manifest.
func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if err := manifestValidate.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// parameters converts a model spec to training parameters, setting only
// the keys the spec actually provides so trainer defaults stay in force.
func (spec ModelSpec) parameters() *train.Parameters {
	params := train.NewParameters()
	if spec.Algorithm != "" {
		params.Set(train.ParamAlgorithm, spec.Algorithm)
	}
	if spec.Indexer != "" {
		params.Set(train.ParamIndexer, spec.Indexer)
	}
	if spec.Cutoff != nil {
		params.SetInt(train.ParamCutoff, *spec.Cutoff)
	}
	if spec.Iterations != nil {
		params.SetInt(train.ParamIterations, *spec.Iterations)
	}
	return params
}
