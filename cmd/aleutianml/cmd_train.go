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
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/AleutianML/pkg/indexer"
	"github.com/AleutianAI/AleutianML/pkg/logging"
	"github.com/AleutianAI/AleutianML/pkg/maxent"
	"github.com/AleutianAI/AleutianML/pkg/model"
	"github.com/AleutianAI/AleutianML/pkg/store"
	"github.com/AleutianAI/AleutianML/pkg/train"
)

var trainCmd = &cobra.Command{
	Use:   "train [manifest.yaml]",
	Short: "Train the models described by a YAML manifest",
	Long: `Trains every model listed in the manifest and persists each one to its
output path. Models are independent (separate event files, separate
outputs), so they train concurrently.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrainCommand,
}

var flagMaxParallel int

func init() {
	trainCmd.Flags().IntVar(&flagMaxParallel, "max-parallel", 4,
		"maximum number of models trained at once")
}

func runTrainCommand(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Close()

	manifest, err := loadManifest(args[0])
	if err != nil {
		return err
	}
	return runManifest(manifest, flagMaxParallel, logger)
}

// runManifest trains every manifest entry, at most maxParallel at a time.
func runManifest(manifest *Manifest, maxParallel int, logger *logging.Logger) error {
	var catalog *store.Store
	if manifest.Store != "" {
		var err error
		catalog, err = store.Open(store.DefaultConfig(manifest.Store))
		if err != nil {
			return err
		}
		defer catalog.Close()
	}

	// Each entry owns its stream, index, and output, which is the one
	// arrangement under which concurrent training is allowed.
	var g errgroup.Group
	g.SetLimit(maxParallel)
	for _, spec := range manifest.Models {
		g.Go(func() error {
			if err := trainOne(spec, catalog, logger); err != nil {
				return fmt.Errorf("model %q: %w", spec.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// trainOne runs the full pipeline for one manifest entry: open the event
// file, train, persist, and optionally catalog the artifact.
func trainOne(spec ModelSpec, catalog *store.Store, logger *logging.Logger) error {
	log := logger.With("model", spec.Name)

	trainer, err := train.NewEventTrainer(spec.parameters(), log)
	if err != nil {
		return err
	}

	f, err := os.Open(spec.Events)
	if err != nil {
		return fmt.Errorf("opening events: %w", err)
	}
	defer f.Close()

	var stream model.EventStream
	if spec.Indexer == indexer.OnePassRealValue {
		stream = indexer.NewRealValueFileEventStream(f)
	} else {
		stream = indexer.NewFileEventStream(f)
	}

	trained, err := trainer.Train(stream)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(spec.Output); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := maxent.WriteFile(spec.Output, trained); err != nil {
		return err
	}
	log.Info("model persisted", "output", spec.Output,
		"predicates", trained.NumPredicates(), "outcomes", trained.NumOutcomes())

	if catalog != nil {
		artifact, err := os.ReadFile(spec.Output)
		if err != nil {
			return fmt.Errorf("reading persisted artifact: %w", err)
		}
		if err := catalog.Put(spec.Name, artifact, trained.Report); err != nil {
			return err
		}
		log.Info("model cataloged", "store", true)
	}
	return nil
}
