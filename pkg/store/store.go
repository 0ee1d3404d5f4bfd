// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store keeps persisted model artifacts and their training reports
// in an embedded BadgerDB, giving local tooling a model catalog with
// low-latency access and no external service.
//
// Artifacts are stored as opaque bytes exactly as the codec wrote them, so
// a fetched artifact round-trips bit for bit. Reports are stored alongside
// under a separate key prefix.
//
// License: BadgerDB is Apache 2.0 licensed (github.com/dgraph-io/badger).
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/AleutianAI/AleutianML/pkg/model"
)

// Key prefixes. A model's artifact and report share its name under
// different prefixes.
const (
	modelPrefix  = "model/"
	reportPrefix = "report/"
)

// ErrNotFound is returned when no model with the requested name exists.
var ErrNotFound = errors.New("model not found in store")

// Config holds configuration for a model store.
type Config struct {
	// Path is the directory for the store's BadgerDB files. Required
	// unless InMemory is true.
	Path string

	// InMemory enables in-memory mode with no disk persistence.
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging. Nil disables it.
	Logger *slog.Logger
}

// DefaultConfig returns a durable on-disk configuration rooted at path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for tests: in-memory, no sync.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is a model repository backed by one BadgerDB instance. It is safe
// for concurrent use; Badger provides transaction isolation.
type Store struct {
	db *badger.DB
}

// Open creates or opens the store described by cfg. Callers must Close the
// returned store.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("store path is required unless in-memory")
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening model store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a persisted model artifact and its training report under
// name, overwriting any previous version.
func (s *Store) Put(name string, artifact []byte, report *model.TrainingReport) error {
	if name == "" {
		return errors.New("model name must not be empty")
	}
	meta := map[string]string{}
	if report != nil {
		for _, k := range report.Keys() {
			v, _ := report.Get(k)
			meta[k] = v
		}
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding training report: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(modelPrefix+name), artifact); err != nil {
			return err
		}
		return txn.Set([]byte(reportPrefix+name), metaBytes)
	})
	if err != nil {
		return fmt.Errorf("storing model %q: %w", name, err)
	}
	return nil
}

// Get returns the stored artifact bytes for name.
func (s *Store) Get(name string) ([]byte, error) {
	var artifact []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(modelPrefix + name))
		if err != nil {
			return err
		}
		artifact, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching model %q: %w", name, err)
	}
	return artifact, nil
}

// Report returns the stored training report metadata for name.
func (s *Store) Report(name string) (map[string]string, error) {
	var meta map[string]string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(reportPrefix + name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("model %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching report for %q: %w", name, err)
	}
	return meta, nil
}

// List returns the names of all stored models in key order.
func (s *Store) List() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(modelPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, modelPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	return names, nil
}

// Delete removes a model and its report. Deleting an absent model is not
// an error.
func (s *Store) Delete(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(modelPrefix + name)); err != nil {
			return err
		}
		return txn.Delete([]byte(reportPrefix + name))
	})
	if err != nil {
		return fmt.Errorf("deleting model %q: %w", name, err)
	}
	return nil
}
