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
	"sort"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianML/pkg/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local model catalog",
}

var storePath string

var storePutCmd = &cobra.Command{
	Use:   "put [name] [model.bin]",
	Short: "Add a persisted model artifact to the catalog",
	Args:  cobra.ExactArgs(2),
	RunE:  runStorePut,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged models with their training provenance",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

var storeGetCmd = &cobra.Command{
	Use:   "get [name] [output.bin]",
	Short: "Fetch a cataloged model artifact to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoreGet,
}

func init() {
	storeCmd.PersistentFlags().StringVar(&storePath, "path", defaultStorePath(),
		"model catalog directory")
	storeCmd.AddCommand(storePutCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeGetCmd)
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aleutianml/store"
	}
	return home + "/.aleutianml/store"
}

func openStore() (*store.Store, error) {
	return store.Open(store.DefaultConfig(storePath))
}

func runStorePut(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	artifact, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading artifact: %w", err)
	}

	catalog, err := openStore()
	if err != nil {
		return err
	}
	defer catalog.Close()

	if err := catalog.Put(name, artifact, nil); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%d bytes)\n", name, len(artifact))
	return nil
}

func runStoreList(cmd *cobra.Command, args []string) error {
	catalog, err := openStore()
	if err != nil {
		return err
	}
	defer catalog.Close()

	names, err := catalog.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
		report, err := catalog.Report(name)
		if err != nil {
			continue
		}
		keys := make([]string, 0, len(report))
		for k := range report {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %s\n", k, report[k])
		}
	}
	return nil
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	catalog, err := openStore()
	if err != nil {
		return err
	}
	defer catalog.Close()

	artifact, err := catalog.Get(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, artifact, 0644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "fetched %s to %s (%d bytes)\n", name, path, len(artifact))
	return nil
}
