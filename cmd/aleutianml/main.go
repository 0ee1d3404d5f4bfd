// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// aleutianml is the command-line interface for training, inspecting, and
// cataloging maximum-entropy models.
package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianML/pkg/logging"
)

var (
	rootCmd = &cobra.Command{
		Use:   "aleutianml",
		Short: "Train and manage maximum-entropy classifiers",
		Long: `AleutianML trains maximum-entropy (log-linear) classifiers from labeled
event files and persists them in a compact binary format for reuse without
retraining.`,
		SilenceUsage: true,
	}

	flagVerbose  bool
	flagJSONLogs bool
	flagQuiet    bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging, including per-iteration trainer diagnostics")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false,
		"force JSON log output (default when stderr is not a terminal)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false,
		"suppress log output")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(storeCmd)
}

// newLogger builds the CLI logger from the persistent flags. JSON format
// is used whenever stderr is not a terminal, so piped output stays
// machine-parseable.
func newLogger() *logging.Logger {
	level := logging.LevelInfo
	if flagVerbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{
		Level:   level,
		Service: "cli",
		JSON:    flagJSONLogs || !isatty.IsTerminal(os.Stderr.Fd()),
		Quiet:   flagQuiet,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
