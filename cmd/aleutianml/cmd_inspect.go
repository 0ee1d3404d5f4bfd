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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianML/pkg/maxent"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [model.bin]",
	Short: "Print a summary of a persisted model",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspectCommand,
}

var flagShowPredicates bool

func init() {
	inspectCmd.Flags().BoolVar(&flagShowPredicates, "predicates", false,
		"also list every predicate with its outcomes and weights")
}

func runInspectCommand(cmd *cobra.Command, args []string) error {
	m, err := maxent.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "format:     %s\n", m.Algorithm)
	fmt.Fprintf(out, "outcomes:   %d\n", m.NumOutcomes())
	for i, label := range m.OutcomeLabels {
		fmt.Fprintf(out, "  [%d] %s\n", i, label)
	}
	fmt.Fprintf(out, "predicates: %d\n", m.NumPredicates())

	if flagShowPredicates {
		for _, name := range m.PredicateNames() {
			pred := m.Predicates[name]
			fmt.Fprintf(out, "  %s:", name)
			for i, o := range pred.Outcomes {
				fmt.Fprintf(out, " %s=%.6f", m.OutcomeLabels[o], pred.Params[i])
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}
