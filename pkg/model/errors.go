// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package model

import "fmt"

// ConfigError reports an invalid or missing training parameter. It is
// detected during validation, before any indexing work, and is always
// fatal to the training call.
type ConfigError struct {
	// Param is the offending parameter name.
	Param string

	// Value is the rejected value, empty when the parameter was required
	// but unset.
	Value string

	// Reason explains what was expected.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid training configuration: %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("invalid training configuration: %s=%q: %s", e.Param, e.Value, e.Reason)
}

// InsufficientDataError reports that the indexed training data cannot
// produce a meaningful classifier. The one hard gate is the outcome label
// count: a log-linear model over a single outcome is degenerate, and the
// numeric trainers may divide by zero or fail to converge on it, so
// training is rejected before the numeric trainer ever runs.
type InsufficientDataError struct {
	// Outcomes is the number of outcome labels found in the index.
	Outcomes int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("training data must contain more than one outcome (found %d)", e.Outcomes)
}
