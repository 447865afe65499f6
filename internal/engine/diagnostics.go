// Package engine implements the configuration-resolution core: deciding
// which options and values are currently eligible (rule evaluation) and
// folding every option's effect onto the named components of the product
// model into one consistent visibility/material state (scene resolution).
//
// The engine is pure and synchronous: it performs no I/O, treats its
// inputs as immutable snapshots, and returns new output structures. The
// caller owns the selection map and the live components and applies the
// returned states itself.
package engine

import "fmt"

// Diagnostics collects non-fatal warnings produced during resolution:
// dangling option/value/component references and malformed rules. All of
// these resolve to a safe default instead of an error, since the
// configurator must always render something. A nil *Diagnostics discards
// everything, so callers that don't care simply pass nil.
type Diagnostics struct {
	Warnings []string
}

// Warnf records a formatted warning. Safe on a nil receiver.
func (d *Diagnostics) Warnf(format string, args ...any) {
	if d == nil {
		return
	}
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}
