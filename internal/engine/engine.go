package engine

import "github.com/variantly/configstudio/internal/model"

// Input is one immutable snapshot of everything a resolution pass needs.
// Components maps component name to its baseline state.
type Input struct {
	Options    []model.Option
	Selections model.SelectionState
	Components map[string]model.ComponentState
}

// Result is the output of one resolution pass.
type Result struct {
	Visibility      VisibilityResult
	ComponentStates map[string]model.ComponentState
	DefaultsToApply model.SelectionState
}

// Resolve runs one full pass: rule evaluation followed by the component
// state fold. It never re-enters itself; if DefaultsToApply is non-empty
// the caller merges those selections and resolves once more (or uses
// ResolveWithDefaults, which does exactly that).
func Resolve(in Input, diag *Diagnostics) Result {
	vis := ResolveVisibility(in.Options, in.Selections, diag)
	states, defaults := ResolveComponentStates(in.Options, in.Selections, vis, in.Components, diag)
	return Result{
		Visibility:      vis,
		ComponentStates: states,
		DefaultsToApply: defaults,
	}
}

// ResolveWithDefaults runs Resolve and, if any newly eligible options lack
// a selection, merges the reported defaults into a copy of the selections
// and resolves exactly once more. The returned selection map is the one
// the final result was computed from; the caller adopts it as the new
// authoritative state.
//
// The cascade is bounded by construction: defaults are only reported for
// options without a selection, and the merge fills every such option that
// has an eligible value, so a second pass cannot report the same option
// again. If a default choice made some other option ineligible-to-select
// (all its values ruled out), that option is simply left unselected; the
// leftover defaults are discarded and a warning is recorded.
func ResolveWithDefaults(in Input, diag *Diagnostics) (Result, model.SelectionState) {
	first := Resolve(in, diag)
	if len(first.DefaultsToApply) == 0 {
		return first, in.Selections
	}

	merged := in.Selections.Clone()
	for optID, valID := range first.DefaultsToApply {
		merged[optID] = valID
	}

	second := Resolve(Input{
		Options:    in.Options,
		Selections: merged,
		Components: in.Components,
	}, diag)

	// A default from the first pass can be ruled out by another default
	// on the second pass. Such options stay unselected rather than
	// carrying a stale selection forward.
	stale := 0
	for optID := range first.DefaultsToApply {
		if second.Visibility.OptionVisible(optID) && !second.Visibility.ValueVisible(optID, merged[optID]) {
			delete(merged, optID)
			stale++
		}
	}
	if stale != 0 || len(second.DefaultsToApply) != 0 {
		diag.Warnf("default cascade did not converge; %d option(s) left unselected", stale+len(second.DefaultsToApply))
		second.DefaultsToApply = model.SelectionState{}
	}
	return second, merged
}
