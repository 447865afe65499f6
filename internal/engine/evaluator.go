package engine

import "github.com/variantly/configstudio/internal/model"

// VisibilityResult reports which options and which of their values are
// currently eligible. Sets are keyed by id; ordering is carried by the
// option list itself, so consumers iterate the options in array order and
// filter through these sets.
type VisibilityResult struct {
	VisibleOptionIDs map[string]bool
	VisibleValueIDs  map[string]map[string]bool
}

// OptionVisible reports whether the option with the given id is eligible.
func (r VisibilityResult) OptionVisible(id string) bool {
	return r.VisibleOptionIDs[id]
}

// ValueVisible reports whether a value of the given option is eligible.
// Values of hidden options are never eligible.
func (r VisibilityResult) ValueVisible(optionID, valueID string) bool {
	return r.VisibleValueIDs[optionID][valueID]
}

// ResolveVisibility evaluates every option's conditional logic against the
// current selections in a single linear pass over the options in array
// order. For each visible option it also evaluates each value's own rule,
// producing the per-option subset of selectable value ids.
//
// Conditions only reference raw selections, never another option's
// computed visibility, so evaluation depth is exactly one: no recursion,
// no cycle detection. Group options are evaluated by the same rule as any
// other option; a group's visibility never cascades to its members.
func ResolveVisibility(options []model.Option, selections model.SelectionState, diag *Diagnostics) VisibilityResult {
	known := make(map[string]bool, len(options))
	for _, o := range options {
		known[o.ID] = true
	}

	res := VisibilityResult{
		VisibleOptionIDs: make(map[string]bool, len(options)),
		VisibleValueIDs:  make(map[string]map[string]bool, len(options)),
	}

	for _, opt := range options {
		if !ruleSatisfied(opt.ConditionalLogic, known, selections, diag, "option "+opt.Name) {
			continue
		}
		res.VisibleOptionIDs[opt.ID] = true

		values := make(map[string]bool, len(opt.Values))
		for _, val := range opt.Values {
			if ruleSatisfied(val.ConditionalLogic, known, selections, diag, "value "+val.Name+" of option "+opt.Name) {
				values[val.ID] = true
			}
		}
		res.VisibleValueIDs[opt.ID] = values
	}

	return res
}

// ruleSatisfied evaluates one rule against the selection map. A nil or
// disabled rule, or one with no conditions, is always satisfied. A missing
// or unrecognized combinator is treated as AND. AND short-circuits on the
// first false condition, OR on the first true one.
func ruleSatisfied(rule *model.ConditionalLogic, known map[string]bool, selections model.SelectionState, diag *Diagnostics, owner string) bool {
	if rule == nil || !rule.Enabled || len(rule.Conditions) == 0 {
		return true
	}

	if rule.Combinator == model.CombinatorOr {
		for _, cond := range rule.Conditions {
			if conditionHolds(cond, known, selections, diag, owner) {
				return true
			}
		}
		return false
	}

	for _, cond := range rule.Conditions {
		if !conditionHolds(cond, known, selections, diag, owner) {
			return false
		}
	}
	return true
}

// conditionHolds evaluates a single condition against the selections.
//
// The unset-selection asymmetry is deliberate and load-bearing: an equals
// condition against an option with no current selection is false (nothing
// is chosen, so nothing is equal), while a not-equals condition against an
// unset selection is true (there is no equal value to violate). This is
// what makes "show unless X is chosen" rules behave before X is touched.
// A condition referencing an option that does not exist at all is always
// false, regardless of operator.
func conditionHolds(cond model.Condition, known map[string]bool, selections model.SelectionState, diag *Diagnostics, owner string) bool {
	if !known[cond.OptionID] {
		diag.Warnf("%s: condition references unknown option %q", owner, cond.OptionID)
		return false
	}

	selected, hasSelection := selections[cond.OptionID]

	switch cond.Operator {
	case model.OperatorEquals:
		return hasSelection && selected == cond.ValueID
	case model.OperatorNotEquals:
		return !hasSelection || selected != cond.ValueID
	default:
		diag.Warnf("%s: unknown operator %q", owner, cond.Operator)
		return false
	}
}
