package engine

import "github.com/variantly/configstudio/internal/model"

// ResolveComponentStates folds every visible option's effect onto the live
// components as a left fold over the options in array order. Array order
// is both author intent and conflict priority: a later option overwrites
// an earlier one for a shared component name.
//
// live maps component name to that component's baseline state (the neutral
// pre-configuration state, normally visible with no color override). The
// fold starts from a copy of these baselines and never mutates the input.
//
// Options that are hidden by a rule are skipped entirely: components they
// would have touched keep whatever the baseline or an earlier option
// already assigned. A visible option with no usable selection (none made,
// or the selected value is no longer eligible) mutates nothing; instead,
// if at least one of its values is eligible, the first such value in array
// order is reported in neededDefaults for the caller to apply.
//
// Target names with no live component are dropped silently from the
// output and reported to the diagnostics sink once per name.
func ResolveComponentStates(options []model.Option, selections model.SelectionState, vis VisibilityResult, live map[string]model.ComponentState, diag *Diagnostics) (states map[string]model.ComponentState, neededDefaults model.SelectionState) {
	states = make(map[string]model.ComponentState, len(live))
	for name, base := range live {
		states[name] = base
	}
	neededDefaults = model.SelectionState{}

	unknownReported := map[string]bool{}
	reportUnknown := func(opt model.Option, name string) {
		if !unknownReported[name] {
			unknownReported[name] = true
			diag.Warnf("option %s targets unknown component %q", opt.Name, name)
		}
	}

	for _, opt := range options {
		if opt.IsGroup {
			continue // groups carry no effect of their own
		}
		if !vis.OptionVisible(opt.ID) {
			continue
		}

		selectedID, hasSelection := selections[opt.ID]
		if hasSelection && !vis.ValueVisible(opt.ID, selectedID) {
			// Stale selection: the chosen value lost eligibility (or never
			// existed). Treat exactly like no selection at all.
			hasSelection = false
		}

		if !hasSelection {
			if def, ok := firstEligibleValue(opt, vis); ok {
				neededDefaults[opt.ID] = def
			}
			continue
		}

		val, ok := opt.FindValue(selectedID)
		if !ok {
			// ValueVisible guarantees existence; defensive against a
			// visibility result computed from a different option list.
			continue
		}

		switch opt.ManipulationType {
		case model.ManipulationVisibility:
			applyVisibility(opt, val, states, reportUnknown, diag)
		case model.ManipulationMaterial:
			applyMaterial(opt, val, states, reportUnknown, diag)
		default:
			diag.Warnf("option %s has unknown manipulation type %q", opt.Name, opt.ManipulationType)
		}
	}

	return states, neededDefaults
}

// firstEligibleValue returns the id of the first value, in array order,
// that is currently eligible.
func firstEligibleValue(opt model.Option, vis VisibilityResult) (string, bool) {
	for _, v := range opt.Values {
		if vis.ValueVisible(opt.ID, v.ID) {
			return v.ID, true
		}
	}
	return "", false
}

// applyVisibility imposes the option's default behavior on every target
// component, then applies the selected value's explicit component sets on
// top. Value-level overrides always win over the option's own default
// behavior.
func applyVisibility(opt model.Option, val model.OptionValue, states map[string]model.ComponentState, reportUnknown func(model.Option, string), diag *Diagnostics) {
	baseline := opt.DefaultBehavior == model.BehaviorShow
	for _, name := range opt.TargetComponents {
		st, ok := states[name]
		if !ok {
			reportUnknown(opt, name)
			continue
		}
		st.Visible = baseline
		states[name] = st
	}

	if val.Visibility == nil {
		if val.Material != nil {
			diag.Warnf("value %s of visibility option %s carries a material payload; ignored", val.Name, opt.Name)
		}
		return
	}
	for _, name := range val.Visibility.VisibleComponents {
		st, ok := states[name]
		if !ok {
			reportUnknown(opt, name)
			continue
		}
		st.Visible = true
		states[name] = st
	}
	for _, name := range val.Visibility.HiddenComponents {
		st, ok := states[name]
		if !ok {
			reportUnknown(opt, name)
			continue
		}
		st.Visible = false
		states[name] = st
	}
}

// applyMaterial sets the working color of every target component to the
// selected value's color. Material options never touch visibility.
func applyMaterial(opt model.Option, val model.OptionValue, states map[string]model.ComponentState, reportUnknown func(model.Option, string), diag *Diagnostics) {
	if val.Material == nil {
		diag.Warnf("value %s of material option %s has no material payload", val.Name, opt.Name)
		return
	}
	for _, name := range opt.TargetComponents {
		st, ok := states[name]
		if !ok {
			reportUnknown(opt, name)
			continue
		}
		st.Color = val.Material.Color
		states[name] = st
	}
}
