package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantly/configstudio/internal/model"
)

func baselineComponents(names ...string) map[string]model.ComponentState {
	out := make(map[string]model.ComponentState, len(names))
	for _, n := range names {
		out[n] = model.ComponentState{Visible: true}
	}
	return out
}

func resolve(t *testing.T, options []model.Option, selections model.SelectionState, components map[string]model.ComponentState) Result {
	t.Helper()
	vis := ResolveVisibility(options, selections, nil)
	states, defaults := ResolveComponentStates(options, selections, vis, components, nil)
	return Result{Visibility: vis, ComponentStates: states, DefaultsToApply: defaults}
}

func TestResolveComponentStates_VisibilityScenario(t *testing.T) {
	// The worked example: a hide-by-default finish option where each value
	// reveals one of the two caps.
	options := []model.Option{{
		ID:               "finish",
		Name:             "Finish",
		ManipulationType: model.ManipulationVisibility,
		DefaultBehavior:  model.BehaviorHide,
		TargetComponents: []string{"capA", "capB"},
		Values: []model.OptionValue{
			visValue("v1", "Cap A", []string{"capA"}, nil),
			visValue("v2", "Cap B", []string{"capB"}, nil),
		},
	}}
	components := baselineComponents("capA", "capB")

	res := resolve(t, options, model.SelectionState{"finish": "v1"}, components)

	assert.Equal(t, model.ComponentState{Visible: true}, res.ComponentStates["capA"])
	assert.Equal(t, model.ComponentState{Visible: false}, res.ComponentStates["capB"])
	assert.Empty(t, res.DefaultsToApply)
}

func TestResolveComponentStates_LaterOptionWins(t *testing.T) {
	options := []model.Option{
		{
			ID: "a", Name: "A", ManipulationType: model.ManipulationVisibility,
			DefaultBehavior:  model.BehaviorHide,
			TargetComponents: []string{"lid"},
			Values:           []model.OptionValue{{ID: "a1"}},
		},
		{
			ID: "b", Name: "B", ManipulationType: model.ManipulationVisibility,
			DefaultBehavior:  model.BehaviorShow,
			TargetComponents: []string{"lid"},
			Values:           []model.OptionValue{{ID: "b1"}},
		},
	}
	components := baselineComponents("lid")
	selections := model.SelectionState{"a": "a1", "b": "b1"}

	res := resolve(t, options, selections, components)
	assert.True(t, res.ComponentStates["lid"].Visible, "option B comes later in array order and wins")

	// Swapping array order flips the outcome.
	res = resolve(t, []model.Option{options[1], options[0]}, selections, components)
	assert.False(t, res.ComponentStates["lid"].Visible)
}

func TestResolveComponentStates_HiddenOptionDoesNotInterfere(t *testing.T) {
	options := []model.Option{
		{ID: "switch", Values: []model.OptionValue{{ID: "on"}, {ID: "off"}}},
		{
			ID: "hider", Name: "Hider", ManipulationType: model.ManipulationVisibility,
			DefaultBehavior:  model.BehaviorHide,
			TargetComponents: []string{"ring"},
			Values:           []model.OptionValue{{ID: "h1"}},
			ConditionalLogic: rule(model.CombinatorAnd, equals("switch", "on")),
		},
	}
	components := baselineComponents("ring")

	// Hider is ineligible: ring keeps its neutral baseline, it is NOT
	// forced to the hider's default behavior.
	res := resolve(t, options, model.SelectionState{"switch": "off", "hider": "h1"}, components)
	assert.True(t, res.ComponentStates["ring"].Visible)

	res = resolve(t, options, model.SelectionState{"switch": "on", "hider": "h1"}, components)
	assert.False(t, res.ComponentStates["ring"].Visible)
}

func TestResolveComponentStates_ValueOverridesBeatDefaultBehavior(t *testing.T) {
	options := []model.Option{{
		ID: "panels", ManipulationType: model.ManipulationVisibility,
		DefaultBehavior:  model.BehaviorShow,
		TargetComponents: []string{"left", "right", "back"},
		Values: []model.OptionValue{
			visValue("open", "Open back", nil, []string{"back"}),
		},
	}}
	components := baselineComponents("left", "right", "back")

	res := resolve(t, options, model.SelectionState{"panels": "open"}, components)
	assert.True(t, res.ComponentStates["left"].Visible)
	assert.True(t, res.ComponentStates["right"].Visible)
	assert.False(t, res.ComponentStates["back"].Visible, "value-level hide wins over show default")
}

func TestResolveComponentStates_MaterialSetsColorOnly(t *testing.T) {
	options := []model.Option{{
		ID: "color", ManipulationType: model.ManipulationMaterial,
		TargetComponents: []string{"body", "lid"},
		Values: []model.OptionValue{
			matValue("red", "Red", "#cc0000"),
			matValue("blue", "Blue", "#0044cc"),
		},
	}}
	components := map[string]model.ComponentState{
		"body": {Visible: true},
		"lid":  {Visible: false}, // baseline-hidden component
	}

	res := resolve(t, options, model.SelectionState{"color": "blue"}, components)
	assert.Equal(t, "#0044cc", res.ComponentStates["body"].Color)
	assert.Equal(t, "#0044cc", res.ComponentStates["lid"].Color)
	assert.False(t, res.ComponentStates["lid"].Visible, "material options never touch visibility")
}

func TestResolveComponentStates_StaleSelectionTreatedAsUnselected(t *testing.T) {
	options := []model.Option{
		{ID: "size", Values: []model.OptionValue{{ID: "small"}, {ID: "large"}}},
		{
			ID: "trim", ManipulationType: model.ManipulationMaterial,
			TargetComponents: []string{"body"},
			Values: []model.OptionValue{
				matValue("steel", "Steel", "#888888"),
				{ID: "gold", Name: "Gold",
					Material:         &model.MaterialEffect{Color: "#ccaa00"},
					ConditionalLogic: rule(model.CombinatorAnd, equals("size", "large"))},
			},
		},
	}
	components := baselineComponents("body")

	// gold was chosen while size=large; size flips to small and the
	// selection goes stale. The option behaves as unselected and the first
	// eligible value (steel) is reported as the needed default.
	res := resolve(t, options, model.SelectionState{"size": "small", "trim": "gold"}, components)
	assert.Empty(t, res.ComponentStates["body"].Color)
	assert.Equal(t, model.SelectionState{"trim": "steel"}, res.DefaultsToApply)
}

func TestResolveComponentStates_SelectionForMissingValue(t *testing.T) {
	options := []model.Option{{
		ID: "color", ManipulationType: model.ManipulationMaterial,
		TargetComponents: []string{"body"},
		Values:           []model.OptionValue{matValue("red", "Red", "#cc0000")},
	}}
	components := baselineComponents("body")

	// Inconsistent selection: value id not present in the option's values.
	res := resolve(t, options, model.SelectionState{"color": "deleted"}, components)
	assert.Empty(t, res.ComponentStates["body"].Color)
	assert.Equal(t, model.SelectionState{"color": "red"}, res.DefaultsToApply)
}

func TestResolveComponentStates_UnknownTargetsDroppedAndLogged(t *testing.T) {
	options := []model.Option{{
		ID: "color", Name: "Color", ManipulationType: model.ManipulationMaterial,
		TargetComponents: []string{"body", "phantom"},
		Values:           []model.OptionValue{matValue("red", "Red", "#cc0000")},
	}}
	components := baselineComponents("body")

	vis := ResolveVisibility(options, model.SelectionState{"color": "red"}, nil)
	diag := &Diagnostics{}
	states, _ := ResolveComponentStates(options, model.SelectionState{"color": "red"}, vis, components, diag)

	assert.Equal(t, "#cc0000", states["body"].Color)
	_, ok := states["phantom"]
	assert.False(t, ok, "names with no live component are dropped")
	require.Len(t, diag.Warnings, 1)
	assert.Contains(t, diag.Warnings[0], "phantom")
}

func TestResolveComponentStates_InputsNotMutated(t *testing.T) {
	options := []model.Option{{
		ID: "color", ManipulationType: model.ManipulationMaterial,
		TargetComponents: []string{"body"},
		Values:           []model.OptionValue{matValue("red", "Red", "#cc0000")},
	}}
	components := baselineComponents("body")
	selections := model.SelectionState{"color": "red"}

	resolve(t, options, selections, components)

	assert.Equal(t, model.ComponentState{Visible: true}, components["body"], "baseline map must not be mutated")
	assert.Equal(t, model.SelectionState{"color": "red"}, selections)
}

func TestResolve_DefaultCascadeAndIdempotence(t *testing.T) {
	// Two visibility options both targeting "ring": opt1 is selected and
	// shows it, opt2 is unselected with a single eligible value that hides
	// it. The cascade selects opt2's value; being later in order, opt2
	// wins on "ring".
	options := []model.Option{
		{
			ID: "opt1", ManipulationType: model.ManipulationVisibility,
			DefaultBehavior:  model.BehaviorShow,
			TargetComponents: []string{"ring"},
			Values:           []model.OptionValue{{ID: "v1"}},
		},
		{
			ID: "opt2", ManipulationType: model.ManipulationVisibility,
			DefaultBehavior:  model.BehaviorHide,
			TargetComponents: []string{"ring"},
			Values:           []model.OptionValue{{ID: "v2"}},
		},
	}
	in := Input{
		Options:    options,
		Selections: model.SelectionState{"opt1": "v1"},
		Components: baselineComponents("ring"),
	}

	first := Resolve(in, nil)
	assert.Equal(t, model.SelectionState{"opt2": "v2"}, first.DefaultsToApply)
	// The unselected option touched nothing on the first pass.
	assert.True(t, first.ComponentStates["ring"].Visible)

	res, merged := ResolveWithDefaults(in, nil)
	assert.Empty(t, res.DefaultsToApply)
	assert.Equal(t, "v2", merged["opt2"])
	assert.False(t, res.ComponentStates["ring"].Visible, "after the cascade opt2's hide wins by order")

	// Idempotence: resolving again with the merged selections reports no
	// further defaults and the same states.
	again := Resolve(Input{Options: options, Selections: merged, Components: in.Components}, nil)
	assert.Empty(t, again.DefaultsToApply)
	assert.Equal(t, res.ComponentStates, again.ComponentStates)

	// The caller's original selection map is untouched.
	_, ok := in.Selections["opt2"]
	assert.False(t, ok)
}

func TestResolveWithDefaults_NonConvergingOptionLeftUnselected(t *testing.T) {
	// The default for "first" makes "second"'s only value ineligible on
	// the re-resolution pass, so second is left unselected. Not an error.
	options := []model.Option{
		{ID: "first", ManipulationType: model.ManipulationVisibility,
			DefaultBehavior:  model.BehaviorShow,
			TargetComponents: []string{"body"},
			Values:           []model.OptionValue{visValue("f1", "F1", []string{"body"}, nil)}},
		{ID: "second", ManipulationType: model.ManipulationMaterial,
			TargetComponents: []string{"body"},
			Values: []model.OptionValue{
				{ID: "s1", Material: &model.MaterialEffect{Color: "#111111"},
					ConditionalLogic: rule(model.CombinatorAnd, notEquals("first", "f1"))},
			},
		},
	}
	in := Input{
		Options:    options,
		Selections: model.SelectionState{},
		Components: baselineComponents("body"),
	}

	diag := &Diagnostics{}
	res, merged := ResolveWithDefaults(in, diag)

	assert.Empty(t, res.DefaultsToApply, "no unbounded retries")
	assert.Equal(t, "f1", merged["first"])
	_, ok := merged["second"]
	assert.False(t, ok, "second has no legal value and stays unselected")
	assert.Empty(t, res.ComponentStates["body"].Color)
	require.Len(t, diag.Warnings, 1)
	assert.Contains(t, diag.Warnings[0], "did not converge")
}

func TestResolveWithDefaults_NoDefaultsNeeded(t *testing.T) {
	options := []model.Option{{
		ID: "color", ManipulationType: model.ManipulationMaterial,
		TargetComponents: []string{"body"},
		Values:           []model.OptionValue{matValue("red", "Red", "#cc0000")},
	}}
	in := Input{
		Options:    options,
		Selections: model.SelectionState{"color": "red"},
		Components: baselineComponents("body"),
	}

	res, merged := ResolveWithDefaults(in, nil)
	assert.Empty(t, res.DefaultsToApply)
	assert.Equal(t, in.Selections, merged)
}

func TestCompareScenarios(t *testing.T) {
	options := []model.Option{{
		ID: "color", ManipulationType: model.ManipulationMaterial,
		TargetComponents: []string{"body"},
		Values: []model.OptionValue{
			matValue("red", "Red", "#cc0000"),
			matValue("blue", "Blue", "#0044cc"),
		},
	}}
	components := baselineComponents("body")

	results := CompareScenarios(options, components, []ComparisonScenario{
		{Name: "Red", Selections: model.SelectionState{"color": "red"}},
		{Name: "Untouched", Selections: model.SelectionState{}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "#cc0000", results[0].Result.ComponentStates["body"].Color)
	assert.Equal(t, 1, results[0].Recolored)
	// The empty scenario cascades to the first value.
	assert.Equal(t, "#cc0000", results[1].Result.ComponentStates["body"].Color)
	assert.Equal(t, 0, results[1].UnselectedOptions)
}
