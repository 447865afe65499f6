package engine

import "github.com/variantly/configstudio/internal/model"

// ComparisonScenario is a named selection set to resolve side by side,
// e.g. a saved preset or a what-if variant of the current configuration.
type ComparisonScenario struct {
	Name       string
	Selections model.SelectionState
}

// ComparisonResult holds the resolved outcome and summary statistics for
// a single scenario.
type ComparisonResult struct {
	Scenario          ComparisonScenario
	Result            Result
	VisibleComponents int
	HiddenComponents  int
	Recolored         int // components whose color differs from baseline
	UnselectedOptions int // eligible options left without a legal value
}

// CompareScenarios resolves each scenario against the same options and
// component baselines and returns the results in scenario order. Defaults
// are cascaded per scenario, so each result reflects what the configurator
// would actually show.
func CompareScenarios(options []model.Option, components map[string]model.ComponentState, scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res, merged := ResolveWithDefaults(Input{
			Options:    options,
			Selections: scenario.Selections,
			Components: components,
		}, nil)

		cr := ComparisonResult{Scenario: scenario, Result: res}
		for name, st := range res.ComponentStates {
			if st.Visible {
				cr.VisibleComponents++
			} else {
				cr.HiddenComponents++
			}
			if st.Color != "" && st.Color != components[name].Color {
				cr.Recolored++
			}
		}
		for _, opt := range options {
			if opt.IsGroup || !res.Visibility.OptionVisible(opt.ID) {
				continue
			}
			if _, ok := merged[opt.ID]; !ok {
				cr.UnselectedOptions++
			}
		}
		results = append(results, cr)
	}

	return results
}
