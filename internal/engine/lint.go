package engine

import (
	"fmt"

	"github.com/variantly/configstudio/internal/model"
)

// IssueKind classifies a configuration lint finding.
type IssueKind string

const (
	IssueNoValues         IssueKind = "no_values"         // option with nothing to select
	IssueDanglingOption   IssueKind = "dangling_option"   // rule references a missing option
	IssueDanglingValue    IssueKind = "dangling_value"    // rule references a missing value
	IssueUnknownComponent IssueKind = "unknown_component" // target name with no component
	IssueOverrideOutside  IssueKind = "override_outside"  // value override beyond target list
	IssueTargetOverlap    IssueKind = "target_overlap"    // two options share a target
	IssueMissingPayload   IssueKind = "missing_payload"   // value without its effect payload
)

// Issue is one lint finding. All findings are informational: the engine
// resolves every one of them to a safe default at runtime, lint exists so
// authors can see them before publishing a configurator.
type Issue struct {
	Kind       IssueKind
	OptionID   string
	OptionName string
	Detail     string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Kind, i.OptionName, i.Detail)
}

// Lint statically checks an option list against the component library and
// reports every dangling reference, empty option, and target overlap.
// Overlaps are not defects — array order decides who wins — but authors
// usually want to know about them.
func Lint(options []model.Option, componentNames []string) []Issue {
	var issues []Issue

	components := make(map[string]bool, len(componentNames))
	for _, n := range componentNames {
		components[n] = true
	}
	byID := make(map[string]model.Option, len(options))
	for _, o := range options {
		byID[o.ID] = o
	}

	for _, opt := range options {
		if !opt.IsGroup && len(opt.Values) == 0 {
			issues = append(issues, Issue{
				Kind: IssueNoValues, OptionID: opt.ID, OptionName: opt.Name,
				Detail: "option has no values and can never be selected",
			})
		}

		issues = append(issues, lintRule(opt, opt.ConditionalLogic, byID)...)

		targets := make(map[string]bool, len(opt.TargetComponents))
		for _, name := range opt.TargetComponents {
			targets[name] = true
			if !components[name] {
				issues = append(issues, Issue{
					Kind: IssueUnknownComponent, OptionID: opt.ID, OptionName: opt.Name,
					Detail: fmt.Sprintf("target component %q does not exist", name),
				})
			}
		}

		for _, val := range opt.Values {
			issues = append(issues, lintRule(opt, val.ConditionalLogic, byID)...)
			issues = append(issues, lintValuePayload(opt, val, targets, components)...)
		}
	}

	issues = append(issues, lintOverlaps(options)...)
	return issues
}

// lintRule checks every condition of a rule for dangling references.
// Disabled rules are still checked: a broken rule the author plans to
// re-enable is exactly what lint should surface.
func lintRule(owner model.Option, rule *model.ConditionalLogic, byID map[string]model.Option) []Issue {
	if rule == nil {
		return nil
	}
	var issues []Issue
	for _, cond := range rule.Conditions {
		ref, ok := byID[cond.OptionID]
		if !ok {
			issues = append(issues, Issue{
				Kind: IssueDanglingOption, OptionID: owner.ID, OptionName: owner.Name,
				Detail: fmt.Sprintf("condition references unknown option %q", cond.OptionID),
			})
			continue
		}
		if _, ok := ref.FindValue(cond.ValueID); !ok {
			issues = append(issues, Issue{
				Kind: IssueDanglingValue, OptionID: owner.ID, OptionName: owner.Name,
				Detail: fmt.Sprintf("condition references unknown value %q of option %s", cond.ValueID, ref.Name),
			})
		}
	}
	return issues
}

// lintValuePayload checks a value's effect payload against its owning
// option's type and target list.
func lintValuePayload(opt model.Option, val model.OptionValue, targets, components map[string]bool) []Issue {
	var issues []Issue

	switch opt.ManipulationType {
	case model.ManipulationMaterial:
		if val.Material == nil || val.Material.Color == "" {
			issues = append(issues, Issue{
				Kind: IssueMissingPayload, OptionID: opt.ID, OptionName: opt.Name,
				Detail: fmt.Sprintf("material value %q has no color", val.Name),
			})
		}
	case model.ManipulationVisibility:
		if val.Visibility == nil {
			return issues // bare default-behavior values are fine
		}
		names := append(append([]string(nil), val.Visibility.VisibleComponents...), val.Visibility.HiddenComponents...)
		for _, name := range names {
			if !components[name] {
				issues = append(issues, Issue{
					Kind: IssueUnknownComponent, OptionID: opt.ID, OptionName: opt.Name,
					Detail: fmt.Sprintf("value %q overrides unknown component %q", val.Name, name),
				})
			} else if !targets[name] {
				issues = append(issues, Issue{
					Kind: IssueOverrideOutside, OptionID: opt.ID, OptionName: opt.Name,
					Detail: fmt.Sprintf("value %q overrides component %q outside the option's target list", val.Name, name),
				})
			}
		}
	}
	return issues
}

// lintOverlaps reports each pair of options whose target sets intersect.
// Only one issue per pair, attributed to the later option (the winner).
func lintOverlaps(options []model.Option) []Issue {
	var issues []Issue
	for i, earlier := range options {
		targets := make(map[string]bool, len(earlier.TargetComponents))
		for _, name := range earlier.TargetComponents {
			targets[name] = true
		}
		for _, later := range options[i+1:] {
			var shared []string
			for _, name := range later.TargetComponents {
				if targets[name] {
					shared = append(shared, name)
				}
			}
			if len(shared) > 0 {
				issues = append(issues, Issue{
					Kind: IssueTargetOverlap, OptionID: later.ID, OptionName: later.Name,
					Detail: fmt.Sprintf("shares target(s) %v with earlier option %s; later option wins", shared, earlier.Name),
				})
			}
		}
	}
	return issues
}
