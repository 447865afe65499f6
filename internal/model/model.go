package model

import "github.com/google/uuid"

// ManipulationType determines what aspect of the target components an
// option controls.
type ManipulationType string

const (
	ManipulationVisibility ManipulationType = "visibility" // toggles component visibility
	ManipulationMaterial   ManipulationType = "material"   // recolors component material
)

// DefaultBehavior is the visibility baseline a visibility option imposes
// on its target components before any value-level override is applied.
type DefaultBehavior string

const (
	BehaviorHide DefaultBehavior = "hide"
	BehaviorShow DefaultBehavior = "show"
)

// DisplayType is a presentation hint for how an option's values are shown
// in the configurator UI. The resolution engine ignores it.
type DisplayType string

const (
	DisplayButtons  DisplayType = "buttons"
	DisplayDropdown DisplayType = "dropdown"
	DisplaySwatches DisplayType = "swatches"
)

// Operator compares a referenced option's current selection against a
// specific value id.
type Operator string

const (
	OperatorEquals    Operator = "equals"
	OperatorNotEquals Operator = "not_equals"
)

// Combinator joins the conditions of a rule.
type Combinator string

const (
	CombinatorAnd Combinator = "and"
	CombinatorOr  Combinator = "or"
)

// Condition references another option's current selection and compares it
// to a target value id.
type Condition struct {
	OptionID string   `json:"option_id"`
	Operator Operator `json:"operator"`
	ValueID  string   `json:"value_id"`
}

// ConditionalLogic gates the eligibility of an option or option value.
// A disabled rule (or one with no conditions) always evaluates to eligible.
// Conditions form a flat list joined by a single combinator; an empty
// combinator is treated as AND.
type ConditionalLogic struct {
	Enabled    bool        `json:"enabled"`
	Combinator Combinator  `json:"combinator,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
}

// MaterialEffect is the payload of a value belonging to a material option.
type MaterialEffect struct {
	Color string `json:"color"` // #rrggbb
}

// VisibilityEffect is the payload of a value belonging to a visibility
// option. The two name sets explicitly override the option's default
// behavior for the listed components.
type VisibilityEffect struct {
	VisibleComponents []string `json:"visible_components,omitempty"`
	HiddenComponents  []string `json:"hidden_components,omitempty"`
}

// OptionValue is one concrete choice within an option. Exactly one payload
// (Material or Visibility) should be set, matching the owning option's
// manipulation type; a missing or mismatched payload is applied as a no-op.
type OptionValue struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Material         *MaterialEffect   `json:"material,omitempty"`
	Visibility       *VisibilityEffect `json:"visibility,omitempty"`
	ConditionalLogic *ConditionalLogic `json:"conditional_logic,omitempty"`
}

// Option is a user-facing configurable axis (e.g. "Finish") with an
// ordered set of values. Options live in a flat ordered list; array order
// is both author intent and conflict-resolution priority (later options
// overwrite earlier ones on shared components). Group membership is a
// label only and never affects evaluation.
type Option struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	ManipulationType ManipulationType  `json:"manipulation_type"`
	DisplayType      DisplayType       `json:"display_type,omitempty"`
	TargetComponents []string          `json:"target_components,omitempty"`
	DefaultBehavior  DefaultBehavior   `json:"default_behavior,omitempty"` // visibility options only
	Values           []OptionValue     `json:"values,omitempty"`
	ConditionalLogic *ConditionalLogic `json:"conditional_logic,omitempty"`
	GroupID          string            `json:"group_id,omitempty"`
	IsGroup          bool              `json:"is_group,omitempty"`
}

func NewOption(name string, mt ManipulationType) Option {
	opt := Option{
		ID:               uuid.New().String()[:8],
		Name:             name,
		ManipulationType: mt,
		DisplayType:      DisplayButtons,
	}
	switch mt {
	case ManipulationVisibility:
		opt.DefaultBehavior = BehaviorHide
	case ManipulationMaterial:
		opt.DisplayType = DisplaySwatches
	}
	return opt
}

func NewGroup(name string) Option {
	return Option{
		ID:      uuid.New().String()[:8],
		Name:    name,
		IsGroup: true,
	}
}

func NewOptionValue(name string) OptionValue {
	return OptionValue{
		ID:   uuid.New().String()[:8],
		Name: name,
	}
}

// FindValue returns the value with the given id and true, or a zero value
// and false.
func (o Option) FindValue(id string) (OptionValue, bool) {
	for _, v := range o.Values {
		if v.ID == id {
			return v, true
		}
	}
	return OptionValue{}, false
}

// FindOption returns the option with the given id and true, or a zero
// option and false.
func FindOption(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// SelectionState maps option id to the currently selected value id. It is
// the authoritative current state; the engine never mutates it, the
// caller applies reported defaults itself.
type SelectionState map[string]string

// Clone returns an independent copy. A nil state clones to an empty,
// non-nil map so callers can assign into it.
func (s SelectionState) Clone() SelectionState {
	out := make(SelectionState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ComponentState is the resolved presentation state for one named
// component: whether it is visible and, if a material option touched it,
// the color it should take. An empty Color means "keep the component's
// own material".
type ComponentState struct {
	Visible bool   `json:"visible"`
	Color   string `json:"color,omitempty"`
}

// CloneOptions deep-copies an option list, including values, payloads and
// rules, so snapshots (undo history, engine inputs) are independent of
// later edits.
func CloneOptions(options []Option) []Option {
	if options == nil {
		return nil
	}
	out := make([]Option, len(options))
	for i, o := range options {
		out[i] = cloneOption(o)
	}
	return out
}

func cloneOption(o Option) Option {
	c := o
	c.TargetComponents = append([]string(nil), o.TargetComponents...)
	c.ConditionalLogic = cloneRule(o.ConditionalLogic)
	if o.Values != nil {
		c.Values = make([]OptionValue, len(o.Values))
		for i, v := range o.Values {
			c.Values[i] = cloneValue(v)
		}
	}
	return c
}

func cloneValue(v OptionValue) OptionValue {
	c := v
	if v.Material != nil {
		m := *v.Material
		c.Material = &m
	}
	if v.Visibility != nil {
		c.Visibility = &VisibilityEffect{
			VisibleComponents: append([]string(nil), v.Visibility.VisibleComponents...),
			HiddenComponents:  append([]string(nil), v.Visibility.HiddenComponents...),
		}
	}
	c.ConditionalLogic = cloneRule(v.ConditionalLogic)
	return c
}

func cloneRule(r *ConditionalLogic) *ConditionalLogic {
	if r == nil {
		return nil
	}
	c := *r
	c.Conditions = append([]Condition(nil), r.Conditions...)
	return &c
}
