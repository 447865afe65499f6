package model

// Project ties everything together for save/load: the authored options in
// evaluation order, the component library, and the current selections.
type Project struct {
	Name       string         `json:"name"`
	Options    []Option       `json:"options"`
	Components []Component    `json:"components"`
	Selections SelectionState `json:"selections"`
}

func NewProject() Project {
	return Project{
		Name:       "Untitled",
		Options:    []Option{},
		Components: []Component{},
		Selections: SelectionState{},
	}
}

// Clone returns a deep copy of the project, independent of later edits.
func (p Project) Clone() Project {
	c := p
	c.Options = CloneOptions(p.Options)
	c.Selections = p.Selections.Clone()
	if p.Components != nil {
		c.Components = make([]Component, len(p.Components))
		for i, comp := range p.Components {
			cc := comp
			cc.Outline = append(Outline(nil), comp.Outline...)
			c.Components[i] = cc
		}
	}
	return c
}

// PruneSelections drops selection entries that no longer point at an
// existing option and value, and entries for options whose values list is
// empty. Called after destructive edits so the selection map never
// violates its invariants.
func (p *Project) PruneSelections() {
	for optID, valID := range p.Selections {
		opt, ok := FindOption(p.Options, optID)
		if !ok || len(opt.Values) == 0 {
			delete(p.Selections, optID)
			continue
		}
		if _, ok := opt.FindValue(valID); !ok {
			delete(p.Selections, optID)
		}
	}
}
