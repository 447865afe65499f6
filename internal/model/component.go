package model

import "github.com/google/uuid"

// Component describes one named part of the product model. The name is the
// key every option's target list refers to; the outline is the flat
// silhouette the preview canvas draws. The live presentation state
// (visible, current color) is owned by the scene layer, not the model.
type Component struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Outline     Outline `json:"outline,omitempty"`
	BaseColor   string  `json:"base_color,omitempty"` // #rrggbb; empty = theme default
	BaseVisible bool    `json:"base_visible"`
}

func NewComponent(name string) Component {
	return Component{
		ID:          uuid.New().String()[:8],
		Name:        name,
		BaseVisible: true,
	}
}

// FindComponent returns the component with the given name and true, or a
// zero component and false. Names are the lookup key; ids exist only for
// stable editing references.
func FindComponent(components []Component, name string) (Component, bool) {
	for _, c := range components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// ComponentNames returns the component names in list order.
func ComponentNames(components []Component) []string {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name
	}
	return names
}
