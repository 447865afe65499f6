// Package scene owns the live presentation state of the product model.
// The engine computes name-keyed component states; this package is the
// one place where those states are folded onto actual components. A real
// 3D backend would replace the Item struct, the Library contract stays.
package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/variantly/configstudio/internal/model"
)

// Item is one live component: its model definition plus the presentation
// state the preview reads.
type Item struct {
	Component model.Component
	Visible   bool
	Color     string // #rrggbb; empty means the component's base color
}

// Library is an ordered registry of live components, keyed by name.
// Order is the authoring order and drives the preview draw order.
type Library struct {
	items  []*Item
	byName map[string]*Item
}

// NewLibrary builds a library from model components, each starting at its
// base visibility and color.
func NewLibrary(components ...model.Component) *Library {
	l := &Library{byName: make(map[string]*Item, len(components))}
	for _, c := range components {
		l.Add(c)
	}
	return l
}

// Add registers a component. A duplicate name replaces the existing item
// in place, keeping its position.
func (l *Library) Add(c model.Component) *Item {
	item := &Item{Component: c, Visible: c.BaseVisible, Color: c.BaseColor}
	if existing, ok := l.byName[c.Name]; ok {
		*existing = *item
		return existing
	}
	l.items = append(l.items, item)
	l.byName[c.Name] = item
	return item
}

// Remove drops the named component. Reports whether it was present.
func (l *Library) Remove(name string) bool {
	item, ok := l.byName[name]
	if !ok {
		return false
	}
	delete(l.byName, name)
	for i, it := range l.items {
		if it == item {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the live item for a name.
func (l *Library) Get(name string) (*Item, bool) {
	item, ok := l.byName[name]
	return item, ok
}

// Items returns the live items in authoring order. The slice is shared;
// callers mutate presentation state through it deliberately (the editor
// does) or treat it as read-only (the preview does).
func (l *Library) Items() []*Item {
	return l.items
}

func (l *Library) Names() []string {
	names := make([]string, len(l.items))
	for i, it := range l.items {
		names[i] = it.Component.Name
	}
	return names
}

func (l *Library) Len() int { return len(l.items) }

// Snapshot exports the current presentation state as the name-keyed map
// the engine resolves against. The engine works on the copy; Apply brings
// its output back.
func (l *Library) Snapshot() map[string]model.ComponentState {
	out := make(map[string]model.ComponentState, len(l.items))
	for _, it := range l.items {
		out[it.Component.Name] = model.ComponentState{Visible: it.Visible, Color: it.Color}
	}
	return out
}

// Apply folds resolved states onto the live components. Names with no
// live component are skipped; the engine already warned about them.
func (l *Library) Apply(states map[string]model.ComponentState) {
	for name, state := range states {
		item, ok := l.byName[name]
		if !ok {
			continue
		}
		item.Visible = state.Visible
		item.Color = state.Color
	}
}

// Reset puts every component back to its base visibility and color.
func (l *Library) Reset() {
	for _, it := range l.items {
		it.Visible = it.Component.BaseVisible
		it.Color = it.Component.BaseColor
	}
}

// Components exports the model definitions in authoring order, for
// saving into a project file.
func (l *Library) Components() []model.Component {
	out := make([]model.Component, len(l.items))
	for i, it := range l.items {
		out[i] = it.Component
	}
	return out
}

// Bounds returns the bounding box enclosing every component outline.
// Components without an outline are ignored.
func (l *Library) Bounds() (min, max model.Point2D, ok bool) {
	for _, it := range l.items {
		if len(it.Component.Outline) == 0 {
			continue
		}
		lo, hi := it.Component.Outline.BoundingBox()
		if !ok {
			min, max, ok = lo, hi, true
			continue
		}
		if lo.X < min.X {
			min.X = lo.X
		}
		if lo.Y < min.Y {
			min.Y = lo.Y
		}
		if hi.X > max.X {
			max.X = hi.X
		}
		if hi.Y > max.Y {
			max.Y = hi.Y
		}
	}
	return min, max, ok
}

// Describe renders a short human-readable state summary, used by the
// status bar and the comparison dialog.
func (l *Library) Describe() string {
	if len(l.items) == 0 {
		return "no components"
	}
	visible := 0
	var hidden []string
	for _, it := range l.items {
		if it.Visible {
			visible++
		} else {
			hidden = append(hidden, it.Component.Name)
		}
	}
	if len(hidden) == 0 {
		return fmt.Sprintf("%d component(s) visible", visible)
	}
	sort.Strings(hidden)
	return fmt.Sprintf("%d visible, hidden: %s", visible, strings.Join(hidden, ", "))
}
