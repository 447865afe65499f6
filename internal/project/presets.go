package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/variantly/configstudio/internal/model"
)

// SelectionPreset is a named, saved set of selections. Presets are stored
// per user, not per project; applying one against a project that lacks
// some of its options simply leaves stale entries to be pruned.
type SelectionPreset struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Selections  model.SelectionState `json:"selections"`
}

func NewSelectionPreset(name string, selections model.SelectionState) SelectionPreset {
	return SelectionPreset{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Selections: selections.Clone(),
	}
}

// DefaultPresetsPath returns the default file path for saved presets.
func DefaultPresetsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "configstudio", "presets.json"), nil
}

// SavePresets saves presets to a JSON file.
func SavePresets(path string, presets []SelectionPreset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets loads presets from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadPresets(path string) ([]SelectionPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SelectionPreset{}, nil
		}
		return nil, err
	}
	var presets []SelectionPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, err
	}
	for i := range presets {
		if presets[i].Selections == nil {
			presets[i].Selections = model.SelectionState{}
		}
	}
	return presets, nil
}

// UpsertPreset replaces the preset with a matching id, or appends when no
// match exists. Returns the updated list.
func UpsertPreset(presets []SelectionPreset, p SelectionPreset) []SelectionPreset {
	for i := range presets {
		if presets[i].ID == p.ID {
			presets[i] = p
			return presets
		}
	}
	return append(presets, p)
}

// RemovePreset drops the preset with the given id. Returns the updated
// list and whether anything was removed.
func RemovePreset(presets []SelectionPreset, id string) ([]SelectionPreset, bool) {
	for i := range presets {
		if presets[i].ID == id {
			return append(presets[:i], presets[i+1:]...), true
		}
	}
	return presets, false
}

// ExportPreset writes a single preset to a JSON file for sharing.
func ExportPreset(path string, p SelectionPreset) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset reads a single preset from a JSON file. The preset gets a
// fresh id so an import can never collide with an existing preset.
func ImportPreset(path string) (SelectionPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectionPreset{}, err
	}
	var p SelectionPreset
	if err := json.Unmarshal(data, &p); err != nil {
		return SelectionPreset{}, err
	}
	if p.Name == "" {
		return SelectionPreset{}, fmt.Errorf("imported preset has no name")
	}
	if p.Selections == nil {
		p.Selections = model.SelectionState{}
	}
	p.ID = uuid.New().String()[:8]
	return p, nil
}
