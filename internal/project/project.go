package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/variantly/configstudio/internal/model"
)

// FileExtension is the project file extension, including the dot.
const FileExtension = ".cfgstudio"

// SaveProject writes a project to the given path as indented JSON,
// creating missing parent directories. If maxBackups is positive and the
// file already exists, the previous contents are kept as a timestamped
// backup first.
func SaveProject(path string, p model.Project, maxBackups int) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if maxBackups > 0 {
		if err := rotateBackups(path, maxBackups); err != nil {
			return fmt.Errorf("failed to back up previous version: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the given path. Nil maps and slices
// are normalized and selections pointing at deleted options or values are
// pruned, so a loaded project always satisfies the model invariants.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Options == nil {
		p.Options = []model.Option{}
	}
	if p.Components == nil {
		p.Components = []model.Component{}
	}
	if p.Selections == nil {
		p.Selections = model.SelectionState{}
	}
	p.PruneSelections()
	return p, nil
}

// rotateBackups copies the current file aside as path.YYYYMMDD-HHMMSS.bak
// and deletes the oldest backups beyond the keep limit.
func rotateBackups(path string, keep int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	stamp := time.Now().Format("20060102-150405")
	backup := fmt.Sprintf("%s.%s.bak", path, stamp)
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return err
	}

	backups, err := ListBackups(path)
	if err != nil {
		return err
	}
	for len(backups) > keep {
		if err := os.Remove(backups[0]); err != nil {
			return err
		}
		backups = backups[1:]
	}
	return nil
}

// ListBackups returns the backup files for a project path, oldest first.
func ListBackups(path string) ([]string, error) {
	matches, err := filepath.Glob(path + ".*.bak")
	if err != nil {
		return nil, err
	}
	// The timestamp format sorts lexically.
	sort.Strings(matches)
	return matches, nil
}

// DisplayName derives a project title from its file path.
func DisplayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, FileExtension)
}
