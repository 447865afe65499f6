package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/variantly/configstudio/internal/model"
)

func sampleProject() model.Project {
	p := model.NewProject()
	p.Name = "Desk Lamp"
	opt := model.NewOption("Shade Color", model.ManipulationMaterial)
	opt.TargetComponents = []string{"shade"}
	val := model.NewOptionValue("Brass")
	val.Material = &model.MaterialEffect{Color: "#b5a642"}
	opt.Values = append(opt.Values, val)
	p.Options = append(p.Options, opt)

	comp := model.NewComponent("shade")
	comp.Outline = model.RectOutline(0, 0, 40, 25)
	p.Components = append(p.Components, comp)
	p.Selections[opt.ID] = val.ID
	return p
}

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lamp"+FileExtension)
	p := sampleProject()

	if err := SaveProject(path, p, 0); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}
	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if loaded.Name != "Desk Lamp" {
		t.Errorf("expected name 'Desk Lamp', got %q", loaded.Name)
	}
	if len(loaded.Options) != 1 || len(loaded.Options[0].Values) != 1 {
		t.Fatalf("options did not round-trip: %+v", loaded.Options)
	}
	if loaded.Options[0].Values[0].Material == nil ||
		loaded.Options[0].Values[0].Material.Color != "#b5a642" {
		t.Error("material payload did not round-trip")
	}
	if len(loaded.Components) != 1 || len(loaded.Components[0].Outline) != 4 {
		t.Errorf("components did not round-trip: %+v", loaded.Components)
	}
	if len(loaded.Selections) != 1 {
		t.Errorf("expected 1 selection, got %d", len(loaded.Selections))
	}
}

func TestLoadProjectNormalizesAndPrunes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse"+FileExtension)
	// Hand-written file: nil collections and a selection for a deleted option.
	data := `{"name":"Sparse","selections":{"gone":"x"}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.Options == nil || p.Components == nil || p.Selections == nil {
		t.Error("nil collections must be normalized")
	}
	if len(p.Selections) != 0 {
		t.Errorf("stale selection should be pruned, got %v", p.Selections)
	}
}

func TestLoadProjectErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadProject(filepath.Join(dir, "missing"+FileExtension)); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad"+FileExtension)
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestSaveProjectRotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lamp"+FileExtension)
	p := sampleProject()

	// First save: nothing to back up yet.
	if err := SaveProject(path, p, 2); err != nil {
		t.Fatal(err)
	}
	backups, _ := ListBackups(path)
	if len(backups) != 0 {
		t.Fatalf("expected no backups after first save, got %d", len(backups))
	}

	// The backup name has second granularity; spread the saves out.
	for i := 0; i < 3; i++ {
		time.Sleep(1100 * time.Millisecond)
		p.Name = "rev"
		if err := SaveProject(path, p, 2); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := ListBackups(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups kept, got %d: %v", len(backups), backups)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("/home/x/projects/lamp" + FileExtension); got != "lamp" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := DisplayName("plain.json"); got != "plain.json" {
		t.Errorf("DisplayName = %q", got)
	}
}
