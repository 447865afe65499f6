package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/variantly/configstudio/internal/engine"
	"github.com/variantly/configstudio/internal/model"
)

// buildTestProject creates a small resolved configuration for testing.
func buildTestProject() (model.Project, engine.Result) {
	p := model.NewProject()
	p.Name = "Desk Lamp"

	colorOpt := model.NewOption("Shade Color", model.ManipulationMaterial)
	colorOpt.TargetComponents = []string{"shade"}
	red := model.NewOptionValue("Red")
	red.Material = &model.MaterialEffect{Color: "#cc0000"}
	blue := model.NewOptionValue("Blue")
	blue.Material = &model.MaterialEffect{Color: "#0044cc"}
	colorOpt.Values = []model.OptionValue{red, blue}

	topOpt := model.NewOption("Top Style", model.ManipulationVisibility)
	topOpt.TargetComponents = []string{"top-flat", "top-dome"}
	flat := model.NewOptionValue("Flat")
	flat.Visibility = &model.VisibilityEffect{VisibleComponents: []string{"top-flat"}}
	dome := model.NewOptionValue("Dome")
	dome.Visibility = &model.VisibilityEffect{VisibleComponents: []string{"top-dome"}}
	topOpt.Values = []model.OptionValue{flat, dome}

	p.Options = []model.Option{colorOpt, topOpt}

	for i, name := range []string{"shade", "top-flat", "top-dome", "base"} {
		comp := model.NewComponent(name)
		comp.Outline = model.RectOutline(float64(i)*30, 0, 25, 40)
		p.Components = append(p.Components, comp)
	}

	p.Selections[colorOpt.ID] = red.ID
	p.Selections[topOpt.ID] = dome.ID

	components := map[string]model.ComponentState{}
	for _, c := range p.Components {
		components[c.Name] = model.ComponentState{Visible: true}
	}
	res := engine.Resolve(engine.Input{
		Options:    p.Options,
		Selections: p.Selections,
		Components: components,
	}, nil)
	return p, res
}

func TestExportConfigurationPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.pdf")
	p, res := buildTestProject()

	if err := ExportConfigurationPDF(path, p, res); err != nil {
		t.Fatalf("ExportConfigurationPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestExportConfigurationPDF_EmptyProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	p := model.NewProject()
	res := engine.Resolve(engine.Input{}, nil)

	// An empty project still renders a valid sheet.
	if err := ExportConfigurationPDF(path, p, res); err != nil {
		t.Fatalf("ExportConfigurationPDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file not created: %v", err)
	}
}

func TestExportShareCards_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.pdf")
	p, _ := buildTestProject()

	cards := BuildShareCards(p.Options, map[string]model.SelectionState{
		"Showroom": p.Selections,
		"Bare":     {},
	})
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}

	if err := ExportShareCards(path, cards); err != nil {
		t.Fatalf("ExportShareCards returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestBuildShareCards_SortedByName(t *testing.T) {
	p, _ := buildTestProject()
	named := map[string]model.SelectionState{
		"Walnut":   p.Selections,
		"Bare":     {},
		"Showroom": p.Selections,
	}

	for i := 0; i < 5; i++ {
		cards := BuildShareCards(p.Options, named)
		if len(cards) != 3 {
			t.Fatalf("expected 3 cards, got %d", len(cards))
		}
		want := []string{"Bare", "Showroom", "Walnut"}
		for j, card := range cards {
			if card.Name != want[j] {
				t.Fatalf("card %d is %q, want %q", j, card.Name, want[j])
			}
		}
	}
}

func TestExportShareCards_Empty(t *testing.T) {
	if err := ExportShareCards(filepath.Join(t.TempDir(), "x.pdf"), nil); err == nil {
		t.Error("expected error for empty card list")
	}
}

func TestExportShareCards_ManyCards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")
	p, _ := buildTestProject()

	var cards []ShareCard
	for i := 0; i < 30; i++ {
		cards = append(cards, BuildShareCards(p.Options, map[string]model.SelectionState{
			fmt.Sprintf("Preset %d", i): p.Selections,
		})...)
	}

	if err := ExportShareCards(path, cards); err != nil {
		t.Fatalf("ExportShareCards returned error: %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b int
	}{
		{"#cc0000", 204, 0, 0},
		{"#0044cc", 0, 68, 204},
		{"", 200, 200, 200},
		{"red", 200, 200, 200},
		{"#zzzzzz", 200, 200, 200},
	}
	for _, c := range cases {
		r, g, b := parseHexColor(c.in)
		if r != c.r || g != c.g || b != c.b {
			t.Errorf("parseHexColor(%q) = (%d,%d,%d), want (%d,%d,%d)", c.in, r, g, b, c.r, c.g, c.b)
		}
	}
}
