package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/variantly/configstudio/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Option,Value,Type,Components,Color\nColor,Red,material,body,#cc0000\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Option;Value;Type\nColor;Red;material\nColor;Blue;material\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Option\tValue\tType\nColor\tRed\tmaterial\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Option", "Value", "Type", "Components", "Color", "Behavior"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Option != 0 {
		t.Errorf("expected Option at 0, got %d", mapping.Option)
	}
	if mapping.Value != 1 {
		t.Errorf("expected Value at 1, got %d", mapping.Value)
	}
	if mapping.Type != 2 {
		t.Errorf("expected Type at 2, got %d", mapping.Type)
	}
	if mapping.Components != 3 {
		t.Errorf("expected Components at 3, got %d", mapping.Components)
	}
	if mapping.Color != 4 {
		t.Errorf("expected Color at 4, got %d", mapping.Color)
	}
	if mapping.Behavior != 5 {
		t.Errorf("expected Behavior at 5, got %d", mapping.Behavior)
	}
}

func TestDetectColumns_AliasesAndCase(t *testing.T) {
	row := []string{"SETTING", "Choice", "Kind", "Targets", "Hex"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Option != 0 || mapping.Value != 1 || mapping.Type != 2 {
		t.Errorf("alias mapping wrong: %+v", mapping)
	}
	if mapping.Components != 3 || mapping.Color != 4 {
		t.Errorf("alias mapping wrong: %+v", mapping)
	}
	if mapping.Behavior != -1 {
		t.Errorf("behavior column should be unmapped, got %d", mapping.Behavior)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Color", "Value", "Option"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Color != 0 || mapping.Value != 1 || mapping.Option != 2 {
		t.Errorf("reordered mapping wrong: %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Shade Style", "Round", "visibility", "shade-round"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header")
	}
	// Positional fallback
	if mapping.Option != 0 || mapping.Value != 1 || mapping.Type != 2 || mapping.Components != 3 {
		t.Errorf("positional mapping wrong: %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_MaterialOptions(t *testing.T) {
	csv := `Option,Value,Type,Components,Color
Shade Color,Red,material,shade,#cc0000
Shade Color,Blue,material,shade,0044cc
Base Color,Steel,material,base,#888888
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(result.Options))
	}

	shade := result.Options[0]
	if shade.Name != "Shade Color" {
		t.Errorf("expected 'Shade Color' first, got %q", shade.Name)
	}
	if shade.ManipulationType != model.ManipulationMaterial {
		t.Errorf("expected material type, got %s", shade.ManipulationType)
	}
	if len(shade.TargetComponents) != 1 || shade.TargetComponents[0] != "shade" {
		t.Errorf("targets wrong: %v", shade.TargetComponents)
	}
	if len(shade.Values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(shade.Values))
	}
	if shade.Values[0].Material == nil || shade.Values[0].Material.Color != "#cc0000" {
		t.Errorf("first value color wrong: %+v", shade.Values[0].Material)
	}
	// Bare hex gets the '#' prefix
	if shade.Values[1].Material == nil || shade.Values[1].Material.Color != "#0044cc" {
		t.Errorf("bare hex not normalized: %+v", shade.Values[1].Material)
	}
}

func TestImportCSVFromReader_VisibilityOptions(t *testing.T) {
	csv := `Option,Value,Type,Components,Behavior
Top Style,Flat,visibility,top-flat;top-dome,hide
Top Style,Dome,visibility,top-dome,hide
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(result.Options))
	}
	opt := result.Options[0]
	if opt.ManipulationType != model.ManipulationVisibility {
		t.Errorf("expected visibility type, got %s", opt.ManipulationType)
	}
	if opt.DefaultBehavior != model.BehaviorHide {
		t.Errorf("expected hide behavior, got %s", opt.DefaultBehavior)
	}
	if len(opt.TargetComponents) != 2 {
		t.Errorf("first row should define targets: %v", opt.TargetComponents)
	}
	if len(opt.Values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(opt.Values))
	}
	// The first value relies on default behavior, the second row's
	// component cell becomes a per-value override.
	if opt.Values[0].Visibility != nil {
		t.Errorf("first value should have no override: %+v", opt.Values[0].Visibility)
	}
	if opt.Values[1].Visibility == nil || len(opt.Values[1].Visibility.VisibleComponents) != 1 {
		t.Errorf("second value should override: %+v", opt.Values[1].Visibility)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	csv := "Shade Style,Round,visibility,shade-round\nShade Style,Square,visibility,shade-square\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Options) != 1 || len(result.Options[0].Values) != 2 {
		t.Fatalf("positional import failed: %+v (errors: %v)", result.Options, result.Errors)
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	csv := `Option,Value,Type,Components,Color
Color,Red,material,body,#cc0000
Color,,material,body,#000000
,Blue,material,body,#0044cc
Color,Bare,material,body,
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Options) != 1 || len(result.Options[0].Values) != 1 {
		t.Fatalf("expected only the valid row imported: %+v", result.Options)
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 row errors, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_DuplicateValueSkipped(t *testing.T) {
	csv := `Option,Value,Type,Components,Color
Color,Red,material,body,#cc0000
Color,red,material,body,#ff0000
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Options[0].Values) != 1 {
		t.Errorf("duplicate value should be skipped: %+v", result.Options[0].Values)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a duplicate warning")
	}
}

func TestImportCSVFromReader_UnknownTypeWarns(t *testing.T) {
	csv := `Option,Value,Type
Style,Classic,texture
`
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Options) != 1 {
		t.Fatalf("row should still import: %v", result.Errors)
	}
	if result.Options[0].ManipulationType != model.ManipulationVisibility {
		t.Errorf("unknown type should default to visibility, got %s", result.Options[0].ManipulationType)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown type") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown-type warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	csv := "Option,Type\nColor,material\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for missing Value column")
	}
	if len(result.Options) != 0 {
		t.Errorf("no options should import: %+v", result.Options)
	}
}

func TestImportCSVFromReader_EmptyRowsSkipped(t *testing.T) {
	csv := "Option,Value,Type,Components,Color\n\nColor,Red,material,body,#cc0000\n,,,,\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Errorf("empty rows must not error: %v", result.Errors)
	}
	if len(result.Options) != 1 {
		t.Errorf("expected 1 option, got %d", len(result.Options))
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.csv")
	data := "Option;Value;Type;Components;Color\nColor;Red;material;body;#cc0000\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Options) != 1 {
		t.Fatalf("expected 1 option, got %d (errors: %v)", len(result.Options), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Option", "Value", "Type", "Components", "Color"},
		{"Shade Color", "Red", "material", "shade", "#cc0000"},
		{"Shade Color", "Blue", "material", "shade", "#0044cc"},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(result.Options))
	}
	if len(result.Options[0].Values) != 2 {
		t.Errorf("expected 2 values, got %d", len(result.Options[0].Values))
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── Parsing Helper Tests ──────────────────────────────────

func TestParseManipulation(t *testing.T) {
	cases := []struct {
		in   string
		want model.ManipulationType
		ok   bool
	}{
		{"visibility", model.ManipulationVisibility, true},
		{"VIS", model.ManipulationVisibility, true},
		{"material", model.ManipulationMaterial, true},
		{"Colour", model.ManipulationMaterial, true},
		{"", model.ManipulationVisibility, true},
		{"texture", model.ManipulationVisibility, false},
	}
	for _, c := range cases {
		got, ok := parseManipulation(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("parseManipulation(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseTargets(t *testing.T) {
	got := parseTargets(" body ; lid | base / trim ")
	want := []string{"body", "lid", "base", "trim"}
	if len(got) != len(want) {
		t.Fatalf("parseTargets = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseTargets[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if parseTargets("  ") != nil {
		t.Error("blank cell should yield nil")
	}
}

func TestNormalizeColor(t *testing.T) {
	cases := map[string]string{
		"#cc0000":  "#cc0000",
		"CC0000":   "#cc0000",
		" 0044cc ": "#0044cc",
		"red":      "red", // passes through untouched
		"zz0000":   "zz0000",
	}
	for in, want := range cases {
		if got := normalizeColor(in); got != want {
			t.Errorf("normalizeColor(%q) = %q, want %q", in, got, want)
		}
	}
}
