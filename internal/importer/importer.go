// Package importer provides CSV, Excel and DXF import functionality.
// Spreadsheet imports build option tables (one row per option value) with
// automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition; DXF imports build components from
// drawing outlines.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/variantly/configstudio/internal/model"
)

// ImportResult holds the results of an import operation. Errors are
// per-row and never abort the import; every parseable row comes through.
type ImportResult struct {
	Options    []model.Option
	Components []model.Component
	Errors     []string
	Warnings   []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Each spreadsheet row describes one option value; rows sharing an option
// name are grouped into a single option.
type ColumnMapping struct {
	Option     int
	Value      int
	Type       int
	Components int
	Color      int
	Behavior   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"option":     {"option", "option name", "group", "setting", "attribute"},
	"value":      {"value", "value name", "choice", "variant", "name"},
	"type":       {"type", "kind", "manipulation", "effect"},
	"components": {"components", "component", "targets", "target", "parts", "meshes"},
	"color":      {"color", "colour", "hex", "material", "swatch"},
	"behavior":   {"behavior", "behaviour", "default", "default behavior", "unselected"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Option:     -1,
		Value:      -1,
		Type:       -1,
		Components: -1,
		Color:      -1,
		Behavior:   -1,
	}

	assign := map[string]*int{
		"option":     &mapping.Option,
		"value":      &mapping.Value,
		"type":       &mapping.Type,
		"components": &mapping.Components,
		"color":      &mapping.Color,
		"behavior":   &mapping.Behavior,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := assign[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping:
		// Option, Value, Type, Components, Color, Behavior
		return ColumnMapping{
			Option:     0,
			Value:      1,
			Type:       2,
			Components: 3,
			Color:      4,
			Behavior:   5,
		}, false
	}

	return mapping, true
}

// parseManipulation converts a type cell to a manipulation type. Returns
// the type and whether the string was recognized; empty means visibility.
func parseManipulation(s string) (model.ManipulationType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visibility", "vis", "v", "show/hide", "":
		return model.ManipulationVisibility, true
	case "material", "mat", "m", "color", "colour":
		return model.ManipulationMaterial, true
	default:
		return model.ManipulationVisibility, false
	}
}

// parseBehavior converts a behavior cell to a default behavior. Returns
// the behavior and whether the string was recognized; empty means hide.
func parseBehavior(s string) (model.DefaultBehavior, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hide", "hidden", "":
		return model.BehaviorHide, true
	case "show", "shown", "visible":
		return model.BehaviorShow, true
	default:
		return model.BehaviorHide, false
	}
}

// parseTargets splits a components cell into names. Semicolons, pipes and
// slashes all work as separators since commas usually delimit the CSV
// itself.
func parseTargets(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '|' || r == '/'
	})
	var names []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}

// normalizeColor trims a color cell and prefixes the missing '#' on a
// bare 6-digit hex value. Anything else passes through untouched; colors
// are opaque strings everywhere downstream.
func normalizeColor(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 6 && isHex(s) {
		return "#" + strings.ToLower(s)
	}
	return s
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func hasValueNamed(opt model.Option, name string) bool {
	for _, v := range opt.Values {
		if strings.EqualFold(v.Name, name) {
			return true
		}
	}
	return false
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports an option table from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports an option table from a CSV reader with a
// specific delimiter. This is useful for testing or when the delimiter is
// already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports an option table from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Rows sharing an option name fold into one option, in first-appearance
// order; the first row of an option fixes its type, targets and behavior.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Option == -1 {
			missing = append(missing, "Option")
		}
		if mapping.Value == -1 {
			missing = append(missing, "Value")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	byName := make(map[string]int) // option name -> index in result.Options

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		optionName := getCell(row, mapping.Option)
		if optionName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing option name", rowLabel))
			continue
		}
		valueName := getCell(row, mapping.Value)
		if valueName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing value name", rowLabel))
			continue
		}

		idx, seen := byName[optionName]
		firstRow := !seen
		if !seen {
			mt, ok := parseManipulation(getCell(row, mapping.Type))
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Unknown type '%s', defaulting to visibility", rowLabel, getCell(row, mapping.Type)))
			}
			opt := model.NewOption(optionName, mt)
			opt.TargetComponents = parseTargets(getCell(row, mapping.Components))
			if mt == model.ManipulationVisibility {
				behavior, ok := parseBehavior(getCell(row, mapping.Behavior))
				if !ok {
					result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Unknown behavior '%s', defaulting to hide", rowLabel, getCell(row, mapping.Behavior)))
				}
				opt.DefaultBehavior = behavior
			}
			idx = len(result.Options)
			result.Options = append(result.Options, opt)
			byName[optionName] = idx
		}
		opt := &result.Options[idx]

		if hasValueNamed(*opt, valueName) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate value '%s' for option '%s', skipping", rowLabel, valueName, optionName))
			continue
		}

		val := model.NewOptionValue(valueName)
		switch opt.ManipulationType {
		case model.ManipulationMaterial:
			color := normalizeColor(getCell(row, mapping.Color))
			if color == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Material value '%s' has no color", rowLabel, valueName))
				continue
			}
			val.Material = &model.MaterialEffect{Color: color}
		case model.ManipulationVisibility:
			// The option's first row fixes the target list; later rows
			// with their own component cell become per-value overrides.
			if names := parseTargets(getCell(row, mapping.Components)); len(names) > 0 && !firstRow {
				val.Visibility = &model.VisibilityEffect{VisibleComponents: names}
			}
		}
		opt.Values = append(opt.Values, val)
	}

	for _, opt := range result.Options {
		if len(opt.Values) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Option '%s' ended up with no values", opt.Name))
		}
	}

	return result
}
