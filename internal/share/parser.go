package share

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/variantly/configstudio/internal/model"
)

// DecodeResult holds the outcome of parsing a share code. Selections maps
// option index to value index as found in the code; resolution against an
// option array happens in Apply.
type DecodeResult struct {
	Selections map[int]int
	Warnings   []string
}

// Decode parses a share code into positional selections. Malformed
// entries produce warnings, never a failed parse; only a missing or
// unsupported version prefix is an error.
func Decode(code string) (DecodeResult, error) {
	result := DecodeResult{Selections: make(map[int]int)}

	code = strings.TrimSpace(code)
	// Accept a full share URL as pasted
	if idx := strings.Index(code, "c="); idx >= 0 && strings.Contains(code, "://") {
		code = code[idx+2:]
		if amp := strings.Index(code, "&"); amp >= 0 {
			code = code[:amp]
		}
	}

	parts := strings.Split(code, ":")
	if len(parts) == 0 || parts[0] != Version {
		return DecodeResult{}, fmt.Errorf("unsupported share code version %q", firstToken(code))
	}

	for _, entry := range parts[1:] {
		if entry == "" {
			continue
		}
		optIdx, valIdx, ok := parseEntry(entry)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skipped malformed entry %q", entry))
			continue
		}
		if prev, dup := result.Selections[optIdx]; dup && prev != valIdx {
			result.Warnings = append(result.Warnings, fmt.Sprintf("duplicate entry for option %d, keeping the later one", optIdx))
		}
		result.Selections[optIdx] = valIdx
	}

	return result, nil
}

// Apply resolves positional selections against an option array and
// returns a selection state. Entries pointing past the array or at a
// group come back as warnings; the rest apply normally, so a code minted
// before an edit still restores what it can.
func (r DecodeResult) Apply(options []model.Option) (model.SelectionState, []string) {
	selections := model.SelectionState{}
	warnings := append([]string(nil), r.Warnings...)

	for optIdx, valIdx := range r.Selections {
		if optIdx >= len(options) {
			warnings = append(warnings, fmt.Sprintf("option index %d no longer exists", optIdx))
			continue
		}
		opt := options[optIdx]
		if opt.IsGroup {
			warnings = append(warnings, fmt.Sprintf("option index %d is a group", optIdx))
			continue
		}
		if valIdx >= len(opt.Values) {
			warnings = append(warnings, fmt.Sprintf("option %q has no value at index %d", opt.Name, valIdx))
			continue
		}
		selections[opt.ID] = opt.Values[valIdx].ID
	}
	return selections, warnings
}

func parseEntry(entry string) (optIdx, valIdx int, ok bool) {
	dot := strings.Index(entry, ".")
	if dot <= 0 || dot == len(entry)-1 {
		return 0, 0, false
	}
	optIdx, err := strconv.Atoi(entry[:dot])
	if err != nil || optIdx < 0 {
		return 0, 0, false
	}
	valIdx, err = strconv.Atoi(entry[dot+1:])
	if err != nil || valIdx < 0 {
		return 0, 0, false
	}
	return optIdx, valIdx, true
}

func firstToken(code string) string {
	if idx := strings.Index(code, ":"); idx >= 0 {
		return code[:idx]
	}
	return code
}
