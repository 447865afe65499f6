// Package share encodes a configuration's selections as a short text code
// that can be pasted, embedded in a URL, or carried in a QR image. The
// code is positional against the published option array, which keeps it
// compact; editing the options invalidates outstanding codes, and the
// tolerant parser reports exactly which parts went stale.
package share

import (
	"fmt"
	"strings"

	"github.com/variantly/configstudio/internal/model"
)

// Version is the current share code version prefix.
const Version = "CS1"

// Encode builds a share code from the current selections. Options are
// walked in array order so the same state always yields the same code.
// Unselected options and selections for unknown options or values are
// simply absent from the code.
func Encode(options []model.Option, selections model.SelectionState) string {
	var b strings.Builder
	b.WriteString(Version)

	for i, opt := range options {
		if opt.IsGroup {
			continue
		}
		valID, ok := selections[opt.ID]
		if !ok {
			continue
		}
		for j, val := range opt.Values {
			if val.ID == valID {
				b.WriteString(fmt.Sprintf(":%d.%d", i, j))
				break
			}
		}
	}
	return b.String()
}

// EncodeURL wraps a share code as a query parameter on the given base URL.
func EncodeURL(base string, options []model.Option, selections model.SelectionState) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "c=" + Encode(options, selections)
}
