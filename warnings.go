package rezulta

import (
	"strings"

	"github.com/laborator/rezulta/model"
)

// FormatWarnings renders warnings one per line for logging or display.
func FormatWarnings(warnings []model.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
