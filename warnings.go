package gridscan

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal condition encountered during processing,
// such as a page that had to be skipped or an image that needed
// correction. Terminal operations return warnings alongside their result
// so callers can decide how much they care.
type Warning struct {
	Page    int    // 1-indexed page number, 0 if not page-specific
	Op      string // operation that produced the warning
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d [%s]: %s", w.Page, w.Op, w.Message)
	}
	return fmt.Sprintf("[%s]: %s", w.Op, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string,
// one warning per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
