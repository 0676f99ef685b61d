package gleaner

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal condition encountered during a terminal
// operation. Extraction succeeded, but the result may be incomplete:
// a page whose detection needed relaxed size minimums, a diagram that
// failed to download, an embedded image that could not be decoded.
type Warning struct {
	// Page is the 1-based page number the warning concerns, or 0 when
	// the warning is not tied to a page.
	Page int

	// Message describes the condition.
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings formats a slice of warnings as a single string,
// suitable for logging.
//
// Example:
//
//	report, warnings, err := gleaner.Open("contest.pdf").Diagrams()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gleaner.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
