package menu

import "fmt"

// MalformedTemplateError reports a descriptor that failed minimal shape
// validation. The offending entry is skipped; its siblings are still built.
type MalformedTemplateError struct {
	Index  int
	Label  string
	Reason string
}

func (e *MalformedTemplateError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("malformed template entry %d (%q): %s", e.Index, e.Label, e.Reason)
	}
	return fmt.Sprintf("malformed template entry %d: %s", e.Index, e.Reason)
}
