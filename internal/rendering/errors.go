// Package rendering renders a resume document as a formatted HTML preview
// and rasterizes the preview into a fixed-page-size PDF.
package rendering

import "fmt"

// ExportError represents a failed PDF export or share handoff. Unlike
// persistence transport failures, export failures are surfaced to the user.
type ExportError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Stage, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
