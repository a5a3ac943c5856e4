package rendering

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/types"
)

// ShareFunc hands an export off to an external share surface. It is
// injected; nil means sharing is unavailable.
type ShareFunc func(ctx context.Context, export *Export) error

// Share exports the resume and offers it through the share handoff, falling
// back to a plain download export when sharing is unavailable or fails. The
// returned Export is always usable as a download.
func (e *Exporter) Share(ctx context.Context, data types.ResumeData, share ShareFunc) (*Export, error) {
	export, err := e.ExportPDF(ctx, data)
	if err != nil {
		return nil, err
	}

	if share == nil {
		return export, nil
	}
	if err := share(ctx, export); err != nil {
		// Share failures degrade to download, not to a hard error.
		log.Printf("[EXPORT] share handoff failed, falling back to download: %v", err)
	}
	return export, nil
}

// SaveTo writes the export into dir under its generated file name.
func (x *Export) SaveTo(dir string) (string, error) {
	path := filepath.Join(dir, x.FileName)
	if err := os.WriteFile(path, x.PDF, 0o644); err != nil {
		return "", &ExportError{Stage: "download", Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return path, nil
}
