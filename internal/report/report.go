// Package report renders a finished persona record to its output
// formats. Every sink consumes the record read-only; a sink failing
// never changes what was extracted.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/personarium/personarium/internal/model"
)

// Renderer writes persona files into one output directory using the
// persona_{username}_{timestamp}.{ext} naming scheme.
type Renderer struct {
	dir           string
	includeFooter bool
}

// NewRenderer creates a renderer rooted at dir.
func NewRenderer(dir string, includeFooter bool) *Renderer {
	return &Renderer{dir: dir, includeFooter: includeFooter}
}

// filePath builds the export path for one record, creating the output
// directory on first use.
func (r *Renderer) filePath(rec *model.PersonaRecord, ext string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := fmt.Sprintf("persona_%s_%s.%s",
		rec.Username, time.Now().Format("20060102_150405"), ext)
	return filepath.Join(r.dir, name), nil
}

// RenderJSON writes the record as pretty-printed JSON and returns the
// path written.
func (r *Renderer) RenderJSON(rec *model.PersonaRecord) (string, error) {
	path, err := r.filePath(rec, "json")
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal persona: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write JSON: %w", err)
	}
	return path, nil
}
