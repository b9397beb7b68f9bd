// ABOUTME: Writes rendered charts to PNG files named after their titles.
// ABOUTME: Rendering completes in memory before the file is created.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Chart is anything that renders to PNG under a title.
type Chart interface {
	ChartTitle() string
	Render(w io.Writer, opt Options) error
}

// FileName returns the image file name for a chart title.
func FileName(title string) string {
	return title + ".png"
}

// Save renders c and writes it into dir, returning the written path.
func Save(dir string, c Chart, opt Options) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf, opt); err != nil {
		return "", fmt.Errorf("render %q: %w", c.ChartTitle(), err)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(c.ChartTitle()))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
