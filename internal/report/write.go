// internal/report/write.go
// Package: report
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile runs render against a temporary file next to path and renames it
// into place once render and close succeed. On failure nothing is left at
// path and the temporary file is removed.
func WriteFile(path string, render func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = render(tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", path, err)
	}
	return nil
}

// WriteReport writes the XML report for d to path.
func WriteReport(path string, d *Document) error {
	return WriteFile(path, func(w io.Writer) error {
		_, err := d.WriteTo(w)
		return err
	})
}

// WriteStatsCSV writes the statistics table to path as CSV.
func WriteStatsCSV(path string, t *StatsTable) error {
	return WriteFile(path, t.WriteCSV)
}
