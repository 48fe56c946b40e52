package checker

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"mlready/internal/fsutil"
)

// SaveReport writes the report as indented JSON. Parent directories are
// created and the write is atomic, so a crash never leaves a torn file.
func SaveReport(report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	return fsutil.AtomicWriteFile(path, data, 0o644)
}
