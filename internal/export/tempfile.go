package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteTemp writes a generated document into a fresh temp directory under
// its user-visible filename and returns the path plus a cleanup func.
// Cleanup removes the whole directory and must run on every exit path,
// including a failed upload, so transient exports never accumulate.
func WriteTemp(data []byte, filename string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "healthdiary-export-")
	if err != nil {
		return "", nil, fmt.Errorf("export: temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("export: write %s: %w", filename, err)
	}
	return path, cleanup, nil
}
