// Package backup keeps the two safety nets of the journal: a copy of the
// notes file taken before every overwrite, and the redundancy archive that
// accumulates every entry ever seen.
package backup

import (
	"fmt"
	"path/filepath"
	"strings"

	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/fileutil"
)

// Prefix is prepended to the file name of a backup copy.
const Prefix = "COPY - "

// Name returns the backup path for path.
func Name(path string) string {
	dir, file := filepath.Split(path)
	return filepath.Join(dir, Prefix+file)
}

// Copy duplicates path to Name(path) and returns the backup path. The error
// wraps fs.ErrNotExist when path does not exist yet.
func Copy(path string) (string, error) {
	dst := Name(path)
	if err := fileutil.CopyFile(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Merge appends to the archive every source line whose timestamp prefix (the
// text before the first "--") does not already start an archive line.
// Existing archive lines are never removed or reordered. Missing files count
// as empty. Each source line is compared against the whole archive, which is
// fine for personal-sized logs.
func Merge(archivePath, sourcePath string) (added int, err error) {
	archive, _, err := fileutil.ReadLines(archivePath)
	if err != nil {
		return 0, fmt.Errorf("backup: read archive: %w", err)
	}
	source, _, err := fileutil.ReadLines(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("backup: read source: %w", err)
	}

	for _, line := range source {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !archived(archive, entry.Prefix(line)) {
			archive = append(archive, line)
			added++
		}
	}

	if err := fileutil.WriteLines(archivePath, archive); err != nil {
		return 0, fmt.Errorf("backup: %w", err)
	}
	return added, nil
}

func archived(archive []string, prefix string) bool {
	for _, a := range archive {
		if strings.HasPrefix(a, prefix) {
			return true
		}
	}
	return false
}
