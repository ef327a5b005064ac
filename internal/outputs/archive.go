package outputs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// recognized artifact suffixes moved into the archive.
var artifactSuffixes = []string{".json", ".md"}

// Archive creates <archiveRoot>/<folderName> (no error if it already exists)
// and moves every regular file directly inside scratchDir whose name ends in a
// recognized artifact suffix into it. The destination folder is skipped if it
// happens to live inside scratchDir. Returns the destination path.
//
// After a successful call the scratch directory holds no remaining .json or
// .md artifacts from the run.
func Archive(scratchDir, archiveRoot, folderName string) (string, error) {
	dest := filepath.Join(archiveRoot, folderName)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", &IOError{Path: dest, Op: "create archive folder", Cause: err}
	}

	entries, err := os.ReadDir(scratchDir)
	if err != nil {
		return "", &IOError{Path: scratchDir, Op: "read scratch directory", Cause: err}
	}

	for _, entry := range entries {
		src := filepath.Join(scratchDir, entry.Name())
		if src == dest {
			continue
		}
		if !entry.Type().IsRegular() || !isArtifact(entry.Name()) {
			continue
		}
		if err := moveFile(src, filepath.Join(dest, entry.Name())); err != nil {
			return "", err
		}
	}

	return dest, nil
}

// isArtifact reports whether a filename carries a recognized artifact suffix.
func isArtifact(name string) bool {
	for _, suffix := range artifactSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// moveFile renames src to dst, falling back to copy+remove when the rename
// crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return &IOError{Path: src, Op: "open for move", Cause: err}
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return &IOError{Path: dst, Op: "create", Cause: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &IOError{Path: dst, Op: "copy", Cause: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Path: dst, Op: "close", Cause: err}
	}
	if err := os.Remove(src); err != nil {
		return &IOError{Path: src, Op: "remove after copy", Cause: err}
	}
	return nil
}
