package config

import (
	"io"
	"os"
	"path/filepath"
)

// CopyFiles copies the listed files from srcRoot into dstRoot, creating
// parent directories as needed and preserving file modes. It is
// best-effort per file: sources that do not exist are skipped, and the
// names of the files actually copied are returned. A copy that starts
// but cannot finish is a real error.
func CopyFiles(srcRoot, dstRoot string, files []string) ([]string, error) {
	var copied []string
	for _, rel := range files {
		src := filepath.Join(srcRoot, rel)
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return copied, err
		}
		if info.IsDir() {
			// Directories are not supported as copy sources; skip
			// rather than failing worktree creation.
			continue
		}

		dst := filepath.Join(dstRoot, rel)
		if err := copyFile(src, dst, info.Mode()); err != nil {
			return copied, err
		}
		copied = append(copied, rel)
	}
	return copied, nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
