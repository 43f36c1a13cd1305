package store

import (
	"os"
	"path/filepath"
)

// atomicWriteFile writes b to path via a uniquely-named temp file in dir and
// an atomic rename, so readers (and crashes) never observe a partial file.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// writeFileAtomic is the common case: temp pattern derived from the target name.
func writeFileAtomic(path string, b []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, perm)
}
