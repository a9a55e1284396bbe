package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yumyai/orthoxml/pkg/oxerr"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return oxerr.New(oxerr.ErrIO, "create directory %s: %v", path, err)
	}
	return nil
}

func ReadText(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, oxerr.New(oxerr.ErrIO, "read %s: %v", path, unwrapPath(err))
	}
	return b, nil
}

// WriteText writes data to path, creating missing parent directories.
func WriteText(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && !DirExists(dir) {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oxerr.New(oxerr.ErrIO, "write %s: %v", path, unwrapPath(err))
	}
	return nil
}

// unwrapPath drops the *fs.PathError wrapper, the path is already in the message.
func unwrapPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
