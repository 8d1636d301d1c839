package fileutil

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrTargetExists reports that a rename destination is already occupied.
var ErrTargetExists = errors.New("target already exists")

// RenameNoClobber moves src to dst, refusing to overwrite an existing dst.
// It hard-links dst to src and unlinks src, which fails atomically when dst
// exists. Filesystems without hard links fall back to a stat check followed
// by os.Rename.
func RenameNoClobber(src, dst string) error {
	if src == dst {
		return nil
	}
	err := os.Link(src, dst)
	switch {
	case err == nil:
		if rmErr := os.Remove(src); rmErr != nil {
			_ = os.Remove(dst)
			return fmt.Errorf("remove source after link: %w", rmErr)
		}
		return nil
	case errors.Is(err, os.ErrExist):
		return fmt.Errorf("rename %s: %w", dst, ErrTargetExists)
	case linkUnsupported(err):
		return renameChecked(src, dst)
	default:
		return err
	}
}

func renameChecked(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("rename %s: %w", dst, ErrTargetExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

func linkUnsupported(err error) bool {
	return errors.Is(err, syscall.EPERM) ||
		errors.Is(err, syscall.ENOTSUP) ||
		errors.Is(err, syscall.EOPNOTSUPP) ||
		errors.Is(err, syscall.EXDEV) ||
		errors.Is(err, syscall.EMLINK)
}

// Exists reports whether path names an existing filesystem entry.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
