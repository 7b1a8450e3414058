package localfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Migrate copies the src partition's index and content tree into dst.
// It is a no-op (false) when dst already has an index, so existing user
// data is never overwritten, and when src has no index to migrate. The
// src partition is left untouched.
func Migrate(src, dst *Store) (bool, error) {
	if dst.HasData() {
		return false, nil
	}
	if !src.HasData() {
		return false, nil
	}

	if err := os.MkdirAll(dst.dir, 0o755); err != nil {
		return false, fmt.Errorf("create user directory: %w", err)
	}
	if err := copyFile(src.indexPath(), dst.indexPath()); err != nil {
		return false, fmt.Errorf("copy index: %w", err)
	}
	if _, err := os.Stat(src.promptsDir()); err == nil {
		if err := copyDir(src.promptsDir(), dst.promptsDir()); err != nil {
			return false, err
		}
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dst, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", src, err)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return fmt.Errorf("copy %s: %w", srcPath, err)
		}
	}
	return nil
}
