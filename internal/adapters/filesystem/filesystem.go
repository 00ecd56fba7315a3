// Package filesystem lists and reads answer-key documents from disk.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultExtension is the answer-key document extension.
const DefaultExtension = ".rtf"

// Exists returns ErrPathNotFound when path does not exist.
func Exists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}
	return nil
}

// ListDocuments returns the regular files in dir whose extension matches ext
// case-insensitively, sorted by name.
func ListDocuments(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// ReadText returns the full content of path. Content that is not valid UTF-8
// fails with ErrRead.
func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %s: not valid UTF-8", ErrRead, path)
	}
	return string(b), nil
}
