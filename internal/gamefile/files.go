package gamefile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// FindWithExtension recursively collects files under dir whose extension
// matches ext (without the leading dot). The result is sorted so callers get
// a deterministic file order regardless of directory iteration.
func FindWithExtension(dir, ext string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("directory %s: not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.TrimPrefix(filepath.Ext(path), ".") == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// ReadLatin1 reads a Windows-1252 encoded text file and returns UTF-8.
// All structured-text game files use this encoding.
func ReadLatin1(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return DecodeLatin1(b), nil
}

// DecodeLatin1 transcodes Windows-1252 bytes to a UTF-8 string.
// Windows-1252 has no invalid single bytes, so decoding cannot fail.
func DecodeLatin1(b []byte) string {
	s, _ := charmap.Windows1252.NewDecoder().Bytes(b)
	return string(s)
}
