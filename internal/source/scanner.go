package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanPath discovers backup files under path. A regular file is returned as
// is; a directory is walked for *.jsonl files, skipping hidden entries.
// A missing path yields no files and no error.
func ScanPath(path string) ([]DiscoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return []DiscoveredFile{discovered(path)}, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		name := d.Name()
		if p != path && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(name) != ".jsonl" {
			return nil
		}
		files = append(files, discovered(p))
		return nil
	})
	return files, err
}

func discovered(path string) DiscoveredFile {
	return DiscoveredFile{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
}
