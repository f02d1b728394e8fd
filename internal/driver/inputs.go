package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the extension of crate dumps.
const Ext = ".hirpack"

// DefaultSuffix is appended to the input stem to name the elided output.
const DefaultSuffix = ".elided" + Ext

// ListInputs expands files and directories into a sorted, de-duplicated list
// of crate dumps. Directories are walked recursively; files ending in
// skipSuffix are previous outputs and are left out of directory walks.
func ListInputs(paths []string, skipSuffix string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("input %q does not exist", p)
			}
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !IsInput(path, skipSuffix) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

// IsInput reports whether path looks like a crate dump that is not one of
// our own outputs.
func IsInput(path, skipSuffix string) bool {
	if !strings.HasSuffix(path, Ext) {
		return false
	}
	return skipSuffix == "" || !strings.HasSuffix(path, skipSuffix)
}
