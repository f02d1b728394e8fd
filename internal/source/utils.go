package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

var (
	crlf = []byte("\r\n")
	bom  = []byte{0xEF, 0xBB, 0xBF}
)

// normalizeCRLF rewrites \r\n to \n. A lone \r is kept.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte{'\n'}), true
}

func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, bom)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 64)
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		out = append(out, off)
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line/column using newline offsets.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of newlines strictly before off
	n := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	line, err := safecast.Conv[uint32](n + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	if n == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	return LineCol{Line: line, Col: off - lineIdx[n-1]}
}

func normalizePath(path string) string {
	if path == "" {
		return path
	}
	return filepath.ToSlash(filepath.Clean(path))
}
