package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet maps FileIDs recorded in crate dumps to source paths and, when the
// source is available on disk, to line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file and returns its FileID. Content may be nil for files that
// are only known by path.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	var lineIdx []uint32
	if content != nil {
		lineIdx = buildLineIndex(content)
	}
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// AddVirtual registers a path without content.
func (fileSet *FileSet) AddVirtual(path string) FileID {
	return fileSet.Add(path, nil, FileVirtual)
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// Len returns the number of registered files.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Get returns the file metadata for the given ID, or nil when unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Lookup returns the latest FileID registered for path.
func (fileSet *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions. ok is false when the
// file is unknown or was registered without content.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol, ok bool) {
	f := fileSet.Get(span.File)
	if f == nil || f.Flags&FileVirtual != 0 {
		return LineCol{}, LineCol{}, false
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End), true
}

// Format renders span as "path:line:col" when content is known and as
// "path:start-end" (byte offsets) otherwise.
func (fileSet *FileSet) Format(span Span) string {
	f := fileSet.Get(span.File)
	if f == nil {
		return span.String()
	}
	if start, _, ok := fileSet.Resolve(span); ok {
		return fmt.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col)
	}
	return fmt.Sprintf("%s:%d-%d", f.Path, span.Start, span.End)
}
