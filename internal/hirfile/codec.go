package hirfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"elide/internal/hir"
)

// Encode writes header and crate to w.
func Encode(w io.Writer, h Header, c *hir.Crate) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	enc.SetOmitEmpty(true)
	if err := enc.Encode(&h); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode crate %s: %w", c.Name, err)
	}
	return nil
}

// DecodeHeader reads only the header.
func DecodeHeader(r io.Reader) (Header, error) {
	var h Header
	if err := msgpack.NewDecoder(r).Decode(&h); err != nil {
		return h, fmt.Errorf("%w: %w", ErrNotHirpack, err)
	}
	return h, h.Check()
}

// Decode reads a header, checks it, then reads the crate.
func Decode(r io.Reader) (Header, *hir.Crate, error) {
	dec := msgpack.NewDecoder(r)
	var h Header
	if err := dec.Decode(&h); err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrNotHirpack, err)
	}
	if err := h.Check(); err != nil {
		return h, nil, err
	}
	c := &hir.Crate{}
	if err := dec.Decode(c); err != nil {
		return h, nil, fmt.Errorf("decode crate %s: %w", h.Crate, err)
	}
	if c.Name == "" {
		c.Name = h.Crate
	}
	if err := hir.Validate(c); err != nil {
		return h, nil, err
	}
	return h, c, nil
}

// ReadFile loads a .hirpack from disk.
func ReadFile(path string) (Header, *hir.Crate, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	h, c, err := Decode(bufio.NewReader(f))
	if err != nil {
		return h, nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, c, nil
}

// WriteFile replaces path atomically: the dump goes to a temp file in the
// same directory which is then renamed over the target.
func WriteFile(path string, h Header, c *hir.Crate) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".hirpack-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, h, c); err != nil {
		_ = f.Close()
		return err
	}
	if err = bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// OutputPath derives the output name: crate.hirpack -> crate<suffix>.
func OutputPath(in, suffix string) string {
	base := in
	if ext := filepath.Ext(in); ext == ".hirpack" {
		base = in[:len(in)-len(ext)]
	}
	return base + suffix
}

// IsSchemaError reports whether err came from a dump that was read but is
// unusable: an incompatible schema or a crate whose nodes do not match their
// kinds. Input that is not a dump at all is a load error instead.
func IsSchemaError(err error) bool {
	var (
		se *SchemaError
		ve *hir.ValidationError
	)
	return errors.As(err, &se) || errors.As(err, &ve)
}
