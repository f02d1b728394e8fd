package fuzztests

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"elide/internal/diag"
	"elide/internal/elision"
	"elide/internal/hirfile"
)

func FuzzDecodeHeader(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		_, _ = hirfile.DecodeHeader(bytes.NewReader(clamp(input)))
	})
}

func FuzzDecodeRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		hdr, crate, err := hirfile.Decode(bytes.NewReader(clamp(input)))
		if err != nil {
			return
		}
		var buf bytes.Buffer
		if err := hirfile.Encode(&buf, hdr, crate); err != nil {
			t.Fatalf("re-encode of accepted input failed: %v", err)
		}
		hdr2, crate2, err := hirfile.Decode(&buf)
		if err != nil {
			t.Fatalf("decode of re-encoded input failed: %v", err)
		}
		if diff := cmp.Diff(hdr, hdr2); diff != "" {
			t.Fatalf("header changed (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(crate, crate2, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("crate changed (-first +second):\n%s", diff)
		}
	})
}

// FuzzElideDecoded runs the pass over every crate the decoder accepts. The
// pass may reject the crate but must not panic.
func FuzzElideDecoded(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		_, crate, err := hirfile.Decode(bytes.NewReader(clamp(input)))
		if err != nil {
			return
		}
		if _, err := elision.Elide(context.Background(), crate, elision.Options{Reporter: diag.NopReporter{}}); err != nil {
			if _, ok := err.(*elision.Error); !ok {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
		}
	})
}
