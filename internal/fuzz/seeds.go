package fuzztests

import (
	"bytes"
	"testing"

	"elide/internal/hir"
	"elide/internal/hirfile"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func seedCrates() []*hir.Crate {
	sugar := hir.FnSugar(hir.Simple("Fn"), nil, hir.Ref(hir.Prim("u8")))
	fn := &hir.Function{
		Params: hir.GenericParams{Lifetimes: []hir.LifetimeDef{{Name: "a"}}},
		Args: []hir.Arg{
			{Name: "x", Type: hir.RefWith(hir.Param(hir.BinderFunction, 0), hir.Prim("str"))},
			{Name: "g", Type: hir.Dyn(sugar)},
		},
		Return: hir.Ref(hir.Prim("str")),
	}
	return []*hir.Crate{
		{Name: "empty"},
		{
			Name:        "seed",
			SourceFiles: []string{"src/lib.rs"},
			Root: hir.Module{
				TypeItems:  []hir.TypeItem{{Name: "S", Kind: hir.ItemStruct, Struct: &hir.Struct{}}},
				ValueItems: []hir.ValueItem{{Name: "f", Kind: hir.ValueFunction, Function: fn}},
			},
		},
		{
			// a borrow node without payload; the decoder must refuse it
			Name: "hollow",
			Root: hir.Module{ValueItems: []hir.ValueItem{{
				Name: "h", Kind: hir.ValueFunction,
				Function: &hir.Function{Args: []hir.Arg{{Name: "x", Type: hir.TypeRef{Kind: hir.TypeBorrow}}}},
			}}},
		},
	}
}

func addCorpusSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte(hirfile.Magic))
	for _, c := range seedCrates() {
		var buf bytes.Buffer
		if err := hirfile.Encode(&buf, hirfile.NewHeader(c.Name, "fuzz", false), c); err != nil {
			f.Fatalf("encode seed %s: %v", c.Name, err)
		}
		f.Add(buf.Bytes())
		// truncated copies exercise the partial-read paths
		f.Add(buf.Bytes()[:buf.Len()/2])
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
