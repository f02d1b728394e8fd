package hir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpOptions configures HIR dumping.
type DumpOptions struct {
	// RawLifetimes prints bound lifetimes by binder and index instead of by
	// the declared parameter name.
	RawLifetimes bool
	// BindingIDs prints every lifetime as its numeric binding id ('#257).
	// It wins over RawLifetimes.
	BindingIDs bool
}

// Printer renders HIR in Rust-like surface syntax. Bound lifetimes are
// printed with the name declared by their binder when the binder is in scope.
type Printer struct {
	w      io.Writer
	opts   DumpOptions
	scopes map[BinderKind][]*GenericParams
	err    error
}

// NewPrinter creates a new HIR printer.
func NewPrinter(w io.Writer, opts DumpOptions) *Printer {
	return &Printer{w: w, opts: opts, scopes: make(map[BinderKind][]*GenericParams)}
}

// Dump writes the crate to w.
func Dump(w io.Writer, c *Crate, opts DumpOptions) error {
	p := NewPrinter(w, opts)
	p.PrintCrate(c)
	return p.err
}

// FormatType renders a type without binder scopes.
func FormatType(ty *TypeRef) string {
	var b strings.Builder
	NewPrinter(&b, DumpOptions{}).writeType(&b, ty)
	return b.String()
}

// FormatGenericPath renders Path<'a, T>.
func FormatGenericPath(gp *GenericPath) string {
	var b strings.Builder
	NewPrinter(&b, DumpOptions{}).writeGenericPath(&b, gp)
	return b.String()
}

// FormatTraitPath renders a trait path with HRTB list and associated bounds.
func FormatTraitPath(tp *TraitPath) string {
	var b strings.Builder
	NewPrinter(&b, DumpOptions{}).writeTraitPath(&b, tp)
	return b.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) push(binder BinderKind, gp *GenericParams) {
	p.scopes[binder] = append(p.scopes[binder], gp)
}

func (p *Printer) pop(binder BinderKind) {
	s := p.scopes[binder]
	p.scopes[binder] = s[:len(s)-1]
}

// PrintCrate prints a complete crate.
func (p *Printer) PrintCrate(c *Crate) {
	p.printf("crate %s\n", c.Name)
	p.printModule("", &c.Root)
	for i := range c.TypeImpls {
		impl := &c.TypeImpls[i]
		p.push(BinderImpl, &impl.Params)
		p.printf("impl%s %s%s {\n", p.params(&impl.Params), p.typeStr(&impl.Type), p.where(&impl.Params))
		p.printImplMembers(impl.Methods, impl.Constants)
		p.printf("}\n")
		p.pop(BinderImpl)
	}
	for i := range c.TraitImpls {
		impl := &c.TraitImpls[i]
		p.push(BinderImpl, &impl.Params)
		trait := GenericPath{Path: impl.Trait, Params: impl.TraitArgs}
		p.printf("impl%s %s for %s%s {\n", p.params(&impl.Params), p.genericPathStr(&trait), p.typeStr(&impl.Type), p.where(&impl.Params))
		for _, t := range impl.Types {
			p.printf("    type %s = %s;\n", t.Name, p.typeStr(&t.Type))
		}
		p.printImplMembers(impl.Methods, impl.Constants)
		p.printf("}\n")
		p.pop(BinderImpl)
	}
	for i := range c.MarkerImpls {
		impl := &c.MarkerImpls[i]
		p.push(BinderImpl, &impl.Params)
		neg := ""
		if impl.Negative {
			neg = "!"
		}
		trait := GenericPath{Path: impl.Trait, Params: impl.TraitArgs}
		p.printf("impl%s %s%s for %s%s {}\n", p.params(&impl.Params), neg, p.genericPathStr(&trait), p.typeStr(&impl.Type), p.where(&impl.Params))
		p.pop(BinderImpl)
	}
}

func (p *Printer) printImplMembers(methods []ImplFunction, consts []ImplConstant) {
	for i := range consts {
		p.printf("    ")
		p.printConstant(consts[i].Name, &consts[i].Const)
	}
	for i := range methods {
		p.printf("    ")
		p.printFunction(methods[i].Name, &methods[i].Fn)
	}
}

func (p *Printer) printModule(indent string, m *Module) {
	for i := range m.TypeItems {
		ti := &m.TypeItems[i]
		p.printf("%s", indent)
		p.printTypeItem(indent, ti)
	}
	for i := range m.ValueItems {
		vi := &m.ValueItems[i]
		p.printf("%s", indent)
		p.printValueItem(vi)
	}
}

func (p *Printer) printTypeItem(indent string, ti *TypeItem) {
	if gp := ti.Params(); gp != nil {
		// type-level lifetimes are declared at the impl/trait level
		p.push(BinderImpl, gp)
		defer p.pop(BinderImpl)
	}
	switch ti.Kind {
	case ItemImport:
		p.printf("use %s as %s;\n", ti.Import, ti.Name)
	case ItemModule:
		p.printf("mod %s {\n", ti.Name)
		p.printModule(indent+"    ", ti.Module)
		p.printf("%s}\n", indent)
	case ItemExternType:
		p.printf("extern type %s;\n", ti.Name)
	case ItemTypeAlias:
		p.printf("type %s%s = %s;\n", ti.Name, p.params(&ti.TypeAlias.Params), p.typeStr(&ti.TypeAlias.Type))
	case ItemTraitAlias:
		p.printf("trait %s%s = %s;\n", ti.Name, p.params(&ti.TraitAlias.Params), p.traitList(ti.TraitAlias.Traits))
	case ItemStruct:
		p.printf("struct %s%s%s { %s }\n", ti.Name, p.params(&ti.Struct.Params), p.where(&ti.Struct.Params), p.fields(ti.Struct.Fields))
	case ItemUnion:
		p.printf("union %s%s%s { %s }\n", ti.Name, p.params(&ti.Union.Params), p.where(&ti.Union.Params), p.fields(ti.Union.Fields))
	case ItemEnum:
		variants := make([]string, 0, len(ti.Enum.Variants))
		for _, v := range ti.Enum.Variants {
			if len(v.Fields) == 0 {
				variants = append(variants, v.Name)
				continue
			}
			variants = append(variants, fmt.Sprintf("%s { %s }", v.Name, p.fields(v.Fields)))
		}
		p.printf("enum %s%s%s { %s }\n", ti.Name, p.params(&ti.Enum.Params), p.where(&ti.Enum.Params), strings.Join(variants, ", "))
	case ItemTrait:
		tr := ti.Trait
		supers := ""
		if len(tr.ParentTraits) > 0 {
			supers = ": " + p.traitList(tr.ParentTraits)
		}
		p.printf("trait %s%s%s%s {\n", ti.Name, p.params(&tr.Params), supers, p.where(&tr.Params))
		for _, at := range tr.Types {
			bounds := ""
			if len(at.Bounds) > 0 {
				bounds = ": " + p.traitList(at.Bounds)
			}
			def := ""
			if !at.Default.IsInfer() {
				def = " = " + p.typeStr(&at.Default)
			}
			p.printf("%s    type %s%s%s;\n", indent, at.Name, bounds, def)
		}
		for i := range tr.Values {
			p.printf("%s    ", indent)
			p.printValueItem(&tr.Values[i])
		}
		p.printf("%s}\n", indent)
	}
}

func (p *Printer) printValueItem(vi *ValueItem) {
	switch vi.Kind {
	case ValueImport:
		p.printf("use %s as %s;\n", vi.Import, vi.Name)
	case ValueConstant:
		p.printConstant(vi.Name, vi.Constant)
	case ValueStatic:
		mut := ""
		if vi.Static.Mutable {
			mut = "mut "
		}
		p.printf("static %s%s: %s;\n", mut, vi.Name, p.typeStr(&vi.Static.Type))
	case ValueFunction:
		p.printFunction(vi.Name, vi.Function)
	}
}

func (p *Printer) printConstant(name string, c *Constant) {
	p.push(BinderFunction, &c.Params)
	defer p.pop(BinderFunction)
	p.printf("const %s%s: %s;\n", name, p.params(&c.Params), p.typeStr(&c.Type))
}

func (p *Printer) printFunction(name string, fn *Function) {
	p.push(BinderFunction, &fn.Params)
	defer p.pop(BinderFunction)
	args := make([]string, 0, len(fn.Args))
	for i := range fn.Args {
		a := &fn.Args[i]
		if i == 0 && fn.HasReceiver() {
			args = append(args, "self: "+p.typeStr(&a.Type))
			continue
		}
		args = append(args, fmt.Sprintf("%s: %s", a.Name, p.typeStr(&a.Type)))
	}
	ret := ""
	if !fn.Return.IsInfer() && !(fn.Return.Kind == TypeTuple && len(fn.Return.Tuple) == 0) {
		ret = " -> " + p.typeStr(&fn.Return)
	}
	p.printf("fn %s%s(%s)%s%s;\n", name, p.params(&fn.Params), strings.Join(args, ", "), ret, p.where(&fn.Params))
}

func (p *Printer) fields(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for i := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", fields[i].Name, p.typeStr(&fields[i].Type)))
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) traitList(traits []TraitPath) string {
	parts := make([]string, 0, len(traits))
	for i := range traits {
		var b strings.Builder
		p.writeTraitPath(&b, &traits[i])
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " + ")
}

func (p *Printer) params(gp *GenericParams) string {
	if len(gp.Lifetimes) == 0 && len(gp.Types) == 0 {
		return ""
	}
	parts := make([]string, 0, len(gp.Lifetimes)+len(gp.Types))
	for _, l := range gp.Lifetimes {
		parts = append(parts, "'"+l.Name)
	}
	for i := range gp.Types {
		t := &gp.Types[i]
		if t.Default.IsInfer() {
			parts = append(parts, t.Name)
			continue
		}
		parts = append(parts, t.Name+" = "+p.typeStr(&t.Default))
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (p *Printer) where(gp *GenericParams) string {
	if len(gp.Bounds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(gp.Bounds))
	for i := range gp.Bounds {
		b := &gp.Bounds[i]
		var sb strings.Builder
		switch b.Kind {
		case BoundLifetime:
			sb.WriteString(p.lifetimeStr(b.Lifetime) + ": " + p.lifetimeStr(b.ValidFor))
		case BoundTypeLifetime:
			sb.WriteString(p.typeStr(&b.Type) + ": " + p.lifetimeStr(b.Lifetime))
		case BoundTrait:
			sb.WriteString(p.typeStr(&b.Type) + ": ")
			p.writeTraitPath(&sb, &b.Trait)
		case BoundTypeEquality:
			sb.WriteString(p.typeStr(&b.Type) + " = " + p.typeStr(&b.Other))
		}
		parts = append(parts, sb.String())
	}
	return " where " + strings.Join(parts, ", ")
}

func (p *Printer) typeStr(ty *TypeRef) string {
	var b strings.Builder
	p.writeType(&b, ty)
	return b.String()
}

func (p *Printer) genericPathStr(gp *GenericPath) string {
	var b strings.Builder
	p.writeGenericPath(&b, gp)
	return b.String()
}

func (p *Printer) lifetimeStr(l LifetimeRef) string {
	if p.opts.BindingIDs {
		id, err := l.Encode()
		if err != nil {
			return l.String()
		}
		return "'#" + strconv.FormatUint(uint64(id), 10)
	}
	if !l.IsParam() || p.opts.RawLifetimes {
		return l.String()
	}
	s := p.scopes[l.Binder]
	if len(s) == 0 || int(l.Index) >= len(s[len(s)-1].Lifetimes) {
		return l.String()
	}
	return "'" + s[len(s)-1].Lifetimes[l.Index].Name
}

func (p *Printer) writeType(b *strings.Builder, ty *TypeRef) {
	switch ty.Kind {
	case TypeInfer:
		b.WriteString("_")
	case TypeDiverge:
		b.WriteString("!")
	case TypePrimitive:
		b.WriteString(ty.Name)
	case TypeGeneric:
		b.WriteString(ty.Generic.Name)
	case TypePath:
		p.writePath(b, ty.Path)
	case TypeTraitObject:
		b.WriteString("dyn ")
		p.writeTraitPath(b, &ty.TraitObject.Trait)
		for i := range ty.TraitObject.Markers {
			b.WriteString(" + ")
			p.writeGenericPath(b, &ty.TraitObject.Markers[i])
		}
		b.WriteString(" + " + p.lifetimeStr(ty.TraitObject.Lifetime))
	case TypeErased:
		b.WriteString("impl ")
		for i := range ty.Erased.Traits {
			if i > 0 {
				b.WriteString(" + ")
			}
			p.writeTraitPath(b, &ty.Erased.Traits[i])
		}
		b.WriteString(" + " + p.lifetimeStr(ty.Erased.Lifetime))
	case TypeArray:
		b.WriteString("[")
		p.writeType(b, &ty.Array.Inner)
		b.WriteString("; " + strconv.FormatUint(ty.Array.Size, 10) + "]")
	case TypeSlice:
		b.WriteString("[")
		p.writeType(b, ty.Slice)
		b.WriteString("]")
	case TypeTuple:
		b.WriteString("(")
		for i := range ty.Tuple {
			if i > 0 {
				b.WriteString(", ")
			}
			p.writeType(b, &ty.Tuple[i])
		}
		if len(ty.Tuple) == 1 {
			b.WriteString(",")
		}
		b.WriteString(")")
	case TypeBorrow:
		b.WriteString("&" + p.lifetimeStr(ty.Borrow.Lifetime) + " ")
		switch ty.Borrow.Kind {
		case BorrowUnique:
			b.WriteString("mut ")
		case BorrowOwned:
			b.WriteString("move ")
		}
		p.writeType(b, &ty.Borrow.Inner)
	case TypePointer:
		if ty.Pointer.Mutable {
			b.WriteString("*mut ")
		} else {
			b.WriteString("*const ")
		}
		p.writeType(b, &ty.Pointer.Inner)
	case TypeFunction:
		fn := ty.Function
		p.push(BinderHrtb, &fn.HRLs)
		if len(fn.HRLs.Lifetimes) > 0 {
			b.WriteString("for" + p.params(&GenericParams{Lifetimes: fn.HRLs.Lifetimes}) + " ")
		}
		if fn.Unsafe {
			b.WriteString("unsafe ")
		}
		if fn.ABI != "" {
			b.WriteString("extern " + strconv.Quote(fn.ABI) + " ")
		}
		b.WriteString("fn(")
		for i := range fn.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			p.writeType(b, &fn.Args[i])
		}
		b.WriteString(") -> ")
		p.writeType(b, &fn.Ret)
		p.pop(BinderHrtb)
	}
}

func (p *Printer) writePath(b *strings.Builder, path *Path) {
	switch path.Kind {
	case PathGeneric:
		p.writeGenericPath(b, &path.Generic)
	case PathUfcsInherent:
		b.WriteString("<")
		p.writeType(b, path.Type)
		b.WriteString(">::" + path.Item)
		p.writeParams(b, &path.Params)
	case PathUfcsKnown:
		b.WriteString("<")
		p.writeType(b, path.Type)
		b.WriteString(" as ")
		p.writeGenericPath(b, &path.Trait)
		b.WriteString(">::" + path.Item)
		p.writeParams(b, &path.Params)
	}
}

func (p *Printer) writeGenericPath(b *strings.Builder, gp *GenericPath) {
	b.WriteString(gp.Path.String())
	p.writeParams(b, &gp.Params)
}

func (p *Printer) writeParams(b *strings.Builder, pp *PathParams) {
	if pp.IsEmpty() {
		return
	}
	b.WriteString("<")
	first := true
	for _, l := range pp.Lifetimes {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(p.lifetimeStr(l))
	}
	for i := range pp.Types {
		if !first {
			b.WriteString(", ")
		}
		first = false
		p.writeType(b, &pp.Types[i])
	}
	b.WriteString(">")
}

func (p *Printer) writeTraitPath(b *strings.Builder, tp *TraitPath) {
	if tp.HRLs != nil {
		p.push(BinderHrtb, tp.HRLs)
		defer p.pop(BinderHrtb)
		if len(tp.HRLs.Lifetimes) > 0 {
			b.WriteString("for" + p.params(&GenericParams{Lifetimes: tp.HRLs.Lifetimes}) + " ")
		}
	}
	if tp.Pending != nil {
		b.WriteString("#elide ")
	}
	b.WriteString(tp.Path.Path.String())
	pp := &tp.Path.Params
	if pp.IsEmpty() && len(tp.TypeBounds) == 0 && len(tp.TraitBounds) == 0 {
		return
	}
	b.WriteString("<")
	first := true
	sep := func() {
		if !first {
			b.WriteString(", ")
		}
		first = false
	}
	for _, l := range pp.Lifetimes {
		sep()
		b.WriteString(p.lifetimeStr(l))
	}
	for i := range pp.Types {
		sep()
		p.writeType(b, &pp.Types[i])
	}
	for i := range tp.TypeBounds {
		sep()
		b.WriteString(tp.TypeBounds[i].Name + " = ")
		p.writeType(b, &tp.TypeBounds[i].Type)
	}
	for i := range tp.TraitBounds {
		sep()
		b.WriteString(tp.TraitBounds[i].Name + ": " + p.traitList(tp.TraitBounds[i].Traits))
	}
	b.WriteString(">")
}
