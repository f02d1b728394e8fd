package elision

import (
	"context"
	"strconv"

	"elide/internal/diag"
	"elide/internal/hir"
	"elide/internal/resolve"
	"elide/internal/source"
	"elide/internal/trace"
)

// Run elides lifetimes in crate in place.
func Run(ctx context.Context, crate *hir.Crate, opts Options) error {
	_, err := Elide(ctx, crate, opts)
	return err
}

// Elide is Run that also reports what was filled in. On failure the crate
// is left partially rewritten and the returned error is an *Error.
func Elide(ctx context.Context, crate *hir.Crate, opts Options) (stats Stats, err error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "elide", trace.ParentFrom(ctx))

	v := newElider(crate, opts, tr, span.ID())
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			stats, err = v.stats, a.err
			span.WithExtra("code", a.err.Code.ID()).End("failed")
			return
		}
		span.WithExtra("synthesised", strconv.Itoa(v.stats.Synthesised)).
			WithExtra("static", strconv.Itoa(v.stats.Static)).
			End("")
	}()

	v.WalkCrate(crate)
	return v.stats, nil
}

// target is one entry of the ambient stack. A cleared entry (set == false)
// hides everything below it: inside a fn pointer or call-sugar trait the
// enclosing borrow's lifetime must not leak in.
type target struct {
	set bool
	lft hir.LifetimeRef
}

func targetOf(l hir.LifetimeRef) target { return target{set: true, lft: l} }

// binder is the parameter list that receives synthesised lifetimes.
type binder struct {
	params *hir.GenericParams
	kind   hir.BinderKind
}

type elider struct {
	hir.BaseVisitor

	resolve  *resolve.TraitResolve
	reporter diag.Reporter
	infer    InferMode

	stack []target
	cur   binder

	// sp is the innermost non-empty span seen on the way down; lifetimes
	// carry none of their own.
	sp       source.Span
	item     string
	itemSpan source.Span

	tracer trace.Tracer
	parent uint64
	stats  Stats
}

func newElider(crate *hir.Crate, opts Options, tr trace.Tracer, parent uint64) *elider {
	v := &elider{
		resolve:  resolve.New(crate),
		reporter: opts.Reporter,
		infer:    opts.Infer,
		tracer:   tr,
		parent:   parent,
	}
	v.BaseVisitor = hir.NewBaseVisitor(v)
	return v
}

func (v *elider) push(t target) {
	v.stack = append(v.stack, t)
}

func (v *elider) pop() {
	v.stack = v.stack[:len(v.stack)-1]
}

// top returns the ambient lifetime, if one is active.
func (v *elider) top() (hir.LifetimeRef, bool) {
	if len(v.stack) == 0 {
		return hir.LifetimeRef{}, false
	}
	t := v.stack[len(v.stack)-1]
	return t.lft, t.set
}

// setBinder installs b and returns the previous binder for restoring.
func (v *elider) setBinder(b binder) binder {
	prev := v.cur
	v.cur = b
	return prev
}

// at moves the current span to sp when sp is known and returns the old one.
func (v *elider) at(sp source.Span) source.Span {
	prev := v.sp
	if !sp.Empty() {
		v.sp = sp
	}
	return prev
}

func (v *elider) expectEmptyStack(where string) {
	if len(v.stack) != 0 {
		v.fail(diag.ElideStackLeak, v.sp, "%d ambient lifetime(s) left on the stack %s", len(v.stack), where)
	}
}

// visitLifetime resolves one lifetime occurrence in place.
func (v *elider) visitLifetime(lft *hir.LifetimeRef) {
	switch lft.State {
	case hir.LifetimeStatic, hir.LifetimeParam:
		return
	case hir.LifetimeInfer:
		if v.infer == InferKeep {
			return
		}
	case hir.LifetimeUnknown:
	default:
		v.fail(diag.ElideUnexpectedBinding, v.sp, "unexpected lifetime binding - %s", lft)
	}

	if t, ok := v.top(); ok {
		*lft = t
		if t.IsStatic() {
			v.stats.Static++
		} else {
			v.stats.Reused++
		}
		return
	}
	if v.cur.params != nil {
		idx := v.cur.params.AddElidedLifetime(v.sp)
		*lft = hir.Param(v.cur.kind, idx)
		v.stats.Synthesised++
		return
	}
	v.fail(diag.ElideUnspecifiedLifetime, v.sp, "unspecified lifetime in outer context")
}

func (v *elider) VisitPathParams(pp *hir.PathParams) {
	for i := range pp.Lifetimes {
		v.visitLifetime(&pp.Lifetimes[i])
	}
	v.WalkPathParams(pp)
}
