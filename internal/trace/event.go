package trace

import "time"

// Kind distinguishes span boundaries from one-off events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Scope is the granularity of an event. Smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command
	ScopeCrate                   // one input file
	ScopePass                    // elide / verify / encode
	ScopeItem                    // function, impl block
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopeCrate:  "crate",
	ScopePass:   "pass",
	ScopeItem:   "item",
}

func (s Scope) String() string {
	if s == 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "elide", "fn:demo::f", "impl:Foo"
	Detail   string
	Extra    map[string]string
}
