// Package term implements the kernel's closed, hash-consed abstract syntax
// (C2): terms over de Bruijn indices, plus lifting and substitution.
package term

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/sid"
)

// Kind discriminates term variants.
type Kind int

const (
	KVar Kind = iota
	KSort
	KApp
	KAbs
	KProd
	KDecl
)

// Term is an interned kernel term. All Terms are produced through the
// Pool's constructor helpers below, which intern every node, so that structurally
// identical terms share one pointer; reference equality implies semantic
// equality, though the converse needs Equal.
type Term struct {
	kind Kind
	sid  sid.SID

	// KVar
	idx int

	// KSort
	sort *level.Level

	// KApp
	fn  *Term
	arg *Term

	// KAbs / KProd: dom is the domain type, cod/body is the term under one
	// extra binding.
	dom *Term
	cod *Term

	// KDecl
	name string
	inst []*level.Level
}

// Pool is the process-wide interning table for kernel terms. The zero
// value is not usable; use NewPool.
type Pool struct {
	mu    sync.Mutex
	table map[sid.SID]*Term
}

// NewPool creates an empty interning pool.
func NewPool() *Pool {
	return &Pool{table: make(map[sid.SID]*Term)}
}

func (p *Pool) intern(t *Term) *Term {
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.table[t.sid]; ok {
		return existing
	}
	p.table[t.sid] = t
	return t
}

func levelsKey(ls []*level.Level) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, ",")
}

// Var builds (and interns) a bound occurrence at de Bruijn index i.
func (p *Pool) Var(i int) *Term {
	t := &Term{kind: KVar, idx: i, sid: sid.Of("Var", strconv.Itoa(i))}
	return p.intern(t)
}

// Sort builds (and interns) the sort at universe level l.
func (p *Pool) Sort(l *level.Level) *Term {
	t := &Term{kind: KSort, sort: l, sid: sid.Of("Sort", l.String())}
	return p.intern(t)
}

// App builds (and interns) the application f a.
func (p *Pool) App(f, a *Term) *Term {
	t := &Term{kind: KApp, fn: f, arg: a, sid: sid.Of("App", string(f.sid), string(a.sid))}
	return p.intern(t)
}

// Abs builds (and interns) λ of domain dom and body b (under one extra
// binding).
func (p *Pool) Abs(dom, b *Term) *Term {
	t := &Term{kind: KAbs, dom: dom, cod: b, sid: sid.Of("Abs", string(dom.sid), string(b.sid))}
	return p.intern(t)
}

// Prod builds (and interns) Π of domain dom and codomain c (under one
// extra binding).
func (p *Pool) Prod(dom, c *Term) *Term {
	t := &Term{kind: KProd, dom: dom, cod: c, sid: sid.Of("Prod", string(dom.sid), string(c.sid))}
	return p.intern(t)
}

// Decl builds (and interns) a reference to a global declaration at a
// specific universe instance vector.
func (p *Pool) Decl(name string, inst []*level.Level) *Term {
	t := &Term{kind: KDecl, name: name, inst: inst, sid: sid.Of("Decl", name, levelsKey(inst))}
	return p.intern(t)
}

// Kind, accessors.

func (t *Term) Kind() Kind            { return t.kind }
func (t *Term) VarIndex() int         { return t.idx }
func (t *Term) SortLevel() *level.Level { return t.sort }
func (t *Term) AppFunc() *Term        { return t.fn }
func (t *Term) AppArg() *Term         { return t.arg }
func (t *Term) Domain() *Term         { return t.dom }
func (t *Term) Codomain() *Term       { return t.cod } // Prod
func (t *Term) Body() *Term           { return t.cod } // Abs
func (t *Term) DeclName() string      { return t.name }
func (t *Term) DeclInstance() []*level.Level { return t.inst }

// Equal reports structural identity (after hash-consing this is almost
// always a pointer compare, but callers should not assume pointer
// equality implies a term was built through this exact pool instance).
func (t *Term) Equal(o *Term) bool {
	return t == o || t.sid == o.sid
}

// String renders a term for diagnostics and `eval` output.
func (t *Term) String() string {
	switch t.kind {
	case KVar:
		return fmt.Sprintf("#%d", t.idx)
	case KSort:
		return fmt.Sprintf("Sort %s", t.sort)
	case KApp:
		return fmt.Sprintf("(%s %s)", t.fn, t.arg)
	case KAbs:
		return fmt.Sprintf("(fun _: %s => %s)", t.dom, t.cod)
	case KProd:
		return fmt.Sprintf("((_: %s) -> %s)", t.dom, t.cod)
	case KDecl:
		if len(t.inst) == 0 {
			return t.name
		}
		parts := make([]string, len(t.inst))
		for i, l := range t.inst {
			parts[i] = l.String()
		}
		return fmt.Sprintf("%s.{%s}", t.name, strings.Join(parts, ", "))
	}
	return "<?term>"
}
