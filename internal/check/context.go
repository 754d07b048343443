package check

import "github.com/korelang/kore/internal/term"

// Context is the typing context Γ (spec §3.5): an ordered list of
// term-level bindings where index i holds the type of the de Bruijn
// variable at depth i. The zero value is the empty context. Context
// values are local to one checking invocation and never escape it.
type Context struct {
	types []*term.Term // types[0] is the innermost (most recently bound) variable's type
}

// Extend returns a new context with typ pushed as the new innermost
// binding (depth 0); the caller's context is left untouched.
func (c Context) Extend(typ *term.Term) Context {
	types := make([]*term.Term, 0, len(c.types)+1)
	types = append(types, typ)
	types = append(types, c.types...)
	return Context{types: types}
}

// At returns the type recorded for variable i, and whether i is in range.
func (c Context) At(i int) (*term.Term, bool) {
	if i < 0 || i >= len(c.types) {
		return nil, false
	}
	return c.types[i], true
}

// Len reports the number of bindings in scope.
func (c Context) Len() int { return len(c.types) }
