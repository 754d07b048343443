// Package ast defines the surface abstract syntax: named, unbound terms and
// commands as produced by the parser (F2/F3), before the elaborator (F4)
// rewrites them into the kernel's de Bruijn terms.
package ast

import "fmt"

// Pos is a source position: line and column are 1-based, Offset is the
// 0-based byte offset into the source buffer.
type Pos struct {
	Line, Col, Offset int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Span is a half-open source range [Start, End).
type Span struct {
	Start, End Pos
}

// LevelExpr is a surface universe-level expression, one of: a natural
// literal, a variable name, `ℓ + n`, `max(ℓ1, ℓ2)`, or `imax(ℓ1, ℓ2)`.
type LevelExpr interface {
	levelExpr()
	String() string
	Span() Span
}

type leNode struct{ span Span }

func (n leNode) Span() Span { return n.span }

// LENat is a natural-number level literal.
type LENat struct {
	leNode
	N int
}

func (LENat) levelExpr()       {}
func (l LENat) String() string { return fmt.Sprintf("%d", l.N) }

// LEVar is a universe-parameter variable reference by name.
type LEVar struct {
	leNode
	Name string
}

func (LEVar) levelExpr()       {}
func (l LEVar) String() string { return l.Name }

// LEPlus is `ℓ + n`.
type LEPlus struct {
	leNode
	Base LevelExpr
	N    int
}

func (LEPlus) levelExpr()       {}
func (l LEPlus) String() string { return fmt.Sprintf("%s + %d", l.Base, l.N) }

// LEMax is `max ℓ1 ℓ2` / `max(ℓ1, ℓ2)`.
type LEMax struct {
	leNode
	Left, Right LevelExpr
}

func (LEMax) levelExpr()       {}
func (l LEMax) String() string { return fmt.Sprintf("max(%s, %s)", l.Left, l.Right) }

// LEIMax is `imax ℓ1 ℓ2` / `imax(ℓ1, ℓ2)`.
type LEIMax struct {
	leNode
	Left, Right LevelExpr
}

func (LEIMax) levelExpr()       {}
func (l LEIMax) String() string { return fmt.Sprintf("imax(%s, %s)", l.Left, l.Right) }

// Term is a surface, named (unbound) term.
type Term interface {
	term()
	String() string
	Span() Span
}

type tNode struct{ span Span }

func (n tNode) Span() Span { return n.span }

// TVar is a named variable occurrence (bound by an enclosing fun/Pi, or a
// reference to a global — disambiguated by the elaborator, not the
// parser).
type TVar struct {
	tNode
	Name string
}

func (TVar) term()         {}
func (t TVar) String() string { return t.Name }

// TSort is an explicit `Sort ℓ` (Prop and Type k are parsed as sugar into
// this node with the appropriate LevelExpr).
type TSort struct {
	tNode
	Level LevelExpr
}

func (TSort) term()         {}
func (t TSort) String() string { return fmt.Sprintf("Sort %s", t.Level) }

// TApp is function application.
type TApp struct {
	tNode
	Fn, Arg Term
}

func (TApp) term()         {}
func (t TApp) String() string { return fmt.Sprintf("(%s %s)", t.Fn, t.Arg) }

// TAbs is `fun (x : τ) => b`, one binder at a time (argument groups are
// desugared by the parser into nested TAbs).
type TAbs struct {
	tNode
	Param  string
	Domain Term
	Body   Term
}

func (TAbs) term() {}
func (t TAbs) String() string {
	return fmt.Sprintf("(fun (%s: %s) => %s)", t.Param, t.Domain, t.Body)
}

// TProd is `(x : τ) -> u`, or `τ -> u` when Param is "_".
type TProd struct {
	tNode
	Param      string
	Domain     Term
	Codomain   Term
}

func (TProd) term() {}
func (t TProd) String() string {
	return fmt.Sprintf("((%s: %s) -> %s)", t.Param, t.Domain, t.Codomain)
}

// TRef is a reference to a global declaration, optionally applied to an
// explicit `.{ℓ1, ..., ℓk}` universe instance list.
type TRef struct {
	tNode
	Name   string
	Levels []LevelExpr // nil when no `.{...}` was written
}

func (TRef) term() {}
func (t TRef) String() string {
	if len(t.Levels) == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s.{...}", t.Name)
}

// Command is a single top-level surface command (spec §6.1).
type Command interface {
	command()
	Span() Span
}

type cNode struct{ span Span }

func (n cNode) Span() Span { return n.span }

// Arg is one parsed binder-group entry of a `def` argument list.
type Arg struct {
	Name   string
	Domain Term
}

// Define is `def NAME Args := term` (and its universe-polymorphic/typed
// variants; UnivParams and Type are nil/empty when not written).
type Define struct {
	cNode
	Name       string
	UnivParams []string
	Args       []Arg
	Type       Term // nil when no `: T` was given
	Body       Term
}

func (Define) command() {}

// CheckType is `check term : T`.
type CheckType struct {
	cNode
	Term Term
	Type Term
}

func (CheckType) command() {}

// GetType is `check term`.
type GetType struct {
	cNode
	Term Term
}

func (GetType) command() {}

// Eval is `eval term`.
type Eval struct {
	cNode
	Term Term
}

func (Eval) command() {}

// Import is `import filename ...`.
type Import struct {
	cNode
	Files []string
}

func (Import) command() {}

// Search is `search NAME`.
type Search struct {
	cNode
	Name string
}

func (Search) command() {}
