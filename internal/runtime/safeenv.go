// Package runtime implements the concurrency wrapper (F8): SafeEnv guards
// a kernel.Env for hosts that call it from more than one goroutine (a
// REPL-over-network, a language server, a batch checker). The default
// CLI/REPL front end runs single-threaded and uses a kernel.Env directly,
// per spec §5's "single-threaded from the point of view of any one
// checking operation" — SafeEnv is an opt-in wrapper, not the default
// path, so that path pays no synchronization cost.
package runtime

import (
	"sync"

	"github.com/korelang/kore/internal/kenv"
	"github.com/korelang/kore/internal/kernel"
	"github.com/korelang/kore/internal/level"
	"github.com/korelang/kore/internal/term"
)

// SafeEnv wraps a kernel.Env with a RWMutex: declare/define take the write
// lock, every other operation takes a read lock held for the call's
// duration so conversion observes one consistent environment snapshot.
// SafeEnv does not lock the term pool itself: term.Pool serializes its
// own insertions with an internal mutex, so the interning App/Abs/Prod/
// Sort/Var calls that concurrent readers make under the read lock are
// safe. A caller known to be
// single-threaded should use kernel.Env directly instead of paying for
// this wrapper.
type SafeEnv struct {
	mu  sync.RWMutex
	env *kernel.Env
}

// NewSafeEnv wraps env for concurrent use. The caller must not use env
// directly once wrapped.
func NewSafeEnv(env *kernel.Env) *SafeEnv {
	return &SafeEnv{env: env}
}

// AddAxiom declares name as an axiom, under the write lock.
func (s *SafeEnv) AddAxiom(name string, univArity int, typ *term.Term) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.AddAxiom(name, univArity, typ)
}

// AddDefinition declares name as a definition, under the write lock.
func (s *SafeEnv) AddDefinition(name string, univArity int, body, typ *term.Term) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env.AddDefinition(name, univArity, body, typ)
}

// InferType infers t's type under a read lock.
func (s *SafeEnv) InferType(t *term.Term) (*term.Term, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.InferType(t)
}

// CheckType checks t against expected under a read lock.
func (s *SafeEnv) CheckType(t, expected *term.Term) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.CheckType(t, expected)
}

// Whnf reduces t to weak-head normal form under a read lock.
func (s *SafeEnv) Whnf(t *term.Term) *term.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Whnf(t)
}

// NormalForm fully normalizes t under a read lock.
func (s *SafeEnv) NormalForm(t *term.Term) *term.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.NormalForm(t)
}

// Lookup returns the declaration bound to name under a read lock.
func (s *SafeEnv) Lookup(name string) (*kenv.Decl, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Lookup(name)
}

// Instantiate substitutes inst for decl's universe parameters under a
// read lock.
func (s *SafeEnv) Instantiate(decl *kenv.Decl, inst []*level.Level) (body, typ *term.Term, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Instantiate(decl, inst)
}

// Summarize describes name under a read lock.
func (s *SafeEnv) Summarize(name string) (kernel.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Summarize(name)
}

// Names returns every declared name in insertion order under a read lock.
func (s *SafeEnv) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Names()
}
