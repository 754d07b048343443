// Package errors provides the structured error report type threaded
// through every fallible kernel and front-end operation, plus the error
// code taxonomy from spec §7.
package errors

// Error code constants, organized by phase. Kernel codes (KNL###) mirror
// the kernel error kinds, with "not a sort" and "not a function type"
// given separate codes; the remaining groups cover the front end this
// kernel is embedded in.
const (
	// ============================================================
	// Kernel errors (KNL###)
	// ============================================================

	// KNL001 indicates a de Bruijn index exceeded the context length.
	KNL001 = "KNL001"
	// KNL002 indicates a Decl referenced a name absent from the environment.
	KNL002 = "KNL002"
	// KNL003 indicates a universe instance vector's length did not match
	// the declaration's parameter arity.
	KNL003 = "KNL003"
	// KNL004 indicates a position requiring a Sort whnf'd to something else.
	KNL004 = "KNL004"
	// KNL005 indicates a position requiring a Prod whnf'd to something else.
	KNL005 = "KNL005"
	// KNL006 indicates the expected and inferred types were not convertible.
	KNL006 = "KNL006"
	// KNL007 indicates a name was already bound in the environment.
	KNL007 = "KNL007"

	// ============================================================
	// Lexer errors (LEX###)
	// ============================================================

	// LEX001 indicates an invalid character or unterminated token.
	LEX001 = "LEX001"

	// ============================================================
	// Parser errors (PAR###)
	// ============================================================

	// PAR001 indicates an unexpected token.
	PAR001 = "PAR001"
	// PAR002 indicates an unterminated group (missing closing delimiter).
	PAR002 = "PAR002"
	// PAR003 indicates an invalid binder group.
	PAR003 = "PAR003"
	// PAR004 indicates an invalid universe-argument list.
	PAR004 = "PAR004"

	// ============================================================
	// Elaborator errors (ELB###)
	// ============================================================

	// ELB001 indicates a surface name with no binding in scope.
	ELB001 = "ELB001"
	// ELB002 indicates a universe-level variable with no matching
	// universe parameter in scope.
	ELB002 = "ELB002"
	// ELB003 indicates a `.{...}` instance list whose length did not
	// match the referenced declaration's universe-parameter arity.
	ELB003 = "ELB003"

	// ============================================================
	// Import errors (IMP###)
	// ============================================================

	// IMP001 indicates the imported file could not be found/read.
	IMP001 = "IMP001"
	// IMP002 indicates an import cycle was detected.
	IMP002 = "IMP002"
)
