package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/korelang/kore/internal/ast"
	"github.com/korelang/kore/internal/schema"
)

// Report is the canonical structured error type for the kernel and its
// front end. Every fallible operation in this repository returns a plain
// Go error that, via errors.As, unwraps to a *Report.
type Report struct {
	Schema  string         `json:"schema"` // always "kore.error/v1"
	Code    string         `json:"code"`
	Phase   string         `json:"phase"` // "lex" | "parse" | "elaborate" | "kernel"
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as an error so it survives errors.As()
// unwrapping through ordinary Go error-handling code.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a *Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// Wrap turns a Report into an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds and wraps a Report in one call.
func New(phase, code, msg string, span *ast.Span, data map[string]any) error {
	return Wrap(&Report{
		Schema:  schema.ErrorV1,
		Code:    code,
		Phase:   phase,
		Message: msg,
		Span:    span,
		Data:    data,
	})
}

// Kernelf builds a kernel-phase Report with a formatted message.
func Kernelf(code, format string, args ...any) error {
	return New("kernel", code, fmt.Sprintf(format, args...), nil, nil)
}

// Lexf builds a lex-phase Report with a formatted message.
func Lexf(code, format string, args ...any) error {
	return New("lex", code, fmt.Sprintf(format, args...), nil, nil)
}

// Parsef builds a parse-phase Report with a formatted message.
func Parsef(code, format string, args ...any) error {
	return New("parse", code, fmt.Sprintf(format, args...), nil, nil)
}

// Elaboratef builds an elaborate-phase Report with a formatted message.
func Elaboratef(code, format string, args ...any) error {
	return New("elaborate", code, fmt.Sprintf(format, args...), nil, nil)
}

// ToJSON renders a Report as deterministic JSON: keys sorted, so the same
// Report always serializes to the same bytes regardless of Go's map/struct
// field ordering.
func (r *Report) ToJSON(compact bool) (string, error) {
	data, err := schema.MarshalDeterministic(r)
	if err != nil {
		return "", err
	}
	formatted, err := schema.FormatJSON(data, compact)
	if err != nil {
		return "", err
	}
	return string(formatted), nil
}
