package forge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/forge/i18n"
)

// Kind classifies an Error. The values double as i18n message codes.
type Kind string

// Error kinds (exported for errors.Is matching through the sentinels below).
const (
	// Malformed factory inputs: non-sequence spec list, non-function constructor.
	KindConfiguration Kind = "configuration"
	// Malformed individual parameter specification.
	KindParamSpec Kind = "param_spec"
	// Required field absent at build time.
	KindMissingArgument Kind = "missing_argument"
	// Required, non-nullable field set to null at build time.
	KindNullArgument Kind = "null_argument"
	// Builder misuse: unknown method, wrong arity, value of the wrong shape.
	KindUsage Kind = "usage"
)

// unnamed is reported in place of a parameter name that could not be read.
const unnamed = "unnamed"

// Error is the single error type returned by this package.
type Error struct {
	Kind Kind
	// Param is the offending parameter name, "unnamed" when the entry has no
	// usable name, or empty when the error is not tied to a parameter.
	Param string
	// Index is the declaration position of the offending parameter, or -1.
	Index  int
	Reason string
}

// Sentinels usable with errors.Is. Each matches every Error of its kind.
var (
	ErrConfiguration   = &Error{Kind: KindConfiguration, Index: -1}
	ErrParamSpec       = &Error{Kind: KindParamSpec, Index: -1}
	ErrMissingArgument = &Error{Kind: KindMissingArgument, Index: -1}
	ErrNullArgument    = &Error{Kind: KindNullArgument, Index: -1}
	ErrUsage           = &Error{Kind: KindUsage, Index: -1}
)

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString("forge: ")
	b.WriteString(string(e.Kind))
	switch {
	case e.Index >= 0 && e.Param != "":
		fmt.Fprintf(b, ": param #%d (%s)", e.Index, e.Param)
	case e.Index >= 0:
		fmt.Fprintf(b, ": param #%d", e.Index)
	case e.Param != "":
		fmt.Fprintf(b, ": %s", e.Param)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Reason != "" || t.Param != "" {
		return t == e
	}
	return t.Kind == e.Kind
}

// Localize renders the error through a message catalog. The parameter name is
// appended when present.
func (e *Error) Localize(tr i18n.Translator) string {
	if tr == nil {
		tr = i18n.Default()
	}
	msg := tr.Message(string(e.Kind), map[string]string{"param": e.Param, "reason": e.Reason})
	if e.Param == "" {
		return msg
	}
	return msg + ": " + e.Param
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func configError(reason string) error {
	return &Error{Kind: KindConfiguration, Index: -1, Reason: reason}
}

func specError(index int, name, reason string) error {
	if name == "" {
		name = unnamed
	}
	return &Error{Kind: KindParamSpec, Param: name, Index: index, Reason: reason}
}

func usageError(param, format string, args ...any) error {
	return &Error{Kind: KindUsage, Param: param, Index: -1, Reason: fmt.Sprintf(format, args...)}
}
