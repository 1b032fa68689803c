// Released under an MIT license. See LICENSE.

package lisp

import (
	"errors"
	"fmt"

	"github.com/michaelmacinnis/lish/internal/common/struct/heap"
	"github.com/michaelmacinnis/lish/internal/common/struct/loc"
)

// Kind classifies an Error.
type Kind int

// Error kinds.
const (
	Unbound Kind = iota
	TypeMismatch
	Arity
	Namespace
	UnmatchedBlock
	UserRaised
	FormRestriction
	HostIO
	StaleHandle
	Interrupted
	Overflow
	Syntax
)

func (k Kind) String() string {
	switch k {
	case Unbound:
		return "unbound-symbol"
	case TypeMismatch:
		return "type-mismatch"
	case Arity:
		return "arity-mismatch"
	case Namespace:
		return "namespace-error"
	case UnmatchedBlock:
		return "unmatched-block"
	case UserRaised:
		return "user-raised"
	case FormRestriction:
		return "form-restriction-violation"
	case HostIO:
		return "host-io-error"
	case StaleHandle:
		return "stale-handle"
	case Interrupted:
		return "interrupted"
	case Overflow:
		return "overflow"
	case Syntax:
		return "syntax-error"
	}

	return "unknown"
}

// Error is a recoverable language-level error.
type Error struct {
	Err     error
	Kind    Kind
	Message string
	Meta    *loc.T
	Stack   []string
}

// Errorf creates an Error of kind k.
func Errorf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of kind k from err.
func Wrap(k Kind, err error) *Error {
	return &Error{Err: err, Kind: k, Message: err.Error()}
}

func (e *Error) Error() string {
	if e.Meta != nil {
		return e.Meta.String() + ": " + e.Message
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, if it is an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return 0, false
}

// TailCall is returned by recur to restart the enclosing lambda.
type TailCall struct {
	Args []Expression
}

func (*TailCall) Error() string {
	return "recur used outside of a lambda"
}

// ReturnFrom unwinds to the nearest block with a matching name.
// An empty Name matches any block.
type ReturnFrom struct {
	Name  string
	Value Expression
}

func (r *ReturnFrom) Error() string {
	if r.Name == "" {
		return "return-from nil called with no enclosing block"
	}

	return "return-from " + r.Name + " called with no enclosing block"
}

// IsControl returns true if err is a non-local exit rather than a failure.
func IsControl(err error) bool {
	switch err.(type) {
	case *TailCall, *ReturnFrom:
		return true
	}

	return false
}

func stale(err *heap.StaleError) *Error {
	return &Error{Err: err, Kind: StaleHandle, Message: err.Error()}
}
