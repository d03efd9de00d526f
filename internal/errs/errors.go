// Package errs provides the error taxonomy used across odbcenv.
//
// Every failure leaving the adapter is an *errs.Error carrying a Kind from a
// fixed two-level hierarchy (Warning, Error, InterfaceError, DatabaseError and
// the DatabaseError children). Kinds are compile-time values, so "is-a"
// checks are ancestry walks rather than type assertions:
//
//	if errs.IsKind(err, errs.KindDatabase) {
//	    // DataError, ProgrammingError, ... all land here
//	}
//
// Host-input mistakes (wrong argument count, wrong value type) use KindArgument
// and KindType, which sit outside the Error hierarchy on purpose.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies one node of the taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	KindWarning
	KindError
	KindInterface
	KindDatabase
	KindData
	KindOperational
	KindIntegrity
	KindInternal
	KindProgramming
	KindNotSupported

	// Host-input failures. Their parent is the root, never KindError.
	KindArgument
	KindType
)

// Parent returns the kind this kind derives from. Roots return KindUnknown.
func (k Kind) Parent() Kind {
	switch k {
	case KindInterface, KindDatabase:
		return KindError
	case KindData, KindOperational, KindIntegrity, KindInternal, KindProgramming, KindNotSupported:
		return KindDatabase
	default:
		return KindUnknown
	}
}

// IsA reports whether k equals ancestor or descends from it.
func (k Kind) IsA(ancestor Kind) bool {
	if ancestor == KindUnknown {
		return false
	}
	for cur := k; cur != KindUnknown; cur = cur.Parent() {
		if cur == ancestor {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "Warning"
	case KindError:
		return "Error"
	case KindInterface:
		return "InterfaceError"
	case KindDatabase:
		return "DatabaseError"
	case KindData:
		return "DataError"
	case KindOperational:
		return "OperationalError"
	case KindIntegrity:
		return "IntegrityError"
	case KindInternal:
		return "InternalError"
	case KindProgramming:
		return "ProgrammingError"
	case KindNotSupported:
		return "NotSupportedError"
	case KindArgument:
		return "ArgumentError"
	case KindType:
		return "TypeError"
	default:
		return "UnknownError"
	}
}

// Diagnostic is one native diagnostic record.
type Diagnostic struct {
	SQLState   string
	NativeCode int32
	Message    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s (%d)", d.SQLState, d.Message, d.NativeCode)
}

// Error is the single error type returned by odbcenv.
type Error struct {
	Kind    Kind
	Message string
	Diag    *Diagnostic // native diagnostic, when the failure came from the driver manager
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Diag != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Diag)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// FromDiagnostic builds an error for a failed native call. op names the call,
// e.g. "SQLDataSources".
func FromDiagnostic(kind Kind, op string, diag Diagnostic) *Error {
	return &Error{Kind: kind, Message: op, Diag: &diag}
}

// --- Predicates ---

// IsKind reports whether the first *Error in err's chain is kind or a
// descendant of it.
func IsKind(err error, kind Kind) bool {
	return kindOf(err).IsA(kind)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	return kindOf(err)
}

// IsDatabaseError reports whether err is a DatabaseError or one of its children.
func IsDatabaseError(err error) bool {
	return IsKind(err, KindDatabase)
}

// IsInterfaceError reports whether err concerns the adapter rather than the database.
func IsInterfaceError(err error) bool {
	return IsKind(err, KindInterface)
}

func IsOperationalError(err error) bool {
	return IsKind(err, KindOperational)
}

func IsProgrammingError(err error) bool {
	return IsKind(err, KindProgramming)
}

func IsNotSupportedError(err error) bool {
	return IsKind(err, KindNotSupported)
}

// IsArgumentError reports whether err was caused by bad input from the caller.
func IsArgumentError(err error) bool {
	k := kindOf(err)
	return k == KindArgument || k == KindType
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
