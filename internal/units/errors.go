package units

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
)

// Sentinel errors, matched through errors.Is against any *Error of the same kind.
var (
	ErrIncompatibleUnits  = errors.New("incompatible units")
	ErrCircularDefinition = errors.New("circular definition")
	ErrUnknownReference   = errors.New("unknown reference")
	ErrInvalidOffsetUnit  = errors.New("invalid offset unit")
	ErrInvalidDefinition  = errors.New("invalid definition")
)

// ErrorKind classifies conversion failures.
type ErrorKind string

const (
	KindIncompatibleUnits  ErrorKind = "incompatible_units"
	KindCircularDefinition ErrorKind = "circular_definition"
	KindUnknownReference   ErrorKind = "unknown_reference"
	KindInvalidOffsetUnit  ErrorKind = "invalid_offset_unit"
	KindInvalidDefinition  ErrorKind = "invalid_definition"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindIncompatibleUnits:
		return ErrIncompatibleUnits
	case KindCircularDefinition:
		return ErrCircularDefinition
	case KindUnknownReference:
		return ErrUnknownReference
	case KindInvalidOffsetUnit:
		return ErrInvalidOffsetUnit
	case KindInvalidDefinition:
		return ErrInvalidDefinition
	default:
		return nil
	}
}

// Error describes why a definition could not be decomposed or a conversion
// could not be resolved. All causes are properties of the schema data.
type Error struct {
	Op     string
	Kind   ErrorKind
	From   schema.ItemKey // Optional: requested source unit
	To     schema.ItemKey // Optional: requested target unit
	Item   schema.ItemKey // Optional: item whose definition failed
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if !e.From.IsZero() || !e.To.IsZero() {
		base += fmt.Sprintf(" (%s -> %s)", e.From, e.To)
	}
	if !e.Item.IsZero() {
		base += fmt.Sprintf(" (item=%s)", e.Item)
	}
	if e.Detail != "" {
		base += ": " + e.Detail
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or "" when err is not an *Error
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ""
}

func newError(kind ErrorKind, item schema.ItemKey, format string, args ...any) *Error {
	return &Error{
		Op:     "decompose",
		Kind:   kind,
		Item:   item,
		Detail: fmt.Sprintf(format, args...),
	}
}

// withRequest returns a copy of err annotated with the requested pair
func withRequest(err error, from, to schema.ItemKey) error {
	var ue *Error
	if !errors.As(err, &ue) {
		return err
	}
	out := *ue
	out.Op = "resolve"
	out.From = from
	out.To = to
	return &out
}
