package connstr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koustreak/odbcenv/internal/errs"
)

// ValueKind tags the contents of a Value.
type ValueKind uint8

const (
	TextValue ValueKind = iota
	BoolValue
	IntValue
)

func (k ValueKind) String() string {
	switch k {
	case TextValue:
		return "text"
	case BoolValue:
		return "bool"
	case IntValue:
		return "int"
	default:
		return "unknown"
	}
}

// Value is a keyword argument value: text, boolean or integer.
type Value struct {
	kind ValueKind
	text string
	b    bool
	i    int64
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: TextValue, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: BoolValue, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: IntValue, i: i} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) String() string {
	switch v.kind {
	case BoolValue:
		return strconv.FormatBool(v.b)
	case IntValue:
		return strconv.FormatInt(v.i, 10)
	default:
		return v.text
	}
}

// Truthy reports the boolean interpretation of v: false, 0 and "" are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case BoolValue:
		return v.b
	case IntValue:
		return v.i != 0
	default:
		return v.text != ""
	}
}

// Integer coerces v to an integer. Booleans count as 0 and 1; text is
// rejected with a KindType error.
func (v Value) Integer() (int64, error) {
	switch v.kind {
	case IntValue:
		return v.i, nil
	case BoolValue:
		if v.b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errs.Newf(errs.KindType, "an integer is required, got %s %q", v.kind, v.text)
	}
}

// Keyword is one keyword argument.
type Keyword struct {
	Key   string
	Value Value
}

func (k Keyword) String() string {
	return fmt.Sprintf("%s=%s", k.Key, k.Value)
}

// ParseKeyword parses "key=value" text as typed on a command line. Values for
// the control keywords are parsed as a boolean (autocommit) or an integer
// (timeout); every other value stays text.
func ParseKeyword(s string) (Keyword, error) {
	key, val, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return Keyword{}, errs.Newf(errs.KindArgument, "keyword %q is not of the form key=value", s)
	}

	switch key {
	case KeyAutocommit:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return Keyword{}, errs.Wrap(errs.KindType, "autocommit must be a boolean", err)
		}
		return Keyword{Key: key, Value: Bool(b)}, nil
	case KeyTimeout:
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return Keyword{}, errs.Wrap(errs.KindType, "timeout must be an integer", err)
		}
		return Keyword{Key: key, Value: Int(i)}, nil
	}
	return Keyword{Key: key, Value: Text(val)}, nil
}
