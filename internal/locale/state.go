// Package locale holds the process-wide numeric formatting characters used
// when numeric text coming back from a driver is parsed.
//
// Only single-character conventions are supported. A locale whose decimal
// point, group separator or currency symbol is longer than one character
// keeps the compiled-in default for that field.
package locale

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"github.com/koustreak/odbcenv/internal/logger"
)

const (
	DefaultDecimalPoint   = '.'
	DefaultGroupSeparator = ','
	DefaultCurrencySymbol = '$'
)

// State is the resolved set of numeric characters.
type State struct {
	DecimalPoint   rune
	GroupSeparator rune
	CurrencySymbol rune
}

// Default returns the compiled-in State.
func Default() State {
	return State{
		DecimalPoint:   DefaultDecimalPoint,
		GroupSeparator: DefaultGroupSeparator,
		CurrencySymbol: DefaultCurrencySymbol,
	}
}

func (s State) String() string {
	return fmt.Sprintf("decimal=%q group=%q currency=%q", s.DecimalPoint, s.GroupSeparator, s.CurrencySymbol)
}

// Conventions is what a Source reports. Any field may be empty.
type Conventions struct {
	DecimalPoint   string
	ThousandsSep   string
	CurrencySymbol string
}

// Source queries the host for its numeric conventions.
type Source interface {
	Conventions() (Conventions, error)
}

var current atomic.Pointer[State]

func init() {
	s := Default()
	current.Store(&s)
}

// Current returns the process-wide State. It is safe for concurrent use.
func Current() State {
	return *current.Load()
}

// Init queries src, resolves a State, stores it process-wide and returns it.
// It never fails: a nil source, a source error or a source panic leaves the
// defaults in place.
func Init(src Source) State {
	s := resolveFrom(src)
	current.Store(&s)
	return s
}

func resolveFrom(src Source) (s State) {
	s = Default()
	if src == nil {
		return s
	}

	log := logger.Global().Component("locale")
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("locale source panicked, keeping defaults: %v", r)
			s = Default()
		}
	}()

	conv, err := src.Conventions()
	if err != nil {
		log.With().Err(err).Logger().Debug("locale unavailable, keeping defaults")
		return s
	}
	return Resolve(conv)
}

// Resolve turns reported conventions into a State.
//
// A field is taken only when it is exactly one character long. An empty or
// NUL group separator is treated as a malformed report and replaced with
// whichever of ',' and '.' the decimal point is not. The same rule applies
// when the group separator would equal the decimal point. The currency
// symbol has no such fallback.
func Resolve(c Conventions) State {
	s := Default()

	if r, ok := single(c.DecimalPoint); ok {
		s.DecimalPoint = r
	}

	switch {
	case c.ThousandsSep == "" || c.ThousandsSep == "\x00":
		s.GroupSeparator = opposite(s.DecimalPoint)
	default:
		if r, ok := single(c.ThousandsSep); ok {
			s.GroupSeparator = r
		}
		if s.GroupSeparator == s.DecimalPoint {
			s.GroupSeparator = opposite(s.DecimalPoint)
		}
	}

	if r, ok := single(c.CurrencySymbol); ok {
		s.CurrencySymbol = r
	}
	return s
}

func opposite(decimal rune) rune {
	if decimal == ',' {
		return '.'
	}
	return ','
}

func single(v string) (rune, bool) {
	if utf8.RuneCountInString(v) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError || r == 0 {
		return 0, false
	}
	return r, true
}
