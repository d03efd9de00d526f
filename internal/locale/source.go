package locale

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/koustreak/odbcenv/internal/errs"
)

// probe has two group boundaries and one fraction digit so every separator
// the locale uses shows up in its formatted form.
const probe = 1234567.5

// CLDRSource reports the conventions CLDR defines for a language tag.
type CLDRSource struct {
	Tag language.Tag
}

// NewCLDRSource returns a Source for tag.
func NewCLDRSource(tag language.Tag) CLDRSource {
	return CLDRSource{Tag: tag}
}

func (s CLDRSource) Conventions() (Conventions, error) {
	p := message.NewPrinter(s.Tag)

	formatted := p.Sprint(number.Decimal(probe, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	seps := separators(formatted)
	if len(seps) == 0 {
		return Conventions{}, errs.Newf(errs.KindNotSupported, "locale %s: no separators in %q", s.Tag, formatted)
	}

	var c Conventions
	c.DecimalPoint = seps[len(seps)-1]
	if len(seps) > 1 {
		c.ThousandsSep = seps[0]
	}

	if unit, conf := currency.FromTag(s.Tag); conf != language.No {
		c.CurrencySymbol = strings.TrimSpace(p.Sprint(currency.Symbol(unit)))
	}
	return c, nil
}

// separators returns the runs of non-digit runes found between digits.
func separators(s string) []string {
	var (
		out     []string
		run     strings.Builder
		seenDig bool
	)
	for _, r := range s {
		if unicode.IsDigit(r) {
			if seenDig && run.Len() > 0 {
				out = append(out, run.String())
			}
			run.Reset()
			seenDig = true
			continue
		}
		if seenDig {
			run.WriteRune(r)
		}
	}
	return out
}

// EnvSource resolves the host locale from the POSIX environment variables
// and reports its CLDR conventions.
type EnvSource struct {
	Getenv func(string) string
}

// NewEnvSource returns an EnvSource reading the process environment.
func NewEnvSource() EnvSource {
	return EnvSource{Getenv: os.Getenv}
}

func (s EnvSource) Conventions() (Conventions, error) {
	tag, err := s.Tag()
	if err != nil {
		return Conventions{}, err
	}
	return NewCLDRSource(tag).Conventions()
}

// Tag returns the language tag named by LC_ALL, LC_NUMERIC or LANG, in that
// order of precedence. The C and POSIX locales have no tag.
func (s EnvSource) Tag() (language.Tag, error) {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	var name string
	for _, key := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		if v := getenv(key); v != "" {
			name = v
			break
		}
	}
	return ParseTag(name)
}

// ParseTag accepts either a BCP 47 tag ("de-DE") or a POSIX locale name
// ("de_DE.UTF-8", "sr_RS@latin").
func ParseTag(name string) (language.Tag, error) {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "", "C", "POSIX":
		return language.Und, errs.New(errs.KindNotSupported, "no host locale configured")
	}

	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und, errs.Wrap(errs.KindArgument, "parsing locale "+name, err)
	}
	return tag, nil
}
