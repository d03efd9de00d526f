package locale

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/koustreak/odbcenv/internal/errs"
)

type fakeSource struct {
	conv  Conventions
	err   error
	panic bool
}

func (f fakeSource) Conventions() (Conventions, error) {
	if f.panic {
		panic("locale subsystem missing")
	}
	return f.conv, f.err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		conv Conventions
		want State
	}{
		{
			name: "comma decimal with empty group picks dot",
			conv: Conventions{DecimalPoint: ",", ThousandsSep: ""},
			want: State{',', '.', '$'},
		},
		{
			name: "dot decimal with empty group picks comma",
			conv: Conventions{DecimalPoint: ".", ThousandsSep: ""},
			want: State{'.', ',', '$'},
		},
		{
			name: "NUL group separator is treated as empty",
			conv: Conventions{DecimalPoint: ",", ThousandsSep: "\x00"},
			want: State{',', '.', '$'},
		},
		{
			name: "single characters are taken",
			conv: Conventions{DecimalPoint: ",", ThousandsSep: "'", CurrencySymbol: "€"},
			want: State{',', '\'', '€'},
		},
		{
			name: "multi-character values keep defaults",
			conv: Conventions{DecimalPoint: "..", ThousandsSep: "::", CurrencySymbol: "CHF"},
			want: State{'.', ',', '$'},
		},
		{
			name: "empty currency has no fallback",
			conv: Conventions{DecimalPoint: ",", ThousandsSep: ".", CurrencySymbol: ""},
			want: State{',', '.', '$'},
		},
		{
			name: "group equal to decimal takes the other character",
			conv: Conventions{DecimalPoint: ",", ThousandsSep: ","},
			want: State{',', '.', '$'},
		},
		{
			name: "dot reported for both",
			conv: Conventions{DecimalPoint: ".", ThousandsSep: "."},
			want: State{'.', ',', '$'},
		},
		{
			name: "default group colliding with comma decimal",
			conv: Conventions{DecimalPoint: ",", ThousandsSep: "::"},
			want: State{',', '.', '$'},
		},
		{
			name: "narrow no-break space group separator",
			conv: Conventions{DecimalPoint: ",", ThousandsSep: "\u202f", CurrencySymbol: "€"},
			want: State{',', '\u202f', '€'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.conv))
		})
	}
}

func TestInit_NeverFails(t *testing.T) {
	t.Cleanup(func() { Init(nil) })

	got := Init(fakeSource{conv: Conventions{DecimalPoint: ",", ThousandsSep: "."}})
	assert.Equal(t, ',', got.DecimalPoint)
	assert.Equal(t, got, Current())

	assert.Equal(t, Default(), Init(fakeSource{err: errors.New("no locale module")}))
	assert.Equal(t, Default(), Current())

	assert.NotPanics(t, func() {
		assert.Equal(t, Default(), Init(fakeSource{panic: true}))
	})
	assert.Equal(t, Default(), Init(nil))
}

func TestCLDRSource(t *testing.T) {
	tests := []struct {
		tag      string
		decimal  rune
		group    rune
		currency rune
	}{
		{"en-US", '.', ',', '$'},
		{"de-DE", ',', '.', '€'},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			conv, err := NewCLDRSource(language.MustParse(tt.tag)).Conventions()
			require.NoError(t, err)

			s := Resolve(conv)
			assert.Equal(t, tt.decimal, s.DecimalPoint)
			assert.Equal(t, tt.group, s.GroupSeparator)
			assert.Equal(t, tt.currency, s.CurrencySymbol)
		})
	}
}

func TestSeparators(t *testing.T) {
	assert.Equal(t, []string{",", ",", "."}, separators("1,234,567.5"))
	assert.Equal(t, []string{"."}, separators("-1234.5"))
	assert.Empty(t, separators("12345"))
}

func TestParseTag(t *testing.T) {
	tag, err := ParseTag("de_DE.UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "de-DE", tag.String())

	tag, err = ParseTag("sr_RS@latin")
	require.NoError(t, err)
	assert.Equal(t, "sr-RS", tag.String())

	for _, name := range []string{"", "C", "POSIX", "C.UTF-8"} {
		_, err := ParseTag(name)
		assert.Error(t, err, name)
	}

	_, err = ParseTag("not a locale!")
	assert.True(t, errs.IsArgumentError(err))
}

func TestEnvSource_Precedence(t *testing.T) {
	env := map[string]string{
		"LC_NUMERIC": "fr_FR.UTF-8",
		"LANG":       "en_US.UTF-8",
	}
	src := EnvSource{Getenv: func(k string) string { return env[k] }}

	tag, err := src.Tag()
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", tag.String())

	env["LC_ALL"] = "C"
	_, err = src.Conventions()
	assert.Error(t, err, "LC_ALL=C wins and names no locale")
}

func TestState_ParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		state State
		text  string
		want  string
	}{
		{"defaults", Default(), "1,234.50", "1234.5"},
		{"currency and spaces", Default(), " $ 1,000,000.25 ", "1000000.25"},
		{"negative", Default(), "-0.125", "-0.125"},
		{"comma decimal", State{',', '.', '€'}, "1.234,50 €", "1234.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.state.ParseDecimal(tt.text)
			require.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	_, err := Default().ParseDecimal("12abc")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindData))
}
