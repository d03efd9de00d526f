package connstr

import (
	"fmt"
	"strings"
	"time"

	"github.com/koustreak/odbcenv/internal/errs"
)

// Control keywords are consumed by Build and never reach the driver.
const (
	KeyAutocommit = "autocommit"
	KeyTimeout    = "timeout"
)

// Request is the result of Build.
type Request struct {
	ConnectionString string
	Autocommit       bool
	Timeout          int64 // login timeout in seconds, 0 for the driver default

	// ID correlates log lines for one connection attempt. Build leaves it
	// empty.
	ID string
}

// LoginTimeout returns Timeout as a duration.
func (r *Request) LoginTimeout() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

// Redacted returns the connection string with password values masked.
func (r *Request) Redacted() string {
	return Redact(r.ConnectionString)
}

func (r *Request) String() string {
	return fmt.Sprintf("%s (autocommit=%t timeout=%d)", r.Redacted(), r.Autocommit, r.Timeout)
}

// Build merges an optional base connection string with keyword arguments.
//
// positional holds at most one element, which must be a string and is used
// verbatim as the start of the result. Keywords are applied in order:
// autocommit and timeout are extracted into the Request, friendly names are
// remapped (see Lookup), and everything else is appended as key=value with
// a ';' separator when the string is already non-empty. Values are not
// quoted or escaped.
func Build(positional []any, keywords []Keyword) (*Request, error) {
	if len(positional) > 1 {
		return nil, errs.Newf(errs.KindArgument,
			"at most one positional argument is accepted, got %d", len(positional))
	}

	var (
		req Request
		b   strings.Builder
	)

	if len(positional) == 1 {
		s, ok := positional[0].(string)
		if !ok {
			return nil, errs.Newf(errs.KindArgument,
				"positional argument must be a string, got %T", positional[0])
		}
		b.WriteString(s)
	}

	for _, kw := range keywords {
		switch kw.Key {
		case KeyAutocommit:
			req.Autocommit = kw.Value.Truthy()
			continue
		case KeyTimeout:
			n, err := kw.Value.Integer()
			if err != nil {
				return nil, err
			}
			req.Timeout = n
			continue
		}

		if kw.Value.Kind() != TextValue {
			return nil, errs.Newf(errs.KindType, "the value for keyword %q is not a string", kw.Key)
		}

		key := kw.Key
		if native, ok := Lookup(key); ok {
			key = native
		}

		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(kw.Value.text)
	}

	if b.Len() == 0 {
		return nil, errs.New(errs.KindArgument, "no connection information was passed")
	}

	req.ConnectionString = b.String()
	return &req, nil
}

// Redact masks the values of pwd and password attributes in a connection
// string. A value starting with '{' runs to the matching '}', with "}}"
// standing for a literal '}', and is masked as a whole.
func Redact(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		end := attributeEnd(s, i)
		attr := s[i:end]
		if key, _, ok := strings.Cut(attr, "="); ok && isSecret(key) {
			out.WriteString(key)
			out.WriteString("=***")
		} else {
			out.WriteString(attr)
		}
		if end < len(s) {
			out.WriteByte(';')
		}
		i = end + 1
	}
	return out.String()
}

// attributeEnd returns the index of the ';' ending the attribute starting at
// i, or len(s). Only a value that starts with '{' is braced; inside it "}}"
// is an escaped '}' and the first single '}' closes the value.
func attributeEnd(s string, i int) int {
	eq := strings.IndexAny(s[i:], "=;")
	if eq < 0 {
		return len(s)
	}
	j := i + eq
	if s[j] == ';' {
		return j
	}

	j++
	if j < len(s) && s[j] == '{' {
		for j++; j < len(s); j++ {
			if s[j] != '}' {
				continue
			}
			if j+1 < len(s) && s[j+1] == '}' {
				j++
				continue
			}
			break
		}
	}

	if k := strings.IndexByte(s[min(j, len(s)):], ';'); k >= 0 {
		return j + k
	}
	return len(s)
}

func isSecret(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "pwd", "password":
		return true
	}
	return false
}
