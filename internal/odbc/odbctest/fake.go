// Package odbctest provides a scripted, in-memory odbc.API for tests.
package odbctest

import (
	"sync"
	"time"

	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/odbc"
)

// Call records one invocation made against a Fake.
type Call struct {
	Op     string
	Type   odbc.HandleType
	Handle odbc.Handle
	Attr   odbc.EnvAttr
	Value  uintptr
	Dir    odbc.FetchDirection
}

// Source is one scripted data source.
type Source struct {
	Name        string
	Description string
}

// Fake implements odbc.API. Configure the exported fields before use; they
// must not be changed while calls are in flight.
type Fake struct {
	// SetEnvAttrReturns overrides the status returned for an attribute.
	SetEnvAttrReturns map[odbc.EnvAttr]odbc.Return
	// AllocReturn is returned by AllocHandle when non-zero.
	AllocReturn odbc.Return
	// AllocDelay widens the allocation window in concurrency tests.
	AllocDelay time.Duration

	Sources []Source
	// FetchErrorAt makes the n-th DataSources call (0-based) return
	// FetchError. Negative disables it.
	FetchErrorAt int
	FetchError   odbc.Return

	// Diags is returned by Diagnostics for any handle.
	Diags []errs.Diagnostic

	mu     sync.Mutex
	calls  []Call
	allocs int
	nextH  odbc.Handle
	cursor int
	fetchN int
}

var _ odbc.API = (*Fake)(nil)

// New returns a Fake that succeeds at everything and lists no sources.
func New() *Fake {
	return &Fake{FetchErrorAt: -1, FetchError: odbc.Error, nextH: 0x1000}
}

func (f *Fake) record(c Call) {
	f.calls = append(f.calls, c)
}

func (f *Fake) SetEnvAttr(env odbc.Handle, attr odbc.EnvAttr, value uintptr) odbc.Return {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "SQLSetEnvAttr", Handle: env, Attr: attr, Value: value})
	if r, ok := f.SetEnvAttrReturns[attr]; ok {
		return r
	}
	return odbc.Success
}

func (f *Fake) AllocHandle(typ odbc.HandleType, parent odbc.Handle) (odbc.Handle, odbc.Return) {
	if f.AllocDelay > 0 {
		time.Sleep(f.AllocDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "SQLAllocHandle", Type: typ, Handle: parent})
	f.allocs++
	if f.AllocReturn != odbc.Success {
		return odbc.NullHandle, f.AllocReturn
	}
	f.nextH += 0x10
	return f.nextH, odbc.Success
}

func (f *Fake) FreeHandle(typ odbc.HandleType, h odbc.Handle) odbc.Return {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "SQLFreeHandle", Type: typ, Handle: h})
	return odbc.Success
}

func (f *Fake) DataSources(env odbc.Handle, dir odbc.FetchDirection) (string, string, odbc.Return) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "SQLDataSourcesW", Handle: env, Dir: dir})

	n := f.fetchN
	f.fetchN++
	if n == f.FetchErrorAt {
		return "", "", f.FetchError
	}

	if dir == odbc.FetchFirst {
		f.cursor = 0
	}
	if f.cursor >= len(f.Sources) {
		return "", "", odbc.NoData
	}
	s := f.Sources[f.cursor]
	f.cursor++
	return s.Name, s.Description, odbc.Success
}

func (f *Fake) Diagnostics(typ odbc.HandleType, h odbc.Handle) []errs.Diagnostic {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(Call{Op: "SQLGetDiagRecW", Type: typ, Handle: h})
	out := make([]errs.Diagnostic, len(f.Diags))
	copy(out, f.Diags)
	return out
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Ops returns the Op of each recorded call.
func (f *Fake) Ops() []string {
	calls := f.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

// Allocations counts AllocHandle calls.
func (f *Fake) Allocations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allocs
}
