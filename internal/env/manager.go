// Package env owns the driver-manager environment handle.
//
// A Manager allocates at most one environment handle over its lifetime. The
// pooling policy is applied to the driver manager before that allocation and
// cannot change afterwards. Failures while creating the environment are not
// returned as errors: the driver manager is unusable at that point, so
// Ensure panics with a *FatalError.
package env

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/logger"
	"github.com/koustreak/odbcenv/internal/odbc"
)

// FatalError is the panic value raised when the environment cannot be
// created or configured.
type FatalError struct {
	Op   string
	Diag errs.Diagnostic
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("odbc environment unusable: %s failed: %s", e.Op, e.Diag)
}

// Manager lazily creates the environment handle.
type Manager struct {
	api odbc.API
	log *logger.Logger

	mu      sync.Mutex
	pooling bool
	handle  atomic.Uintptr // non-zero once allocated
	broken  *FatalError
}

// NewManager returns a Manager with pooling enabled.
func NewManager(api odbc.API, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Global()
	}
	return &Manager{
		api:     api,
		log:     log.Component("env"),
		pooling: true,
	}
}

// SetPooling sets the pooling policy. It fails with KindProgramming once the
// environment exists, since the driver manager only reads the policy at
// allocation time.
func (m *Manager) SetPooling(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle.Load() != 0 || m.broken != nil {
		return errs.New(errs.KindProgramming,
			"pooling must be configured before the first connection or data source listing")
	}
	m.pooling = enabled
	return nil
}

// Pooling returns the current pooling policy.
func (m *Manager) Pooling() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pooling
}

// Allocated reports whether the environment handle exists.
func (m *Manager) Allocated() bool {
	return m.handle.Load() != 0
}

// Ensure returns the environment handle, allocating it on first use.
// Concurrent first calls allocate once and all observe the same handle.
// It panics with *FatalError if the driver manager rejects the pooling
// attribute, the allocation or the ODBC version attribute; every later call
// panics with the same value without touching the driver manager.
func (m *Manager) Ensure() odbc.Handle {
	if h := m.handle.Load(); h != 0 {
		return odbc.Handle(h)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if h := m.handle.Load(); h != 0 {
		return odbc.Handle(h)
	}
	if m.broken != nil {
		panic(m.broken)
	}

	h, fatal := m.allocate(m.pooling)
	if fatal != nil {
		m.broken = fatal
		m.log.With().
			Str("op", fatal.Op).
			Str("sqlstate", fatal.Diag.SQLState).
			Logger().
			Error(fatal.Error())
		panic(fatal)
	}

	m.handle.Store(uintptr(h))
	m.log.With().Bool("pooling", m.pooling).Logger().Debug("environment allocated")
	return h
}

func (m *Manager) allocate(pooling bool) (odbc.Handle, *FatalError) {
	if pooling {
		r := m.api.SetEnvAttr(odbc.NullHandle, odbc.AttrConnectionPooling, odbc.CPOnePerHEnv)
		if !r.Succeeded() {
			return odbc.NullHandle, m.fatal("SQLSetEnvAttr(SQL_ATTR_CONNECTION_POOLING)", odbc.HandleEnv, odbc.NullHandle, r)
		}
		m.log.Debug("connection pooling enabled")
	}

	h, r := m.api.AllocHandle(odbc.HandleEnv, odbc.NullHandle)
	if !r.Succeeded() || h == odbc.NullHandle {
		return odbc.NullHandle, m.fatal("SQLAllocHandle(SQL_HANDLE_ENV)", odbc.HandleEnv, odbc.NullHandle, r)
	}

	if r := m.api.SetEnvAttr(h, odbc.AttrODBCVersion, odbc.OVODBC3); !r.Succeeded() {
		fatal := m.fatal("SQLSetEnvAttr(SQL_ATTR_ODBC_VERSION)", odbc.HandleEnv, h, r)
		m.api.FreeHandle(odbc.HandleEnv, h)
		return odbc.NullHandle, fatal
	}
	return h, nil
}

func (m *Manager) fatal(op string, typ odbc.HandleType, h odbc.Handle, r odbc.Return) *FatalError {
	fallback := fmt.Sprintf("%s returned %s", op, r)
	return &FatalError{Op: op, Diag: odbc.FirstDiagnostic(m.api, typ, h, fallback)}
}
