package env

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/logger"
	"github.com/koustreak/odbcenv/internal/odbc"
	"github.com/koustreak/odbcenv/internal/odbc/odbctest"
)

func TestEnsure_PoolingAppliedBeforeAllocation(t *testing.T) {
	fake := odbctest.New()
	m := NewManager(fake, logger.Nop())

	h := m.Ensure()
	require.NotEqual(t, odbc.NullHandle, h)

	calls := fake.Calls()
	require.Len(t, calls, 3)

	assert.Equal(t, "SQLSetEnvAttr", calls[0].Op)
	assert.Equal(t, odbc.NullHandle, calls[0].Handle)
	assert.Equal(t, odbc.AttrConnectionPooling, calls[0].Attr)
	assert.Equal(t, uintptr(odbc.CPOnePerHEnv), calls[0].Value)

	assert.Equal(t, "SQLAllocHandle", calls[1].Op)
	assert.Equal(t, odbc.HandleEnv, calls[1].Type)

	assert.Equal(t, "SQLSetEnvAttr", calls[2].Op)
	assert.Equal(t, h, calls[2].Handle)
	assert.Equal(t, odbc.AttrODBCVersion, calls[2].Attr)
	assert.Equal(t, uintptr(odbc.OVODBC3), calls[2].Value)
}

func TestEnsure_WithoutPooling(t *testing.T) {
	fake := odbctest.New()
	m := NewManager(fake, logger.Nop())
	require.NoError(t, m.SetPooling(false))
	assert.False(t, m.Pooling())

	m.Ensure()
	assert.Equal(t, []string{"SQLAllocHandle", "SQLSetEnvAttr"}, fake.Ops())
}

func TestEnsure_ReturnsSameHandle(t *testing.T) {
	fake := odbctest.New()
	m := NewManager(fake, logger.Nop())
	assert.False(t, m.Allocated())

	first := m.Ensure()
	second := m.Ensure()

	assert.Equal(t, first, second)
	assert.True(t, m.Allocated())
	assert.Equal(t, 1, fake.Allocations())
	assert.Len(t, fake.Calls(), 3, "the second call must not reach the driver manager")
}

func TestEnsure_ConcurrentColdStart(t *testing.T) {
	const n = 32

	fake := odbctest.New()
	fake.AllocDelay = 5 * time.Millisecond
	m := NewManager(fake, logger.Nop())

	var (
		g       errgroup.Group
		mu      sync.Mutex
		handles = make(map[odbc.Handle]int)
		start   = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			<-start
			h := m.Ensure()
			mu.Lock()
			handles[h]++
			mu.Unlock()
			return nil
		})
	}
	close(start)
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, fake.Allocations())
	require.Len(t, handles, 1)
	for h, count := range handles {
		assert.NotEqual(t, odbc.NullHandle, h)
		assert.Equal(t, n, count)
	}
}

func TestSetPooling_RejectedAfterAllocation(t *testing.T) {
	m := NewManager(odbctest.New(), logger.Nop())
	require.NoError(t, m.SetPooling(false))
	require.NoError(t, m.SetPooling(true))

	m.Ensure()

	err := m.SetPooling(false)
	require.Error(t, err)
	assert.True(t, errs.IsProgrammingError(err))
	assert.True(t, m.Pooling(), "policy is unchanged")
}

func TestEnsure_FatalFailures(t *testing.T) {
	tests := []struct {
		name   string
		script func(f *odbctest.Fake)
		op     string
	}{
		{
			name: "pooling attribute rejected",
			script: func(f *odbctest.Fake) {
				f.SetEnvAttrReturns = map[odbc.EnvAttr]odbc.Return{odbc.AttrConnectionPooling: odbc.Error}
			},
			op: "SQLSetEnvAttr(SQL_ATTR_CONNECTION_POOLING)",
		},
		{
			name:   "allocation fails",
			script: func(f *odbctest.Fake) { f.AllocReturn = odbc.Error },
			op:     "SQLAllocHandle(SQL_HANDLE_ENV)",
		},
		{
			name: "version attribute rejected",
			script: func(f *odbctest.Fake) {
				f.SetEnvAttrReturns = map[odbc.EnvAttr]odbc.Return{odbc.AttrODBCVersion: odbc.Error}
				f.Diags = []errs.Diagnostic{{SQLState: "HY024", Message: "invalid attribute value"}}
			},
			op: "SQLSetEnvAttr(SQL_ATTR_ODBC_VERSION)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := odbctest.New()
			tt.script(fake)
			m := NewManager(fake, logger.Nop())

			fatal := capturePanic(t, m)
			assert.Equal(t, tt.op, fatal.Op)
			assert.NotEmpty(t, fatal.Diag.Message)
			assert.Contains(t, fatal.Error(), tt.op)
			assert.False(t, m.Allocated())

			before := len(fake.Calls())
			again := capturePanic(t, m)
			assert.Same(t, fatal, again, "a broken manager keeps failing the same way")
			assert.Len(t, fake.Calls(), before, "a broken manager makes no native calls")

			assert.Error(t, m.SetPooling(false))
		})
	}
}

func TestEnsure_FatalCarriesDriverDiagnostic(t *testing.T) {
	fake := odbctest.New()
	fake.AllocReturn = odbc.Error
	fake.Diags = []errs.Diagnostic{{SQLState: "HY001", NativeCode: 12, Message: "memory allocation error"}}

	fatal := capturePanic(t, NewManager(fake, logger.Nop()))
	assert.Equal(t, "HY001", fatal.Diag.SQLState)
	assert.Equal(t, int32(12), fatal.Diag.NativeCode)
	assert.Contains(t, fatal.Error(), "memory allocation error")
}

func capturePanic(t *testing.T, m *Manager) (fatal *FatalError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "Ensure must panic")
		var ok bool
		fatal, ok = r.(*FatalError)
		require.True(t, ok, "panic value is %T", r)
	}()
	m.Ensure()
	return nil
}
