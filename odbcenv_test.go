package odbcenv

import (
	"bytes"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/odbcenv/internal/config"
	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/locale"
	"github.com/koustreak/odbcenv/internal/logger"
	"github.com/koustreak/odbcenv/internal/odbc"
	"github.com/koustreak/odbcenv/internal/odbc/odbctest"
)

type countingOpener struct {
	mu    sync.Mutex
	api   odbc.API
	err   error
	paths []string
}

func (o *countingOpener) open(path string, _ *logger.Logger) (odbc.API, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paths = append(o.paths, path)
	if o.err != nil {
		return nil, o.err
	}
	return o.api, nil
}

func (o *countingOpener) opened() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.paths)
}

func newTestState(fake *odbctest.Fake) (*state, *countingOpener) {
	o := &countingOpener{api: fake}
	return newState(o.open), o
}

func TestPrepare_ArgumentErrorsSkipDriverManager(t *testing.T) {
	tests := []struct {
		name       string
		positional []any
		keywords   []Keyword
		check      func(error) bool
	}{
		{name: "nothing", check: errs.IsArgumentError},
		{name: "two positionals", positional: []any{"a", "b"}, check: errs.IsArgumentError},
		{name: "positional not a string", positional: []any{42}, check: errs.IsArgumentError},
		{
			name:     "keyword value not text",
			keywords: []Keyword{KW("uid", Int(7))},
			check:    func(err error) bool { return errs.IsKind(err, KindType) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := odbctest.New()
			s, o := newTestState(fake)

			h, req, err := s.prepare(tt.positional, tt.keywords)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			assert.Nil(t, req)
			assert.Equal(t, odbc.NullHandle, h)

			assert.Zero(t, o.opened())
			assert.Empty(t, fake.Calls())
		})
	}
}

func TestPrepare_Success(t *testing.T) {
	fake := odbctest.New()
	s, _ := newTestState(fake)

	h, req, err := s.prepare([]any{"DSN=sales"}, []Keyword{
		KW("user", Text("alice")),
		KW("password", Text("s3cret")),
		KW("autocommit", Bool(true)),
		KW("timeout", Int(15)),
	})
	require.NoError(t, err)

	assert.NotEqual(t, odbc.NullHandle, h)
	assert.Equal(t, "DSN=sales;uid=alice;pwd=s3cret", req.ConnectionString)
	assert.True(t, req.Autocommit)
	assert.Equal(t, int64(15), req.Timeout)

	_, err = uuid.Parse(req.ID)
	assert.NoError(t, err, "request id is a uuid")

	h2, req2, err := s.prepare([]any{"DSN=sales"}, nil)
	require.NoError(t, err)
	assert.Equal(t, h, h2)
	assert.NotEqual(t, req.ID, req2.ID)
	assert.Equal(t, 1, fake.Allocations())
}

func TestLoadFailureIsReturnedAndRetried(t *testing.T) {
	fake := odbctest.New()
	s, o := newTestState(fake)
	o.err = errs.New(errs.KindInterface, "driver manager not found")

	_, err := s.environment()
	require.Error(t, err)
	assert.True(t, errs.IsInterfaceError(err))

	_, err = s.dataSources()
	require.Error(t, err)

	o.err = nil
	h, err := s.environment()
	require.NoError(t, err)
	assert.NotEqual(t, odbc.NullHandle, h)
	assert.Equal(t, 3, o.opened())

	_, err = s.environment()
	require.NoError(t, err)
	assert.Equal(t, 3, o.opened(), "a loaded driver manager is kept")
}

func TestPooling_HeldUntilLoad(t *testing.T) {
	fake := odbctest.New()
	s, _ := newTestState(fake)

	assert.True(t, s.getPooling())
	require.NoError(t, s.setPooling(false))
	assert.False(t, s.getPooling())

	_, err := s.environment()
	require.NoError(t, err)
	assert.Equal(t, []string{"SQLAllocHandle", "SQLSetEnvAttr"}, fake.Ops())

	err = s.setPooling(true)
	require.Error(t, err)
	assert.True(t, errs.IsProgrammingError(err))
	assert.False(t, s.getPooling())
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		locale.Init(nil)
		logger.SetGlobal(nil)
	})

	fake := odbctest.New()
	s, o := newTestState(fake)

	cfg := config.DefaultConfig()
	cfg.Library = "/opt/odbc/libodbc.so.2"
	cfg.Pooling = false
	cfg.Locale = "de_DE.UTF-8"
	cfg.Lowercase = true
	cfg.Log.Level = "disabled"
	require.NoError(t, s.configure(cfg))

	assert.Equal(t, ',', locale.Current().DecimalPoint)
	assert.True(t, s.lowercase.Load())
	assert.False(t, s.getPooling())

	_, err := s.environment()
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/odbc/libodbc.so.2"}, o.paths)

	// same settings are accepted again
	require.NoError(t, s.configure(cfg))

	moved := *cfg
	moved.Library = "/usr/lib/libodbc.so"
	err = s.configure(&moved)
	require.Error(t, err)
	assert.True(t, errs.IsProgrammingError(err))

	pooled := *cfg
	pooled.Pooling = true
	err = s.configure(&pooled)
	require.Error(t, err)
	assert.True(t, errs.IsProgrammingError(err))
}

func TestConfigure_Invalid(t *testing.T) {
	s, _ := newTestState(odbctest.New())

	cfg := config.DefaultConfig()
	cfg.Log.Level = "loud"
	assert.True(t, errs.IsArgumentError(s.configure(cfg)))

	cfg = config.DefaultConfig()
	cfg.Locale = "POSIX"
	assert.True(t, errs.IsKind(s.configure(cfg), KindNotSupported))
}

func TestDataSources(t *testing.T) {
	fake := odbctest.New()
	fake.Sources = []odbctest.Source{{Name: "sales", Description: "PostgreSQL Unicode"}}
	s, _ := newTestState(fake)

	got, err := s.dataSources()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sales": "PostgreSQL Unicode"}, got.Map())
}

func TestClasses(t *testing.T) {
	classes := Classes()
	require.Len(t, classes, 10)
	assert.Equal(t, "Error", classes[0].Name)

	c, ok := LookupClass("ProgrammingError")
	require.True(t, ok)
	assert.Equal(t, "DatabaseError", c.Parent)
	assert.Equal(t, KindProgramming, c.Kind)

	_, ok = LookupClass("ArgumentError")
	assert.False(t, ok)
}

func TestModuleAttributes(t *testing.T) {
	assert.Equal(t, "2.0", APILevel)
	assert.Equal(t, 1, ThreadSafety)
	assert.Equal(t, "qmark", ParamStyle)

	v, ok := LookupConstant("SQL_VARCHAR")
	require.True(t, ok)
	assert.Equal(t, 12, v)
	assert.NotEmpty(t, Constants())
}

func TestBuildConnectionString(t *testing.T) {
	req, err := BuildConnectionString(nil, KW("host", Text("db1")), KW("database", Text("orders")))
	require.NoError(t, err)
	assert.Equal(t, "server=db1;database=orders", req.ConnectionString)
	assert.Empty(t, req.ID)
}

func TestLowercase(t *testing.T) {
	t.Cleanup(func() { SetLowercase(false) })
	assert.False(t, Lowercase())
	SetLowercase(true)
	assert.True(t, Lowercase())
}

type namedFake struct {
	*odbctest.Fake
}

func (namedFake) Path() string { return "/opt/odbc/libodbc.so.2" }

func TestLoad_LogsLibraryPath(t *testing.T) {
	prev := logger.Global()
	t.Cleanup(func() { logger.SetGlobal(prev) })

	buf := &bytes.Buffer{}
	logger.SetGlobal(logger.New(&logger.Config{Level: "info", Format: "json", Output: buf}))

	s := newState(func(string, *logger.Logger) (odbc.API, error) {
		return namedFake{odbctest.New()}, nil
	})
	_, err := s.environment()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/opt/odbc/libodbc.so.2")
}
