package odbcenv

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/koustreak/odbcenv/internal/config"
	"github.com/koustreak/odbcenv/internal/connstr"
	"github.com/koustreak/odbcenv/internal/datasource"
	"github.com/koustreak/odbcenv/internal/env"
	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/locale"
	"github.com/koustreak/odbcenv/internal/logger"
	"github.com/koustreak/odbcenv/internal/odbc"
)

// Module-level attributes.
const (
	Version      = "0.1.0"
	APILevel     = "2.0"
	ThreadSafety = 1
	ParamStyle   = "qmark"
)

type (
	Config      = config.Config
	Handle      = odbc.Handle
	Request     = connstr.Request
	Keyword     = connstr.Keyword
	Value       = connstr.Value
	Error       = errs.Error
	Kind        = errs.Kind
	Diagnostic  = errs.Diagnostic
	Class       = errs.Class
	Sources     = datasource.Sources
	LocaleState = locale.State
	Constant    = odbc.Constant
	FatalError  = env.FatalError
)

const (
	KindWarning      = errs.KindWarning
	KindError        = errs.KindError
	KindInterface    = errs.KindInterface
	KindDatabase     = errs.KindDatabase
	KindData         = errs.KindData
	KindOperational  = errs.KindOperational
	KindIntegrity    = errs.KindIntegrity
	KindInternal     = errs.KindInternal
	KindProgramming  = errs.KindProgramming
	KindNotSupported = errs.KindNotSupported
	KindArgument     = errs.KindArgument
	KindType         = errs.KindType
)

var (
	Text = connstr.Text
	Bool = connstr.Bool
	Int  = connstr.Int

	DefaultConfig = config.DefaultConfig
	LoadConfig    = config.Load

	IsDatabaseError    = errs.IsDatabaseError
	IsInterfaceError   = errs.IsInterfaceError
	IsOperationalError = errs.IsOperationalError
	IsProgrammingError = errs.IsProgrammingError
	IsArgumentError    = errs.IsArgumentError
	KindOf             = errs.KindOf

	ParseDecimal = locale.ParseDecimal
)

// KW builds a keyword argument.
func KW(key string, v Value) Keyword {
	return Keyword{Key: key, Value: v}
}

type opener func(path string, log *logger.Logger) (odbc.API, error)

func openLibrary(path string, log *logger.Logger) (odbc.API, error) {
	return odbc.Open(path, log)
}

// state is everything the package shares across goroutines. The driver
// manager is loaded on first use; until then the pooling policy is held
// here and handed to the environment manager when it is created.
type state struct {
	open opener

	mu      sync.Mutex
	path    string
	pooling bool
	env     *env.Manager
	enum    *datasource.Enumerator

	registry  *errs.Registry
	classes   []*errs.Class
	lowercase atomic.Bool
}

func newState(open opener) *state {
	reg := errs.NewRegistry()
	classes, err := errs.Register(reg)
	if err != nil {
		// the fixed taxonomy is consistent; failing here is a build defect
		panic(err)
	}
	return &state{
		open:     open,
		pooling:  true,
		registry: reg,
		classes:  classes,
	}
}

var std = newState(openLibrary)

func init() {
	locale.Init(locale.NewEnvSource())
}

// load returns the environment manager, loading the driver manager first if
// needed. A load failure is returned and retried on the next call.
func (s *state) load() (*env.Manager, *datasource.Enumerator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env != nil {
		return s.env, s.enum, nil
	}

	log := logger.Global()
	api, err := s.open(s.path, log)
	if err != nil {
		log.Component("odbcenv").With().Err(err).Logger().Warn("driver manager unavailable")
		return nil, nil, err
	}

	if lib, ok := api.(interface{ Path() string }); ok {
		log.Component("odbcenv").With().Str("library", lib.Path()).Logger().Info("using driver manager")
	}

	m := env.NewManager(api, log)
	if err := m.SetPooling(s.pooling); err != nil {
		return nil, nil, err
	}
	s.env = m
	s.enum = datasource.NewEnumerator(m, api, log)
	return s.env, s.enum, nil
}

func (s *state) configure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var src locale.Source
	if cfg.Locale != "" {
		tag, err := locale.ParseTag(cfg.Locale)
		if err != nil {
			return err
		}
		src = locale.NewCLDRSource(tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env != nil {
		if cfg.Library != s.path {
			return errs.Newf(errs.KindProgramming,
				"driver manager %q is already loaded", s.path)
		}
		if cfg.Pooling != s.env.Pooling() {
			if err := s.env.SetPooling(cfg.Pooling); err != nil {
				return err
			}
		}
	} else {
		s.path = cfg.Library
		s.pooling = cfg.Pooling
	}

	logger.SetGlobal(cfg.NewLogger(nil))
	if src != nil {
		locale.Init(src)
	}
	s.lowercase.Store(cfg.Lowercase)
	return nil
}

func (s *state) setPooling(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env != nil {
		return s.env.SetPooling(enabled)
	}
	s.pooling = enabled
	return nil
}

func (s *state) getPooling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env != nil {
		return s.env.Pooling()
	}
	return s.pooling
}

func (s *state) environment() (Handle, error) {
	m, _, err := s.load()
	if err != nil {
		return odbc.NullHandle, err
	}
	return m.Ensure(), nil
}

func (s *state) prepare(positional []any, keywords []Keyword) (Handle, *Request, error) {
	req, err := connstr.Build(positional, keywords)
	if err != nil {
		return odbc.NullHandle, nil, err
	}

	h, err := s.environment()
	if err != nil {
		return odbc.NullHandle, nil, err
	}

	req.ID = uuid.NewString()
	logger.Global().Component("connect").With().
		Str("request_id", req.ID).
		ConnStr("connection_string", req.ConnectionString).
		Bool("autocommit", req.Autocommit).
		Int("timeout", int(req.Timeout)).
		Logger().
		Debug("connection request prepared")
	return h, req, nil
}

func (s *state) dataSources() (*Sources, error) {
	_, enum, err := s.load()
	if err != nil {
		return nil, err
	}
	return enum.List()
}

// Configure applies cfg to the process. Library and pooling changes are
// rejected once the environment handle exists. Locale, logging and the
// lowercase flag always apply.
func Configure(cfg *Config) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return std.configure(cfg)
}

// SetPooling sets the driver-manager pooling policy. It must be called
// before the first connection or data source listing; afterwards it returns
// a ProgrammingError.
func SetPooling(enabled bool) error {
	return std.setPooling(enabled)
}

// Pooling returns the pooling policy.
func Pooling() bool {
	return std.getPooling()
}

// Environment returns the shared environment handle, loading the driver
// manager and allocating the handle on first use. A driver manager that
// cannot be loaded is returned as an InterfaceError. A driver manager that
// refuses to create the environment panics with *FatalError.
func Environment() (Handle, error) {
	return std.environment()
}

// Prepare builds the connection request for a connect call and ensures the
// environment exists. Argument errors are returned before the driver
// manager is touched.
func Prepare(positional []any, keywords ...Keyword) (Handle, *Request, error) {
	return std.prepare(positional, keywords)
}

// BuildConnectionString merges positional and keyword arguments without
// touching the driver manager.
func BuildConnectionString(positional []any, keywords ...Keyword) (*Request, error) {
	return connstr.Build(positional, keywords)
}

// DataSources lists the data sources known to the driver manager.
func DataSources() (*Sources, error) {
	return std.dataSources()
}

// Locale returns the numeric characters resolved for this process.
func Locale() LocaleState {
	return locale.Current()
}

// LookupClass returns the registered error class called name.
func LookupClass(name string) (*Class, bool) {
	return std.registry.Lookup(name)
}

// Classes returns the registered error classes, parents before children.
func Classes() []*Class {
	out := make([]*Class, len(std.classes))
	copy(out, std.classes)
	return out
}

// Constants returns the exported ODBC constants.
func Constants() []Constant {
	return odbc.Constants()
}

// LookupConstant returns the value of the ODBC constant called name.
func LookupConstant(name string) (int, bool) {
	return odbc.LookupConstant(name)
}

// Lowercase reports whether column names should be lowercased.
func Lowercase() bool {
	return std.lowercase.Load()
}

// SetLowercase sets the flag read by Lowercase.
func SetLowercase(v bool) {
	std.lowercase.Store(v)
}
