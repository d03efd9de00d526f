// Package datasource lists the data sources configured in the driver manager.
package datasource

import (
	"github.com/koustreak/odbcenv/internal/env"
	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/logger"
	"github.com/koustreak/odbcenv/internal/odbc"
)

// Sources maps data source names to descriptions, in driver-manager order.
type Sources struct {
	names []string
	desc  map[string]string
}

func newSources() *Sources {
	return &Sources{desc: make(map[string]string)}
}

// set records name. A repeated name keeps its first position and takes the
// latest description.
func (s *Sources) set(name, description string) {
	if _, ok := s.desc[name]; !ok {
		s.names = append(s.names, name)
	}
	s.desc[name] = description
}

// Names returns the data source names in order.
func (s *Sources) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get returns the description of name.
func (s *Sources) Get(name string) (string, bool) {
	d, ok := s.desc[name]
	return d, ok
}

func (s *Sources) Len() int {
	return len(s.names)
}

// Map returns a copy of the name to description mapping.
func (s *Sources) Map() map[string]string {
	out := make(map[string]string, len(s.desc))
	for k, v := range s.desc {
		out[k] = v
	}
	return out
}

// Enumerator walks SQLDataSources.
type Enumerator struct {
	env *env.Manager
	api odbc.API
	log *logger.Logger
}

func NewEnumerator(m *env.Manager, api odbc.API, log *logger.Logger) *Enumerator {
	if log == nil {
		log = logger.Global()
	}
	return &Enumerator{env: m, api: api, log: log.Component("datasource")}
}

// List ensures the environment exists and fetches every data source,
// starting from the first. A status other than success or SQL_NO_DATA is
// returned as a DatabaseError-family error carrying the driver diagnostic.
// Environment creation failures panic; see env.Manager.Ensure.
func (e *Enumerator) List() (*Sources, error) {
	h := e.env.Ensure()
	out := newSources()

	dir := odbc.FetchFirst
	for {
		name, desc, r := e.api.DataSources(h, dir)
		if r.IsNoData() {
			break
		}
		if !r.Succeeded() {
			return nil, e.fail(h, r)
		}
		out.set(name, desc)
		dir = odbc.FetchNext
	}

	e.log.With().Int("count", out.Len()).Logger().Debug("data sources listed")
	return out, nil
}

func (e *Enumerator) fail(h odbc.Handle, r odbc.Return) error {
	d := odbc.FirstDiagnostic(e.api, odbc.HandleEnv, h, "SQLDataSources returned "+r.String())

	kind := errs.ClassifySQLState(d.SQLState)
	if !kind.IsA(errs.KindDatabase) {
		kind = errs.KindDatabase
	}
	return errs.FromDiagnostic(kind, "SQLDataSources", d)
}
