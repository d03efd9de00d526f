package errs

import (
	"fmt"
	"sort"
	"sync"
)

// Class describes one registered node of the taxonomy.
type Class struct {
	Kind   Kind
	Name   string
	Parent string // empty for roots
	Doc    string
}

// classes is ordered parents before children.
var classes = [...]Class{
	{KindError, "Error", "",
		"Base class of all other error exceptions. Catch this to handle every error with one check."},
	{KindWarning, "Warning", "",
		"Raised for important warnings like data truncations while inserting, etc."},
	{KindInterface, "InterfaceError", "Error",
		"Raised for errors that are related to the database interface rather than the database itself."},
	{KindDatabase, "DatabaseError", "Error",
		"Raised for errors that are related to the database."},
	{KindData, "DataError", "DatabaseError",
		"Raised for errors that are due to problems with the processed data like division by zero, " +
			"numeric value out of range, etc."},
	{KindOperational, "OperationalError", "DatabaseError",
		"Raised for errors that are related to the database's operation and not necessarily under the " +
			"control of the programmer, e.g. an unexpected disconnect occurs, the data source name is not " +
			"found, a transaction could not be processed, a memory allocation error occurred during processing."},
	{KindIntegrity, "IntegrityError", "DatabaseError",
		"Raised when the relational integrity of the database is affected, e.g. a foreign key check fails."},
	{KindInternal, "InternalError", "DatabaseError",
		"Raised when the database encounters an internal error, e.g. the cursor is not valid anymore, " +
			"the transaction is out of sync."},
	{KindProgramming, "ProgrammingError", "DatabaseError",
		"Raised for programming errors, e.g. table not found or already exists, syntax error in the SQL " +
			"statement, wrong number of parameters specified."},
	{KindNotSupported, "NotSupportedError", "DatabaseError",
		"Raised in case a method or database API was used which is not supported by the database, e.g. " +
			"requesting a rollback on a connection that does not support transactions."},
}

// Classes returns the fixed class definitions, parents before children.
func Classes() []Class {
	out := make([]Class, len(classes))
	copy(out, classes[:])
	return out
}

// Doc returns the documentation text of the class for k.
func (k Kind) Doc() string {
	for _, c := range classes {
		if c.Kind == k {
			return c.Doc
		}
	}
	return ""
}

// Namespace receives class definitions during Register.
type Namespace interface {
	Define(c *Class) error
	Undefine(name string)
}

// Register defines every class in ns, parents first. If any definition fails,
// the classes already defined are removed again and the failure is returned.
// The returned slice holds the registered classes indexed like Classes().
func Register(ns Namespace) ([]*Class, error) {
	defined := make([]*Class, 0, len(classes))
	for i := range classes {
		c := classes[i]
		if err := ns.Define(&c); err != nil {
			for j := len(defined) - 1; j >= 0; j-- {
				ns.Undefine(defined[j].Name)
			}
			return nil, Wrap(KindInternal, fmt.Sprintf("registering %s", c.Name), err)
		}
		defined = append(defined, &c)
	}
	return defined, nil
}

// Registry is the in-process Namespace.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Define adds c. The parent must already be defined and the name must be new.
func (r *Registry) Define(c *Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.Name == "" {
		return New(KindArgument, "class name is empty")
	}
	if _, dup := r.classes[c.Name]; dup {
		return Newf(KindArgument, "class %s already defined", c.Name)
	}
	if c.Parent != "" {
		if _, ok := r.classes[c.Parent]; !ok {
			return Newf(KindArgument, "class %s: parent %s not defined", c.Name, c.Parent)
		}
	}
	r.classes[c.Name] = c
	return nil
}

// Undefine removes name if present.
func (r *Registry) Undefine(name string) {
	r.mu.Lock()
	delete(r.classes, name)
	r.mu.Unlock()
}

// Lookup returns the class registered under name.
func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// Names returns the registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for n := range r.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
