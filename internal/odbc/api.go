package odbc

import "github.com/koustreak/odbcenv/internal/errs"

// API is the subset of the driver-manager interface used by odbcenv.
// *Library implements it against the real driver manager; tests use
// odbctest.Fake.
type API interface {
	// SetEnvAttr calls SQLSetEnvAttr with an integer attribute value.
	// env may be NullHandle for process-wide attributes such as pooling.
	SetEnvAttr(env Handle, attr EnvAttr, value uintptr) Return

	// AllocHandle calls SQLAllocHandle.
	AllocHandle(typ HandleType, parent Handle) (Handle, Return)

	// FreeHandle calls SQLFreeHandle.
	FreeHandle(typ HandleType, h Handle) Return

	// DataSources calls SQLDataSourcesW once. Name and description are
	// decoded from fixed buffers of MaxDSNLength+1 and DescriptionLength
	// characters.
	DataSources(env Handle, dir FetchDirection) (name, description string, ret Return)

	// Diagnostics returns every diagnostic record attached to h, in
	// record order. It returns nil when there are none.
	Diagnostics(typ HandleType, h Handle) []errs.Diagnostic
}

// FirstDiagnostic returns the first diagnostic record for h, or a record
// carrying fallback as its message when the driver manager supplied none.
func FirstDiagnostic(api API, typ HandleType, h Handle, fallback string) errs.Diagnostic {
	recs := api.Diagnostics(typ, h)
	for _, d := range recs {
		if d.Message != "" || d.SQLState != "" {
			if d.Message == "" {
				d.Message = fallback
			}
			return d
		}
	}
	return errs.Diagnostic{SQLState: "HY000", Message: fallback}
}
