// Package odbcenv is the process-wide entry point to an ODBC driver manager.
//
// It loads the driver manager on first use, owns the single environment
// handle and its pooling policy, builds connection strings from positional
// and keyword arguments, lists configured data sources and resolves the
// numeric characters of the host locale. Errors follow a DB-API style
// taxonomy; see Kind and the Is* predicates.
//
// Typical use:
//
//	if err := odbcenv.SetPooling(false); err != nil {
//		return err
//	}
//	h, req, err := odbcenv.Prepare([]any{"DSN=sales"},
//		odbcenv.KW("user", odbcenv.Text("alice")),
//		odbcenv.KW("timeout", odbcenv.Int(5)))
package odbcenv
