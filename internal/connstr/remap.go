// Package connstr assembles driver-manager connection strings from an
// optional base string and ordered keyword arguments.
package connstr

// Remap lists the friendly keyword names accepted by Build and the native
// keyword each one is rewritten to.
var Remap = [...]struct {
	Friendly string
	Native   string
}{
	{"user", "uid"},
	{"password", "pwd"},
	{"host", "server"},
}

// Lookup returns the native name for a friendly keyword. Matching is exact
// and case-sensitive: "User" is passed through unchanged.
func Lookup(key string) (string, bool) {
	for _, e := range Remap {
		if e.Friendly == key {
			return e.Native, true
		}
	}
	return "", false
}
