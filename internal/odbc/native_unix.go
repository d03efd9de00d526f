//go:build !windows

package odbc

import (
	"errors"

	"github.com/ebitengine/purego"
)

// libraryNames lists the driver managers tried when no path is configured.
// unixODBC is preferred; iODBC uses a 4-byte SQLWCHAR and is not supported.
func libraryNames() []string {
	return []string{
		"libodbc.so.2",
		"libodbc.so",
		"libodbc.2.dylib",
		"libodbc.dylib",
		"/opt/homebrew/lib/libodbc.2.dylib",
		"/usr/local/lib/libodbc.2.dylib",
	}
}

// Load a dynamic library using purego
func loadDynamicLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}

func getSymbol(handle uintptr, name string) (uintptr, error) {
	if handle == 0 {
		return 0, errors.New("invalid library handle")
	}
	return purego.Dlsym(handle, name)
}

// syscallN calls fn and returns its first result register.
//
//go:uintptrescapes
func syscallN(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}
