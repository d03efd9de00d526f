package odbc

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"
	"unsafe"

	"github.com/koustreak/odbcenv/internal/errs"
	"github.com/koustreak/odbcenv/internal/logger"
)

// maxDiagRecords bounds the SQLGetDiagRecW loop.
const maxDiagRecords = 64

// Library is a loaded driver manager. It implements API.
type Library struct {
	path   string
	handle uintptr
	log    *logger.Logger

	closeOnce sync.Once

	procAllocHandle  uintptr
	procFreeHandle   uintptr
	procSetEnvAttr   uintptr
	procDataSourcesW uintptr
	procGetDiagRecW  uintptr
}

var _ API = (*Library)(nil)

// Open loads the driver manager at path. An empty path tries the usual
// library names for the platform in order. Any failure is a KindInterface
// error: nothing else in odbcenv can work without the driver manager.
func Open(path string, log *logger.Logger) (*Library, error) {
	if log == nil {
		log = logger.Global()
	}
	log = log.Component("odbc")

	names := libraryNames()
	if path != "" {
		names = []string{path}
	}

	var tried []string
	for _, name := range names {
		handle, err := loadDynamicLibrary(name)
		if err != nil {
			tried = append(tried, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		lib := &Library{path: name, handle: handle, log: log}
		if err := lib.resolve(); err != nil {
			_ = lib.Close()
			return nil, errs.Wrap(errs.KindInterface, "loading driver manager "+name, err)
		}

		log.With().Str("path", name).Logger().Debug("driver manager loaded")
		return lib, nil
	}

	return nil, errs.Newf(errs.KindInterface, "driver manager not found (tried %s)", strings.Join(tried, "; "))
}

func (l *Library) resolve() error {
	symbols := []struct {
		name string
		dst  *uintptr
	}{
		{"SQLAllocHandle", &l.procAllocHandle},
		{"SQLFreeHandle", &l.procFreeHandle},
		{"SQLSetEnvAttr", &l.procSetEnvAttr},
		{"SQLDataSourcesW", &l.procDataSourcesW},
		{"SQLGetDiagRecW", &l.procGetDiagRecW},
	}
	for _, s := range symbols {
		p, err := getSymbol(l.handle, s.name)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", s.name, err)
		}
		*s.dst = p
	}
	return nil
}

// Path returns the library name or path that was loaded.
func (l *Library) Path() string {
	return l.path
}

// Close unloads the driver manager. Handles allocated from it must not be
// used afterwards.
func (l *Library) Close() error {
	var err error
	l.closeOnce.Do(func() {
		err = closeLibrary(l.handle)
		l.handle = 0
	})
	return err
}

func (l *Library) SetEnvAttr(env Handle, attr EnvAttr, value uintptr) Return {
	r := syscallN(l.procSetEnvAttr,
		uintptr(env),
		uintptr(attr),
		value,
		uintptr(sqlIntegerAttrLength))
	return Return(int16(r))
}

func (l *Library) AllocHandle(typ HandleType, parent Handle) (Handle, Return) {
	out := new(Handle)
	r := syscallN(l.procAllocHandle,
		uintptr(typ),
		uintptr(parent),
		uintptr(unsafe.Pointer(out)))
	return *out, Return(int16(r))
}

func (l *Library) FreeHandle(typ HandleType, h Handle) Return {
	r := syscallN(l.procFreeHandle, uintptr(typ), uintptr(h))
	return Return(int16(r))
}

func (l *Library) DataSources(env Handle, dir FetchDirection) (string, string, Return) {
	name := make([]uint16, MaxDSNLength+1)
	desc := make([]uint16, DescriptionLength)
	var nameLen, descLen int16

	r := syscallN(l.procDataSourcesW,
		uintptr(env),
		uintptr(dir),
		uintptr(unsafe.Pointer(&name[0])),
		uintptr(len(name)),
		uintptr(unsafe.Pointer(&nameLen)),
		uintptr(unsafe.Pointer(&desc[0])),
		uintptr(len(desc)),
		uintptr(unsafe.Pointer(&descLen)))

	ret := Return(int16(r))
	if !ret.Succeeded() {
		return "", "", ret
	}
	return wideString(name), wideString(desc), ret
}

func (l *Library) Diagnostics(typ HandleType, h Handle) []errs.Diagnostic {
	var out []errs.Diagnostic
	for rec := 1; rec <= maxDiagRecords; rec++ {
		state := make([]uint16, SQLStateLength+1)
		msg := make([]uint16, MaxMessageLength)
		var native int32
		var msgLen int16

		r := syscallN(l.procGetDiagRecW,
			uintptr(typ),
			uintptr(h),
			uintptr(rec),
			uintptr(unsafe.Pointer(&state[0])),
			uintptr(unsafe.Pointer(&native)),
			uintptr(unsafe.Pointer(&msg[0])),
			uintptr(len(msg)),
			uintptr(unsafe.Pointer(&msgLen)))
		if !Return(int16(r)).Succeeded() {
			break
		}

		out = append(out, errs.Diagnostic{
			SQLState:   wideString(state),
			NativeCode: native,
			Message:    wideString(msg),
		})
	}
	return out
}

// wideString decodes a NUL-terminated SQLWCHAR buffer.
func wideString(buf []uint16) string {
	for i, c := range buf {
		if c == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}
