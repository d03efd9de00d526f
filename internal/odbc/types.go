// Package odbc is the thin layer over the native ODBC driver manager: the
// handful of types, codes and entry points the environment manager and the
// data source enumerator need.
package odbc

import "fmt"

// Handle is an opaque driver-manager handle (SQLHANDLE).
type Handle uintptr

// NullHandle is SQL_NULL_HANDLE.
const NullHandle Handle = 0

// HandleType selects the kind of handle (SQLSMALLINT).
type HandleType int16

const (
	HandleEnv  HandleType = 1
	HandleDbc  HandleType = 2
	HandleStmt HandleType = 3
	HandleDesc HandleType = 4
)

func (t HandleType) String() string {
	switch t {
	case HandleEnv:
		return "SQL_HANDLE_ENV"
	case HandleDbc:
		return "SQL_HANDLE_DBC"
	case HandleStmt:
		return "SQL_HANDLE_STMT"
	case HandleDesc:
		return "SQL_HANDLE_DESC"
	default:
		return fmt.Sprintf("HandleType(%d)", int16(t))
	}
}

// Return is a status code (SQLRETURN).
type Return int16

const (
	Success         Return = 0
	SuccessWithInfo Return = 1
	StillExecuting  Return = 2
	NeedData        Return = 99
	NoData          Return = 100
	Error           Return = -1
	InvalidHandle   Return = -2
)

// Succeeded mirrors SQL_SUCCEEDED.
func (r Return) Succeeded() bool {
	return r == Success || r == SuccessWithInfo
}

// IsNoData reports SQL_NO_DATA.
func (r Return) IsNoData() bool {
	return r == NoData
}

func (r Return) String() string {
	switch r {
	case Success:
		return "SQL_SUCCESS"
	case SuccessWithInfo:
		return "SQL_SUCCESS_WITH_INFO"
	case StillExecuting:
		return "SQL_STILL_EXECUTING"
	case NeedData:
		return "SQL_NEED_DATA"
	case NoData:
		return "SQL_NO_DATA"
	case Error:
		return "SQL_ERROR"
	case InvalidHandle:
		return "SQL_INVALID_HANDLE"
	default:
		return fmt.Sprintf("SQLRETURN(%d)", int16(r))
	}
}

// EnvAttr is an environment attribute (SQLINTEGER).
type EnvAttr int32

const (
	AttrODBCVersion       EnvAttr = 200
	AttrConnectionPooling EnvAttr = 201
	AttrCPMatch           EnvAttr = 202
)

func (a EnvAttr) String() string {
	switch a {
	case AttrODBCVersion:
		return "SQL_ATTR_ODBC_VERSION"
	case AttrConnectionPooling:
		return "SQL_ATTR_CONNECTION_POOLING"
	case AttrCPMatch:
		return "SQL_ATTR_CP_MATCH"
	default:
		return fmt.Sprintf("EnvAttr(%d)", int32(a))
	}
}

// Values for AttrODBCVersion and AttrConnectionPooling.
const (
	OVODBC2 = 2
	OVODBC3 = 3

	CPOff          = 0
	CPOnePerDriver = 1
	CPOnePerHEnv   = 2
)

// FetchDirection drives SQLDataSources (SQLUSMALLINT).
type FetchDirection uint16

const (
	FetchNext  FetchDirection = 1
	FetchFirst FetchDirection = 2
)

func (d FetchDirection) String() string {
	switch d {
	case FetchNext:
		return "SQL_FETCH_NEXT"
	case FetchFirst:
		return "SQL_FETCH_FIRST"
	default:
		return fmt.Sprintf("FetchDirection(%d)", uint16(d))
	}
}

// Buffer sizes, in characters, used when talking to the driver manager.
const (
	MaxDSNLength         = 32  // SQL_MAX_DSN_LENGTH
	DescriptionLength    = 200 // data source description buffer
	MaxMessageLength     = 512 // SQL_MAX_MESSAGE_LENGTH
	SQLStateLength       = 5
	sqlIntegerAttrLength = 4 // sizeof(SQLINTEGER), passed with integer attribute values
)
