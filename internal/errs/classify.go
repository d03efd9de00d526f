package errs

import "strings"

// ClassifySQLState maps a five-character SQLSTATE to the most specific kind.
// Full list: https://learn.microsoft.com/en-us/sql/odbc/reference/appendixes/appendix-a-odbc-error-codes
func ClassifySQLState(state string) Kind {
	state = strings.ToUpper(strings.TrimSpace(state))
	if len(state) < 2 {
		return KindDatabase
	}

	// Exact codes first; several HY/IM codes are more specific than their class.
	switch state {
	case "HYC00", "IM001", "HY106":
		return KindNotSupported
	case "HYT00", "HYT01":
		return KindOperational
	case "HY001", "HY013":
		return KindOperational
	case "HY010", "HY011":
		return KindProgramming
	case "IM002", "IM003", "IM004", "IM005", "IM006":
		return KindInterface
	}

	switch state[:2] {
	case "01":
		return KindWarning
	case "07", "21":
		return KindProgramming
	case "08":
		return KindOperational
	case "0A":
		return KindNotSupported
	case "22":
		return KindData
	case "23", "40":
		if state == "40001" {
			return KindOperational
		}
		return KindIntegrity
	case "24", "25", "2D":
		return KindInternal
	case "28":
		return KindOperational
	case "34", "3C", "3D", "3F", "42", "44":
		return KindProgramming
	case "HZ":
		return KindOperational
	default:
		return KindDatabase
	}
}
