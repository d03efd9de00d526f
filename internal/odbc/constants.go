package odbc

import "strings"

// Constant is one named integer code from the ODBC headers.
type Constant struct {
	Name  string
	Value int
}

// constants is exposed read-only through Constants and LookupConstant.
var constants = [...]Constant{
	// SQL data types
	{"SQL_UNKNOWN_TYPE", 0},
	{"SQL_CHAR", 1},
	{"SQL_VARCHAR", 12},
	{"SQL_LONGVARCHAR", -1},
	{"SQL_WCHAR", -8},
	{"SQL_WVARCHAR", -9},
	{"SQL_WLONGVARCHAR", -10},
	{"SQL_DECIMAL", 3},
	{"SQL_NUMERIC", 2},
	{"SQL_SMALLINT", 5},
	{"SQL_INTEGER", 4},
	{"SQL_REAL", 7},
	{"SQL_FLOAT", 6},
	{"SQL_DOUBLE", 8},
	{"SQL_BIT", -7},
	{"SQL_TINYINT", -6},
	{"SQL_BIGINT", -5},
	{"SQL_BINARY", -2},
	{"SQL_VARBINARY", -3},
	{"SQL_LONGVARBINARY", -4},
	{"SQL_TYPE_DATE", 91},
	{"SQL_TYPE_TIME", 92},
	{"SQL_TYPE_TIMESTAMP", 93},
	{"SQL_SS_TIME2", -154},
	{"SQL_SS_XML", -152},
	{"SQL_INTERVAL_MONTH", 102},
	{"SQL_INTERVAL_YEAR", 101},
	{"SQL_INTERVAL_YEAR_TO_MONTH", 107},
	{"SQL_INTERVAL_DAY", 103},
	{"SQL_INTERVAL_HOUR", 104},
	{"SQL_INTERVAL_MINUTE", 105},
	{"SQL_INTERVAL_SECOND", 106},
	{"SQL_INTERVAL_DAY_TO_HOUR", 108},
	{"SQL_INTERVAL_DAY_TO_MINUTE", 109},
	{"SQL_INTERVAL_DAY_TO_SECOND", 110},
	{"SQL_INTERVAL_HOUR_TO_MINUTE", 111},
	{"SQL_INTERVAL_HOUR_TO_SECOND", 112},
	{"SQL_INTERVAL_MINUTE_TO_SECOND", 113},
	{"SQL_GUID", -11},

	// Nullability
	{"SQL_NULLABLE", 1},
	{"SQL_NO_NULLS", 0},
	{"SQL_NULLABLE_UNKNOWN", 2},

	// SQLStatistics index types
	{"SQL_TABLE_STAT", 0},
	{"SQL_INDEX_CLUSTERED", 1},
	{"SQL_INDEX_HASHED", 2},
	{"SQL_INDEX_OTHER", 3},

	// SQLSpecialColumns scope
	{"SQL_SCOPE_CURROW", 0},
	{"SQL_SCOPE_TRANSACTION", 1},
	{"SQL_SCOPE_SESSION", 2},

	// Pseudo-columns
	{"SQL_PC_UNKNOWN", 0},
	{"SQL_PC_NOT_PSEUDO", 1},
	{"SQL_PC_PSEUDO", 2},

	// Procedure column types
	{"SQL_PARAM_TYPE_UNKNOWN", 0},
	{"SQL_PARAM_INPUT", 1},
	{"SQL_PARAM_INPUT_OUTPUT", 2},
	{"SQL_RESULT_COL", 3},
	{"SQL_PARAM_OUTPUT", 4},
	{"SQL_RETURN_VALUE", 5},

	// SQLGetInfo codes
	{"SQL_ACCESSIBLE_PROCEDURES", 20},
	{"SQL_ACCESSIBLE_TABLES", 19},
	{"SQL_ACTIVE_ENVIRONMENTS", 116},
	{"SQL_AGGREGATE_FUNCTIONS", 169},
	{"SQL_ALTER_DOMAIN", 117},
	{"SQL_ALTER_TABLE", 86},
	{"SQL_ASYNC_MODE", 10021},
	{"SQL_BATCH_ROW_COUNT", 120},
	{"SQL_BATCH_SUPPORT", 121},
	{"SQL_BOOKMARK_PERSISTENCE", 82},
	{"SQL_CATALOG_LOCATION", 114},
	{"SQL_CATALOG_NAME", 10003},
	{"SQL_CATALOG_NAME_SEPARATOR", 41},
	{"SQL_CATALOG_TERM", 42},
	{"SQL_CATALOG_USAGE", 92},
	{"SQL_COLLATION_SEQ", 10004},
	{"SQL_COLUMN_ALIAS", 87},
	{"SQL_CONCAT_NULL_BEHAVIOR", 22},
	{"SQL_CONVERT_FUNCTIONS", 48},
	{"SQL_CONVERT_VARCHAR", 70},
	{"SQL_CORRELATION_NAME", 74},
	{"SQL_CREATE_ASSERTION", 127},
	{"SQL_CREATE_CHARACTER_SET", 128},
	{"SQL_CREATE_COLLATION", 129},
	{"SQL_CREATE_DOMAIN", 130},
	{"SQL_CREATE_SCHEMA", 131},
	{"SQL_CREATE_TABLE", 132},
	{"SQL_CREATE_TRANSLATION", 133},
	{"SQL_CREATE_VIEW", 134},
	{"SQL_CURSOR_COMMIT_BEHAVIOR", 23},
	{"SQL_CURSOR_ROLLBACK_BEHAVIOR", 24},
	{"SQL_CURSOR_SENSITIVITY", 10001},
	{"SQL_DATABASE_NAME", 16},
	{"SQL_DATA_SOURCE_NAME", 2},
	{"SQL_DATA_SOURCE_READ_ONLY", 25},
	{"SQL_DATETIME_LITERALS", 119},
	{"SQL_DBMS_NAME", 17},
	{"SQL_DBMS_VER", 18},
	{"SQL_DDL_INDEX", 170},
	{"SQL_DEFAULT_TXN_ISOLATION", 26},
	{"SQL_DESCRIBE_PARAMETER", 10002},
	{"SQL_DM_VER", 171},
	{"SQL_DRIVER_HDESC", 135},
	{"SQL_DRIVER_HENV", 4},
	{"SQL_DRIVER_HLIB", 76},
	{"SQL_DRIVER_HSTMT", 5},
	{"SQL_DRIVER_NAME", 6},
	{"SQL_DRIVER_ODBC_VER", 77},
	{"SQL_DRIVER_VER", 7},
	{"SQL_DROP_ASSERTION", 136},
	{"SQL_DROP_CHARACTER_SET", 137},
	{"SQL_DROP_COLLATION", 138},
	{"SQL_DROP_DOMAIN", 139},
	{"SQL_DROP_SCHEMA", 140},
	{"SQL_DROP_TABLE", 141},
	{"SQL_DROP_TRANSLATION", 142},
	{"SQL_DROP_VIEW", 143},
	{"SQL_DYNAMIC_CURSOR_ATTRIBUTES1", 144},
	{"SQL_DYNAMIC_CURSOR_ATTRIBUTES2", 145},
	{"SQL_EXPRESSIONS_IN_ORDERBY", 27},
	{"SQL_FILE_USAGE", 84},
	{"SQL_FORWARD_ONLY_CURSOR_ATTRIBUTES1", 146},
	{"SQL_FORWARD_ONLY_CURSOR_ATTRIBUTES2", 147},
	{"SQL_GETDATA_EXTENSIONS", 81},
	{"SQL_GROUP_BY", 88},
	{"SQL_IDENTIFIER_CASE", 28},
	{"SQL_IDENTIFIER_QUOTE_CHAR", 29},
	{"SQL_INDEX_KEYWORDS", 148},
	{"SQL_INFO_SCHEMA_VIEWS", 149},
	{"SQL_INSERT_STATEMENT", 172},
	{"SQL_INTEGRITY", 73},
	{"SQL_KEYSET_CURSOR_ATTRIBUTES1", 150},
	{"SQL_KEYSET_CURSOR_ATTRIBUTES2", 151},
	{"SQL_KEYWORDS", 89},
	{"SQL_LIKE_ESCAPE_CLAUSE", 113},
	{"SQL_MAX_ASYNC_CONCURRENT_STATEMENTS", 10022},
	{"SQL_MAX_BINARY_LITERAL_LEN", 112},
	{"SQL_MAX_CATALOG_NAME_LEN", 34},
	{"SQL_MAX_CHAR_LITERAL_LEN", 108},
	{"SQL_MAX_COLUMNS_IN_GROUP_BY", 97},
	{"SQL_MAX_COLUMNS_IN_INDEX", 98},
	{"SQL_MAX_COLUMNS_IN_ORDER_BY", 99},
	{"SQL_MAX_COLUMNS_IN_SELECT", 100},
	{"SQL_MAX_COLUMNS_IN_TABLE", 101},
	{"SQL_MAX_COLUMN_NAME_LEN", 30},
	{"SQL_MAX_CONCURRENT_ACTIVITIES", 1},
	{"SQL_MAX_CURSOR_NAME_LEN", 31},
	{"SQL_MAX_DRIVER_CONNECTIONS", 0},
	{"SQL_MAX_IDENTIFIER_LEN", 10005},
	{"SQL_MAX_INDEX_SIZE", 102},
	{"SQL_MAX_PROCEDURE_NAME_LEN", 33},
	{"SQL_MAX_ROW_SIZE", 104},
	{"SQL_MAX_ROW_SIZE_INCLUDES_LONG", 103},
	{"SQL_MAX_SCHEMA_NAME_LEN", 32},
	{"SQL_MAX_STATEMENT_LEN", 105},
	{"SQL_MAX_TABLES_IN_SELECT", 106},
	{"SQL_MAX_TABLE_NAME_LEN", 35},
	{"SQL_MAX_USER_NAME_LEN", 107},
	{"SQL_MULTIPLE_ACTIVE_TXN", 37},
	{"SQL_MULT_RESULT_SETS", 36},
	{"SQL_NEED_LONG_DATA_LEN", 111},
	{"SQL_NON_NULLABLE_COLUMNS", 75},
	{"SQL_NULL_COLLATION", 85},
	{"SQL_NUMERIC_FUNCTIONS", 49},
	{"SQL_ODBC_INTERFACE_CONFORMANCE", 152},
	{"SQL_ODBC_VER", 10},
	{"SQL_OJ_CAPABILITIES", 115},
	{"SQL_ORDER_BY_COLUMNS_IN_SELECT", 90},
	{"SQL_PARAM_ARRAY_ROW_COUNTS", 153},
	{"SQL_PARAM_ARRAY_SELECTS", 154},
	{"SQL_PROCEDURES", 21},
	{"SQL_PROCEDURE_TERM", 40},
	{"SQL_QUOTED_IDENTIFIER_CASE", 93},
	{"SQL_ROW_UPDATES", 11},
	{"SQL_SCHEMA_TERM", 39},
	{"SQL_SCHEMA_USAGE", 91},
	{"SQL_SCROLL_OPTIONS", 44},
	{"SQL_SEARCH_PATTERN_ESCAPE", 14},
	{"SQL_SERVER_NAME", 13},
	{"SQL_SPECIAL_CHARACTERS", 94},
	{"SQL_SQL92_DATETIME_FUNCTIONS", 155},
	{"SQL_SQL92_FOREIGN_KEY_DELETE_RULE", 156},
	{"SQL_SQL92_FOREIGN_KEY_UPDATE_RULE", 157},
	{"SQL_SQL92_GRANT", 158},
	{"SQL_SQL92_NUMERIC_VALUE_FUNCTIONS", 159},
	{"SQL_SQL92_PREDICATES", 160},
	{"SQL_SQL92_RELATIONAL_JOIN_OPERATORS", 161},
	{"SQL_SQL92_REVOKE", 162},
	{"SQL_SQL92_ROW_VALUE_CONSTRUCTOR", 163},
	{"SQL_SQL92_STRING_FUNCTIONS", 164},
	{"SQL_SQL92_VALUE_EXPRESSIONS", 165},
	{"SQL_SQL_CONFORMANCE", 118},
	{"SQL_STANDARD_CLI_CONFORMANCE", 166},
	{"SQL_STATIC_CURSOR_ATTRIBUTES1", 167},
	{"SQL_STATIC_CURSOR_ATTRIBUTES2", 168},
	{"SQL_STRING_FUNCTIONS", 50},
	{"SQL_SUBQUERIES", 95},
	{"SQL_SYSTEM_FUNCTIONS", 51},
	{"SQL_TABLE_TERM", 45},
	{"SQL_TIMEDATE_ADD_INTERVALS", 109},
	{"SQL_TIMEDATE_DIFF_INTERVALS", 110},
	{"SQL_TIMEDATE_FUNCTIONS", 52},
	{"SQL_TXN_CAPABLE", 46},
	{"SQL_TXN_ISOLATION_OPTION", 72},
	{"SQL_UNION", 96},
	{"SQL_USER_NAME", 47},
	{"SQL_XOPEN_CLI_YEAR", 10000},
}

var constantIndex = func() map[string]int {
	m := make(map[string]int, len(constants))
	for _, c := range constants {
		m[c.Name] = c.Value
	}
	return m
}()

// Constants returns the named codes in their declaration order. The caller
// owns the returned slice.
func Constants() []Constant {
	out := make([]Constant, len(constants))
	copy(out, constants[:])
	return out
}

// LookupConstant returns the value of a named code.
func LookupConstant(name string) (int, bool) {
	v, ok := constantIndex[name]
	return v, ok
}

// FilterConstants returns the constants whose name contains substr,
// ignoring case.
func FilterConstants(substr string) []Constant {
	substr = strings.ToUpper(substr)
	var out []Constant
	for _, c := range constants {
		if strings.Contains(c.Name, substr) {
			out = append(out, c)
		}
	}
	return out
}
