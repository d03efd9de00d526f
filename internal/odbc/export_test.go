package odbc

var WideString = wideString
