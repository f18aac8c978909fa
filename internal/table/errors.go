package table

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes table loading errors.
type ErrorCode string

const (
	// CodeNotFound indicates the table file does not exist or cannot be opened.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeEmpty indicates the file has no header row.
	CodeEmpty ErrorCode = "EMPTY"

	// CodeMalformedRow indicates a row whose field count differs from the header.
	CodeMalformedRow ErrorCode = "MALFORMED_ROW"

	// CodeBadNumber indicates a numeric column holding a non-numeric value.
	CodeBadNumber ErrorCode = "BAD_NUMBER"

	// CodeBadGrid indicates a grid specifier with a non-integer segment.
	CodeBadGrid ErrorCode = "BAD_GRID"

	// CodeMissingColumn indicates a required or referenced column is absent.
	CodeMissingColumn ErrorCode = "MISSING_COLUMN"

	// CodeUnknownColumn indicates a column name that maps to no known column.
	CodeUnknownColumn ErrorCode = "UNKNOWN_COLUMN"

	// CodeDuplicateColumn indicates two header fields resolving to the same column.
	CodeDuplicateColumn ErrorCode = "DUPLICATE_COLUMN"

	// CodeReadFailed indicates an I/O error while scanning the file.
	CodeReadFailed ErrorCode = "READ_FAILED"
)

// ParseError is returned for every failure to turn a file into a Table.
type ParseError struct {
	Code    ErrorCode
	Path    string // file being parsed, empty for in-memory input
	Line    int    // 1-based line number, 0 when not line specific
	Column  string // column name or header field, if relevant
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Column != "" {
		msg = fmt.Sprintf("%s: column %q: %s", e.Code, e.Column, e.Message)
	}
	switch {
	case e.Path != "" && e.Line > 0:
		msg = fmt.Sprintf("%s:%d: %s", e.Path, e.Line, msg)
	case e.Path != "":
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	case e.Line > 0:
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ErrorCodeOf returns the code of a wrapped *ParseError, or "" if err is not one.
func ErrorCodeOf(err error) ErrorCode {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
