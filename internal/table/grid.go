package table

import (
	"math"
	"strconv"
	"strings"
)

// GridProduct multiplies the integer segments of a k-point grid specifier.
// "4x4x4" gives 64, "2x2x2" gives 8. Segments may be separated by 'x', 'X'
// or '×'. A missing, non-integer or non-positive segment is a *ParseError,
// as is a product that overflows int.
func GridProduct(spec string) (int, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return 0, &ParseError{Code: CodeBadGrid, Column: string(ColGrid), Message: "empty grid specifier"}
	}
	segments := strings.FieldsFunc(s, isGridSeparator)
	if len(segments) == 0 || strings.Count(s, "x")+strings.Count(s, "X")+strings.Count(s, "×") != len(segments)-1 {
		return 0, &ParseError{Code: CodeBadGrid, Column: string(ColGrid), Message: "malformed grid specifier " + strconv.Quote(spec)}
	}
	total := 1
	for _, seg := range segments {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return 0, &ParseError{
				Code:    CodeBadGrid,
				Column:  string(ColGrid),
				Message: "non-integer segment " + strconv.Quote(seg) + " in grid " + strconv.Quote(spec),
				Err:     err,
			}
		}
		if n <= 0 {
			return 0, &ParseError{Code: CodeBadGrid, Column: string(ColGrid), Message: "non-positive segment " + strconv.Quote(seg) + " in grid " + strconv.Quote(spec)}
		}
		if total > math.MaxInt/n {
			return 0, &ParseError{Code: CodeBadGrid, Column: string(ColGrid), Message: "grid " + strconv.Quote(spec) + " overflows"}
		}
		total *= n
	}
	return total, nil
}

func isGridSeparator(r rune) bool {
	return r == 'x' || r == 'X' || r == '×'
}

// isMissing reports whether a raw field stands for an absent value.
func isMissing(field string) bool {
	switch strings.ToLower(field) {
	case "", "nan", "na", "null", "none":
		return true
	}
	return false
}

// parseGridField decodes a grid column value. Missing values give ("", NaN).
func parseGridField(field string) (string, float64, error) {
	if isMissing(field) {
		return "", math.NaN(), nil
	}
	n, err := GridProduct(field)
	if err != nil {
		return "", 0, err
	}
	return field, float64(n), nil
}
