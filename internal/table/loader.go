package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Table is the parsed convergence table.
type Table struct {
	Path    string
	Headers []string // header fields as written in the file
	Rows    []Row

	order []Column          // decoded columns in header order
	index map[Column]int    // column -> header position
	units map[Column]string // column -> unit from the header suffix
}

// Load reads and parses the table at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		code := CodeReadFailed
		if errors.Is(err, os.ErrNotExist) {
			code = CodeNotFound
		}
		return nil, &ParseError{Code: code, Path: path, Message: "cannot open table", Err: err}
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads a table from r. name is used in error messages only.
func Parse(r io.Reader, name string) (*Table, error) {
	t := &Table{
		Path:  name,
		index: make(map[Column]int),
		units: make(map[Column]string),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if t.Headers == nil {
			if err := t.parseHeader(fields, line); err != nil {
				return nil, err
			}
			continue
		}

		row, err := t.parseRow(fields, line)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Code: CodeReadFailed, Path: name, Line: line, Message: "reading table", Err: err}
	}
	if t.Headers == nil {
		return nil, &ParseError{Code: CodeEmpty, Path: name, Message: "no header row"}
	}
	if err := t.Require(RequiredColumns...); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) parseHeader(fields []string, line int) error {
	t.Headers = fields
	for i, h := range fields {
		c, err := ParseColumn(h)
		if err != nil {
			// Extra columns are carried in Headers but not decoded.
			continue
		}
		if c.Derived() {
			continue
		}
		if prev, dup := t.index[c]; dup {
			return &ParseError{
				Code:    CodeDuplicateColumn,
				Path:    t.Path,
				Line:    line,
				Column:  h,
				Message: fmt.Sprintf("same column as header field %q", fields[prev]),
			}
		}
		t.index[c] = i
		t.order = append(t.order, c)
		_, unit := splitHeader(h)
		t.units[c] = unit
	}
	return nil
}

func (t *Table) parseRow(fields []string, line int) (Row, error) {
	if len(fields) != len(t.Headers) {
		return Row{}, &ParseError{
			Code:    CodeMalformedRow,
			Path:    t.Path,
			Line:    line,
			Message: fmt.Sprintf("expected %d fields, found %d", len(t.Headers), len(fields)),
		}
	}

	row := emptyRow(line)
	for _, c := range t.order {
		i := t.index[c]
		field := fields[i]
		switch c.Kind() {
		case KindText:
			grid, size, err := parseGridField(field)
			if err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Path, pe.Line = t.Path, line
				}
				return Row{}, err
			}
			row.Grid, row.GridSize = grid, size
		case KindFlag:
			row.setFlag(c, field == "T")
		case KindNumber:
			v, err := parseNumber(field)
			if err != nil {
				return Row{}, &ParseError{
					Code:    CodeBadNumber,
					Path:    t.Path,
					Line:    line,
					Column:  t.Headers[i],
					Message: fmt.Sprintf("invalid number %q", field),
					Err:     err,
				}
			}
			row.setNumber(c, v)
		}
	}
	return row, nil
}

func parseNumber(field string) (float64, error) {
	if isMissing(field) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}

// Has reports whether the table carries column c.
func (t *Table) Has(c Column) bool {
	if c == ColGridSize {
		c = ColGrid
	}
	_, ok := t.index[c]
	return ok
}

// Require returns a *ParseError naming the first absent column.
func (t *Table) Require(cols ...Column) error {
	for _, c := range cols {
		if !c.Valid() {
			return &ParseError{Code: CodeUnknownColumn, Path: t.Path, Column: string(c), Message: "unknown column"}
		}
		if !t.Has(c) {
			return &ParseError{Code: CodeMissingColumn, Path: t.Path, Column: string(c), Message: "column not present in table header"}
		}
	}
	return nil
}

// Columns returns the decoded columns in header order, followed by the
// derived grid size when the grid column is present.
func (t *Table) Columns() []Column {
	cols := append(make([]Column, 0, len(t.order)+1), t.order...)
	if t.Has(ColGrid) {
		cols = append(cols, ColGridSize)
	}
	return cols
}

// Unit returns the unit written in the header of c ("eV/ion"), or "".
func (t *Table) Unit(c Column) string {
	return t.units[c]
}

// Name returns the display name of c without its unit ("Total time").
func (t *Table) Name(c Column) string {
	if i, ok := t.index[c]; ok {
		return displayName(t.Headers[i])
	}
	return ColumnTitle(c)
}

// Label returns the display name of c with its unit ("Energy (eV/ion)").
func (t *Table) Label(c Column) string {
	name := t.Name(c)
	if u := t.Unit(c); u != "" {
		return fmt.Sprintf("%s (%s)", name, u)
	}
	return name
}
