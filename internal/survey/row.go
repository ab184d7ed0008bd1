// Package survey models the rows handed to the analysis core and decides
// which columns carry exit-survey answers.
package survey

// Row is one spreadsheet record: cell text keyed by column name, with the
// header order preserved in Columns.
type Row struct {
	Columns []string
	Cells   map[string]string
}

// NewRow builds a row from parallel header and value slices. Missing values
// become empty strings.
func NewRow(headers, values []string) Row {
	r := Row{
		Columns: append([]string(nil), headers...),
		Cells:   make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		if i < len(values) {
			r.Cells[h] = values[i]
		} else {
			r.Cells[h] = ""
		}
	}
	return r
}

// Get returns the cell text for column and whether the column exists.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.Cells[column]
	return v, ok
}

// Has reports whether the row carries column.
func (r Row) Has(column string) bool {
	_, ok := r.Cells[column]
	return ok
}

// Sheet is the ordered row sequence produced from one uploaded file.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}
