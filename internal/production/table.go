package production

// Table is a header plus rows of raw cell text. Every row has exactly
// len(Columns) cells.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable builds a table, padding or truncating rows to the header width.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, len(rows)),
	}
	for i, row := range rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		t.Rows[i] = cells
	}
	return t
}

// Index returns the position of the named column or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns a copy of the cells of the named column.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[idx]
	}
	return cells, true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return NewTable(t.Columns, t.Rows)
}

// Slice returns rows [start, end) clamped to the table bounds. The returned
// table shares no cells with t.
func (t *Table) Slice(start, end int) *Table {
	if start < 0 {
		start = 0
	}
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	if start >= end {
		return NewTable(t.Columns, nil)
	}
	return NewTable(t.Columns, t.Rows[start:end])
}

// withColumn returns a copy of t where column name holds values. The column
// is appended when it does not exist yet.
func (t *Table) withColumn(name string, values []string) *Table {
	out := t.Clone()
	idx := out.Index(name)
	if idx < 0 {
		out.Columns = append(out.Columns, name)
		for i := range out.Rows {
			out.Rows[i] = append(out.Rows[i], values[i])
		}
		return out
	}
	for i := range out.Rows {
		out.Rows[i][idx] = values[i]
	}
	return out
}
