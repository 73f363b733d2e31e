package frame

// RowView is a lightweight handle on one row of a table. It holds no data
// and sees every later change to the table.
type RowView struct {
	table *Table
	row   int
}

// Index returns the row position.
func (r RowView) Index() int { return r.row }

// Len returns the number of cells, the column count of the table.
func (r RowView) Len() int { return r.table.ColumnCount() }

// Get returns the cell in column col; nil when null.
func (r RowView) Get(col int) any { return r.table.Get(r.row, col) }

// GetByName returns the cell in the named column.
func (r RowView) GetByName(name string) (any, error) {
	c, err := r.table.ColumnByName(name)
	if err != nil {
		return nil, err
	}
	if err := checkRow(c, r.row); err != nil {
		return nil, err
	}
	return c.Get(r.row), nil
}

// Set writes the cell in column col.
func (r RowView) Set(col int, v any) error { return r.table.Set(r.row, col, v) }

// SetByName writes the cell in the named column.
func (r RowView) SetByName(name string, v any) error {
	c, err := r.table.ColumnByName(name)
	if err != nil {
		return err
	}
	return c.Set(r.row, v)
}

// Values returns a copy of every cell in column order.
func (r RowView) Values() []any {
	out := make([]any, r.table.ColumnCount())
	for i := range out {
		out[i] = r.Get(i)
	}
	return out
}

// Record returns the row keyed by column name.
func (r RowView) Record() map[string]any {
	out := make(map[string]any, r.table.ColumnCount())
	for i, c := range r.table.columns {
		out[c.Name()] = r.Get(i)
	}
	return out
}
