package frame

import (
	"iter"
	"maps"
	"math/rand/v2"
	"slices"
)

// DefaultSampleSeed seeds the generator Sample uses when none is supplied.
const DefaultSampleSeed uint64 = 0x5eed

// Table is an ordered collection of uniquely named columns of equal length.
// The row count is the length of its columns, 0 when it has none.
type Table struct {
	columns []Column
	index   map[string]int
}

// NewTable creates a table from columns, validating them as Add would.
func NewTable(columns ...Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Columns returns the columns in order. The slice is a copy; the columns are not.
func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// Column returns the column at position i.
func (t *Table) Column(i int) Column { return t.columns[i] }

// IndexOf returns the position of the named column, or -1.
func (t *Table) IndexOf(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// ColumnByName returns the named column.
func (t *Table) ColumnByName(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, notFoundf("column %q", name)
	}
	return t.columns[i], nil
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		t.index[c.Name()] = i
	}
}

// Insert places c at position i, shifting later columns right.
func (t *Table) Insert(i int, c Column) error {
	if c == nil {
		return invalidArgf("insert: nil column")
	}
	if i < 0 || i > len(t.columns) {
		return invalidArgf("insert %q: index %d out of range [0, %d]", c.Name(), i, len(t.columns))
	}
	if _, dup := t.index[c.Name()]; dup {
		return invalidArgf("insert: duplicate column name %q", c.Name())
	}
	if len(t.columns) > 0 && c.Len() != t.RowCount() {
		return invalidArgf("insert %q: length %d does not match row count %d", c.Name(), c.Len(), t.RowCount())
	}
	t.columns = slices.Insert(t.columns, i, c)
	t.reindex()
	return nil
}

// Add appends c as the last column.
func (t *Table) Add(c Column) error {
	return t.Insert(len(t.columns), c)
}

// Remove drops the column at position i.
func (t *Table) Remove(i int) error {
	if i < 0 || i >= len(t.columns) {
		return invalidArgf("remove: index %d out of range [0, %d)", i, len(t.columns))
	}
	t.columns = slices.Delete(t.columns, i, i+1)
	t.reindex()
	return nil
}

// RemoveByName drops the named column.
func (t *Table) RemoveByName(name string) error {
	i, ok := t.index[name]
	if !ok {
		return notFoundf("remove: column %q", name)
	}
	return t.Remove(i)
}

// Replace swaps the column at position i for c.
func (t *Table) Replace(i int, c Column) error {
	if c == nil {
		return invalidArgf("replace: nil column")
	}
	if i < 0 || i >= len(t.columns) {
		return invalidArgf("replace %q: index %d out of range [0, %d)", c.Name(), i, len(t.columns))
	}
	if j, dup := t.index[c.Name()]; dup && j != i {
		return invalidArgf("replace: duplicate column name %q", c.Name())
	}
	if len(t.columns) > 1 && c.Len() != t.RowCount() {
		return invalidArgf("replace %q: length %d does not match row count %d", c.Name(), c.Len(), t.RowCount())
	}
	t.columns[i] = c
	t.reindex()
	return nil
}

// Rename changes a column name, keeping names unique.
func (t *Table) Rename(from, to string) error {
	i, ok := t.index[from]
	if !ok {
		return notFoundf("rename: column %q", from)
	}
	if j, dup := t.index[to]; dup && j != i {
		return invalidArgf("rename: duplicate column name %q", to)
	}
	t.columns[i].SetName(to)
	t.reindex()
	return nil
}

// Clear removes every column; the row count becomes 0.
func (t *Table) Clear() {
	t.columns = nil
	t.index = map[string]int{}
}

// Get returns the value at (row, col).
func (t *Table) Get(row, col int) any {
	return t.columns[col].Get(row)
}

// Set coerces v into the column type and stores it at (row, col).
func (t *Table) Set(row, col int, v any) error {
	if col < 0 || col >= len(t.columns) {
		return invalidArgf("set: column index %d out of range [0, %d)", col, len(t.columns))
	}
	return t.columns[col].Set(row, v)
}

// Row returns a view of row i.
func (t *Table) Row(i int) RowView {
	return RowView{table: t, row: i}
}

// Rows iterates over row views in order.
func (t *Table) Rows() iter.Seq2[int, RowView] {
	return func(yield func(int, RowView) bool) {
		for i := 0; i < t.RowCount(); i++ {
			if !yield(i, t.Row(i)) {
				return
			}
		}
	}
}

// mapColumns builds a table from fn applied to every column.
func (t *Table) mapColumns(fn func(Column) Column) *Table {
	out := &Table{columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		out.columns[i] = fn(c)
	}
	out.reindex()
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return t.mapColumns(Column.Clone)
}

// Take returns a table of the rows at indices; -1 yields a null row.
func (t *Table) Take(indices []int) *Table {
	return t.mapColumns(func(c Column) Column { return c.Take(indices) })
}

func seq(from, to int) []int {
	out := make([]int, 0, max(to-from, 0))
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	return t.Take(seq(0, min(max(n, 0), t.RowCount())))
}

// Tail returns the last n rows.
func (t *Table) Tail(n int) *Table {
	rows := t.RowCount()
	return t.Take(seq(max(rows-max(n, 0), 0), rows))
}

// Select returns a table holding copies of the named columns in the given
// order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{index: map[string]int{}}
	for _, name := range names {
		c, err := t.ColumnByName(name)
		if err != nil {
			return nil, err
		}
		if err := out.Add(c.Clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FilterMask keeps the rows where mask is true. Null mask rows are dropped.
func (t *Table) FilterMask(mask *BoolColumn) (*Table, error) {
	if mask.Len() != t.RowCount() {
		return nil, invalidArgf("filter: mask has %d rows, table has %d", mask.Len(), t.RowCount())
	}
	var rows []int
	for i := 0; i < mask.Len(); i++ {
		if v, ok := mask.Value(i); ok && v {
			rows = append(rows, i)
		}
	}
	return t.Take(rows), nil
}

// DropNullsMode selects which rows DropNulls removes.
type DropNullsMode int

const (
	// DropAny removes rows holding at least one null.
	DropAny DropNullsMode = iota
	// DropAll removes rows where every column is null.
	DropAll
)

// DropNulls returns the table without null rows, as selected by mode.
func (t *Table) DropNulls(mode DropNullsMode) *Table {
	var rows []int
	for r := 0; r < t.RowCount(); r++ {
		nulls := 0
		for _, c := range t.columns {
			if c.IsNull(r) {
				nulls++
			}
		}
		drop := nulls > 0
		if mode == DropAll {
			drop = nulls == len(t.columns)
		}
		if !drop {
			rows = append(rows, r)
		}
	}
	return t.Take(rows)
}

// FillNulls returns a copy with every null replaced by v, converted per column.
func (t *Table) FillNulls(v any) (*Table, error) {
	out := &Table{columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		filled, err := FillNulls(c, v)
		if err != nil {
			return nil, err
		}
		out.columns[i] = filled
	}
	out.reindex()
	return out, nil
}

// FillNullsInPlace replaces every null with v. No column changes unless v
// converts for all of them.
func (t *Table) FillNullsInPlace(v any) error {
	for _, c := range t.columns {
		if _, isArrow := c.(*ArrowStringColumn); isArrow && c.NullCount() > 0 {
			return unsupportedf("fill nulls: arrow string column %q is immutable", c.Name())
		}
		if err := c.check(v); err != nil {
			return err
		}
	}
	if v == nil {
		return invalidArgf("fill value must not be null")
	}
	for _, c := range t.columns {
		if c.NullCount() == 0 {
			continue
		}
		if err := FillNullsInPlace(c, v); err != nil {
			return err
		}
	}
	return nil
}

// Clamp returns a copy with numeric columns bounded to [lo, hi]. Other
// columns are copied unchanged.
func (t *Table) Clamp(lo, hi any) (*Table, error) {
	out := &Table{columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		if !c.Type().IsNumeric() {
			out.columns[i] = c.Clone()
			continue
		}
		clamped, err := Clamp(c, lo, hi)
		if err != nil {
			return nil, err
		}
		out.columns[i] = clamped
	}
	out.reindex()
	return out, nil
}

// ClampInPlace bounds numeric columns to [lo, hi].
func (t *Table) ClampInPlace(lo, hi any) error {
	var numeric []Column
	for _, c := range t.columns {
		if !c.Type().IsNumeric() {
			continue
		}
		// Bounds are validated against an empty copy so no column changes on error.
		if _, err := Clamp(c.Take(nil), lo, hi); err != nil {
			return err
		}
		numeric = append(numeric, c)
	}
	for _, c := range numeric {
		if err := ClampInPlace(c, lo, hi); err != nil {
			return err
		}
	}
	return nil
}

// AddPrefix returns a copy with prefix prepended to every column name.
func (t *Table) AddPrefix(prefix string) *Table {
	out := t.Clone()
	out.AddPrefixInPlace(prefix)
	return out
}

// AddPrefixInPlace prepends prefix to every column name.
func (t *Table) AddPrefixInPlace(prefix string) {
	for _, c := range t.columns {
		c.SetName(prefix + c.Name())
	}
	t.reindex()
}

// AddSuffix returns a copy with suffix appended to every column name.
func (t *Table) AddSuffix(suffix string) *Table {
	out := t.Clone()
	out.AddSuffixInPlace(suffix)
	return out
}

// AddSuffixInPlace appends suffix to every column name.
func (t *Table) AddSuffixInPlace(suffix string) {
	for _, c := range t.columns {
		c.SetName(c.Name() + suffix)
	}
	t.reindex()
}

// Sample returns n distinct rows picked by rng. A nil rng uses a PCG
// generator seeded with DefaultSampleSeed.
func (t *Table) Sample(n int, rng *rand.Rand) (*Table, error) {
	rows := t.RowCount()
	if n < 0 || n > rows {
		return nil, invalidArgf("sample: %d rows requested from %d", n, rows)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(DefaultSampleSeed, 0))
	}
	perm := seq(0, rows)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(rows-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return t.Take(perm[:n]), nil
}

// AppendRow appends one row. Missing trailing values are null. Every value
// is validated before any column grows.
func (t *Table) AppendRow(values []any) error {
	if len(values) > len(t.columns) {
		return invalidArgf("append row: %d values for %d columns", len(values), len(t.columns))
	}
	row := make([]any, len(t.columns))
	copy(row, values)
	return t.appendValues(row)
}

// AppendRecord appends one row given by column name. Absent columns are null.
func (t *Table) AppendRecord(record map[string]any) error {
	row := make([]any, len(t.columns))
	for _, name := range slices.Sorted(maps.Keys(record)) {
		i, ok := t.index[name]
		if !ok {
			return notFoundf("append record: column %q", name)
		}
		row[i] = record[name]
	}
	return t.appendValues(row)
}

func (t *Table) appendValues(row []any) error {
	for i, c := range t.columns {
		if err := c.check(row[i]); err != nil {
			return err
		}
	}
	for i, c := range t.columns {
		if err := c.Append(row[i]); err != nil {
			return err
		}
	}
	return nil
}

// AppendTable appends the rows of other, matching columns by name. Columns
// other lacks receive nulls.
func (t *Table) AppendTable(other *Table) error {
	src := make([]Column, len(t.columns))
	for _, oc := range other.columns {
		i, ok := t.index[oc.Name()]
		if !ok {
			return notFoundf("append table: column %q", oc.Name())
		}
		src[i] = oc
	}
	for i, c := range t.columns {
		if src[i] == nil {
			continue
		}
		for _, v := range src[i].Values() {
			if err := c.check(v); err != nil {
				return err
			}
		}
	}
	for i, c := range t.columns {
		if src[i] == nil {
			if err := c.AppendMany(nil, other.RowCount()); err != nil {
				return err
			}
			continue
		}
		for _, v := range src[i].Values() {
			if err := c.Append(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Apply broadcasts scalar op over every numeric column and returns the
// results as a new table. Other columns are copied unchanged.
func (t *Table) Apply(op BinaryOp, scalar any) (*Table, error) {
	return t.broadcast(op, func(int) any { return scalar }, false, true)
}

// ApplyReverse broadcasts scalar op column over every numeric column.
func (t *Table) ApplyReverse(op BinaryOp, scalar any) (*Table, error) {
	return t.broadcast(op, func(int) any { return scalar }, true, true)
}

// ApplyEach applies op to every column with its own scalar.
func (t *Table) ApplyEach(op BinaryOp, scalars []any) (*Table, error) {
	if len(scalars) != len(t.columns) {
		return nil, invalidArgf("%s: %d scalars for %d columns", op, len(scalars), len(t.columns))
	}
	return t.broadcast(op, func(i int) any { return scalars[i] }, false, false)
}

// ApplyInPlace broadcasts scalar op over every numeric column, writing into
// them. Nothing is modified unless every column accepts the operation.
func (t *Table) ApplyInPlace(op BinaryOp, scalar any) error {
	staged, err := t.Apply(op, scalar)
	if err != nil {
		return err
	}
	for i, c := range staged.columns {
		if c.Type() != t.columns[i].Type() {
			return invalidArgf("in-place %s on %s column %q would produce %s", op, t.columns[i].Type(), c.Name(), c.Type())
		}
	}
	for _, c := range t.columns {
		if !c.Type().IsNumeric() {
			continue
		}
		if err := ApplyInPlace(op, c, scalar); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) broadcast(op BinaryOp, scalar func(int) any, reverse, numericOnly bool) (*Table, error) {
	out := &Table{columns: make([]Column, len(t.columns))}
	for i, c := range t.columns {
		if numericOnly && !c.Type().IsNumeric() {
			out.columns[i] = c.Clone()
			continue
		}
		var (
			r   Column
			err error
		)
		if reverse {
			r, err = ApplyReverse(op, c, scalar(i))
		} else {
			r, err = Apply(op, c, scalar(i))
		}
		if err != nil {
			return nil, err
		}
		r.SetName(c.Name())
		out.columns[i] = r
	}
	out.reindex()
	return out, nil
}

func columnAs[C Column](t *Table, name string) (C, error) {
	var zero C
	c, err := t.ColumnByName(name)
	if err != nil {
		return zero, err
	}
	typed, ok := c.(C)
	if !ok {
		return zero, notFoundf("column %q has type %s", name, c.Type())
	}
	return typed, nil
}

// NumericColumnOf returns the named column if it holds elements of type T.
func NumericColumnOf[T Number](t *Table, name string) (*NumericColumn[T], error) {
	return columnAs[*NumericColumn[T]](t, name)
}

// DecimalColumn returns the named column if it is a decimal column.
func (t *Table) DecimalColumn(name string) (*DecimalColumn, error) {
	return columnAs[*DecimalColumn](t, name)
}

// BoolColumn returns the named column if it is a boolean column.
func (t *Table) BoolColumn(name string) (*BoolColumn, error) {
	return columnAs[*BoolColumn](t, name)
}

// CharColumn returns the named column if it is a char column.
func (t *Table) CharColumn(name string) (*CharColumn, error) {
	return columnAs[*CharColumn](t, name)
}

// DateTimeColumn returns the named column if it is a date-time column.
func (t *Table) DateTimeColumn(name string) (*DateTimeColumn, error) {
	return columnAs[*DateTimeColumn](t, name)
}

// StringColumn returns the named column if it is a mutable text column.
func (t *Table) StringColumn(name string) (*StringColumn, error) {
	return columnAs[*StringColumn](t, name)
}

// ArrowStringColumn returns the named column if it is a buffer backed text column.
func (t *Table) ArrowStringColumn(name string) (*ArrowStringColumn, error) {
	return columnAs[*ArrowStringColumn](t, name)
}
