package frame

import (
	"iter"
)

// Column is a named, typed, fixed-length sequence of nullable values.
//
// The set of implementations is closed: NumericColumn[T] for the Go integer
// and float kinds, DecimalColumn, BoolColumn, CharColumn, DateTimeColumn,
// StringColumn and ArrowStringColumn.
type Column interface {
	Name() string
	SetName(name string)
	Type() DataType
	Len() int
	NullCount() int
	IsNull(i int) bool

	// Get returns the value at row i, or nil when the row is null.
	Get(i int) any
	// Set coerces v into the element type and stores it; nil stores a null.
	Set(i int, v any) error
	Append(v any) error
	AppendMany(v any, n int) error

	// Clone returns an independent copy.
	Clone() Column
	// Take returns a new column holding the rows at indices, in order.
	// An index of -1 produces a null row.
	Take(indices []int) Column
	// PadNulls returns a copy extended with n trailing nulls.
	PadNulls(n int) Column

	Values() iter.Seq2[int, any]

	// compareRows orders two non-null rows.
	compareRows(i, j int) int
	// key returns a hashable, cross-type normalised form of row i.
	key(i int) any
	aggregate(kind AggKind, rows []int) (any, error)
	aggregateType(kind AggKind) (DataType, error)
	// check reports whether v would be accepted by Set or Append.
	check(v any) error
}

// elemOps are the per element type behaviours a baseColumn delegates to.
type elemOps[T any] struct {
	coerce func(any) (T, bool, error)
	cmp    func(a, b T) int
}

// baseColumn holds the storage shared by every slice backed column.
type baseColumn[T any] struct {
	name     string
	values   []T
	validity NullBitmap
	ops      *elemOps[T]
}

func newBase[T any](name string, values []T, ops *elemOps[T]) baseColumn[T] {
	return baseColumn[T]{
		name:     name,
		values:   values,
		validity: NewNullBitmap(len(values)),
		ops:      ops,
	}
}

func newNullBase[T any](name string, n int, ops *elemOps[T]) baseColumn[T] {
	b := baseColumn[T]{name: name, values: make([]T, n), ops: ops}
	b.validity.AppendMany(false, n)
	return b
}

func (c *baseColumn[T]) Name() string        { return c.name }
func (c *baseColumn[T]) SetName(name string) { c.name = name }
func (c *baseColumn[T]) Len() int            { return len(c.values) }
func (c *baseColumn[T]) NullCount() int      { return c.validity.NullCount() }
func (c *baseColumn[T]) IsNull(i int) bool   { return !c.validity.IsValid(i) }

// Value returns the typed value at row i and whether it is valid.
func (c *baseColumn[T]) Value(i int) (T, bool) {
	return c.values[i], c.validity.IsValid(i)
}

// SetValue stores a valid value at row i.
func (c *baseColumn[T]) SetValue(i int, v T) {
	c.values[i] = v
	c.validity.Set(i, true)
}

// SetNull marks row i null.
func (c *baseColumn[T]) SetNull(i int) {
	var zero T
	c.values[i] = zero
	c.validity.Set(i, false)
}

// AppendValue appends a valid value.
func (c *baseColumn[T]) AppendValue(v T) {
	c.values = append(c.values, v)
	c.validity.Append(true)
}

// AppendNull appends a null row.
func (c *baseColumn[T]) AppendNull() {
	var zero T
	c.values = append(c.values, zero)
	c.validity.Append(false)
}

func (c *baseColumn[T]) Get(i int) any {
	if !c.validity.IsValid(i) {
		return nil
	}
	return c.values[i]
}

func (c *baseColumn[T]) Set(i int, v any) error {
	if i < 0 || i >= len(c.values) {
		return invalidArgf("column %q: row %d out of range [0, %d)", c.name, i, len(c.values))
	}
	x, valid, err := c.ops.coerce(v)
	if err != nil {
		return err
	}
	if valid {
		c.SetValue(i, x)
	} else {
		c.SetNull(i)
	}
	return nil
}

func (c *baseColumn[T]) Append(v any) error {
	return c.AppendMany(v, 1)
}

func (c *baseColumn[T]) AppendMany(v any, n int) error {
	if n < 0 {
		return invalidArgf("column %q: negative append count %d", c.name, n)
	}
	x, valid, err := c.ops.coerce(v)
	if err != nil {
		return err
	}
	for range n {
		c.values = append(c.values, x)
	}
	c.validity.AppendMany(valid, n)
	return nil
}

func (c *baseColumn[T]) compareRows(i, j int) int {
	return c.ops.cmp(c.values[i], c.values[j])
}

func (c *baseColumn[T]) check(v any) error {
	_, _, err := c.ops.coerce(v)
	return err
}

func (c *baseColumn[T]) Values() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := range c.values {
			if !yield(i, c.Get(i)) {
				return
			}
		}
	}
}

func (c *baseColumn[T]) cloneBase() baseColumn[T] {
	return baseColumn[T]{
		name:     c.name,
		values:   append([]T(nil), c.values...),
		validity: c.validity.Clone(),
		ops:      c.ops,
	}
}

func (c *baseColumn[T]) takeBase(indices []int) baseColumn[T] {
	out := baseColumn[T]{name: c.name, values: make([]T, len(indices)), ops: c.ops}
	for j, i := range indices {
		if i < 0 || !c.validity.IsValid(i) {
			out.validity.Append(false)
			continue
		}
		out.values[j] = c.values[i]
		out.validity.Append(true)
	}
	return out
}

func (c *baseColumn[T]) padBase(n int) baseColumn[T] {
	out := c.cloneBase()
	out.values = append(out.values, make([]T, n)...)
	out.validity.AppendMany(false, n)
	return out
}

// validRows returns the non-null rows among rows.
func (c *baseColumn[T]) validRows(rows []int) []T {
	out := make([]T, 0, len(rows))
	for _, i := range rows {
		if c.validity.IsValid(i) {
			out = append(out, c.values[i])
		}
	}
	return out
}

// NewColumn creates a column of the given type with n null rows.
func NewColumn(name string, dt DataType, n int) (Column, error) {
	switch dt {
	case Int8:
		return &NumericColumn[int8]{newNullBase(name, n, numericOps[int8]())}, nil
	case Int16:
		return &NumericColumn[int16]{newNullBase(name, n, numericOps[int16]())}, nil
	case Int32:
		return &NumericColumn[int32]{newNullBase(name, n, numericOps[int32]())}, nil
	case Int64:
		return &NumericColumn[int64]{newNullBase(name, n, numericOps[int64]())}, nil
	case UInt8:
		return &NumericColumn[uint8]{newNullBase(name, n, numericOps[uint8]())}, nil
	case UInt16:
		return &NumericColumn[uint16]{newNullBase(name, n, numericOps[uint16]())}, nil
	case UInt32:
		return &NumericColumn[uint32]{newNullBase(name, n, numericOps[uint32]())}, nil
	case UInt64:
		return &NumericColumn[uint64]{newNullBase(name, n, numericOps[uint64]())}, nil
	case Float32:
		return &NumericColumn[float32]{newNullBase(name, n, numericOps[float32]())}, nil
	case Float64:
		return &NumericColumn[float64]{newNullBase(name, n, numericOps[float64]())}, nil
	case Decimal:
		return &DecimalColumn{newNullBase(name, n, decimalOps)}, nil
	case Boolean:
		return &BoolColumn{newNullBase(name, n, boolOps)}, nil
	case Char:
		return &CharColumn{newNullBase(name, n, charOps)}, nil
	case DateTime:
		return &DateTimeColumn{newNullBase(name, n, timeOps)}, nil
	case String:
		return &StringColumn{newNullBase(name, n, stringOps)}, nil
	case ArrowString:
		c := &ArrowStringColumn{name: name, offsets: []int32{0}, owned: true}
		return c.PadNulls(n), nil
	}
	return nil, invalidArgf("unknown data type %s", dt)
}

func checkRow(c Column, i int) error {
	if i < 0 || i >= c.Len() {
		return invalidArgf("column %q: row %d out of range [0, %d)", c.Name(), i, c.Len())
	}
	return nil
}
