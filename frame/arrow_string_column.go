package frame

import (
	"bytes"
	"iter"
	"slices"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ArrowStringColumn is an immutable text column laid out like an arrow
// string array: one contiguous byte buffer, int32 offsets (length+1 entries)
// and a validity bitmap. Rows can be appended but not overwritten.
type ArrowStringColumn struct {
	name     string
	data     []byte
	offsets  []int32
	validity NullBitmap
	// owned is false while data and offsets alias caller memory.
	owned bool
}

// NewArrowStringColumn wraps the given buffers without copying them. validity
// is an LSB ordered bitmap, nil meaning every row is valid.
func NewArrowStringColumn(name string, data []byte, offsets []int32, validity []byte, length int) (*ArrowStringColumn, error) {
	switch {
	case length < 0:
		return nil, invalidArgf("arrow string column %q: negative length %d", name, length)
	case len(offsets) < length+1:
		return nil, invalidArgf("arrow string column %q: %d offsets for %d rows", name, len(offsets), length)
	case int(offsets[length]) > len(data):
		return nil, invalidArgf("arrow string column %q: offset %d beyond %d data bytes", name, offsets[length], len(data))
	case validity != nil && len(validity)*8 < length:
		return nil, invalidArgf("arrow string column %q: validity covers %d of %d rows", name, len(validity)*8, length)
	}
	return &ArrowStringColumn{
		name:     name,
		data:     data,
		offsets:  offsets[:length+1],
		validity: NullBitmapFromBytes(validity, 0, length),
	}, nil
}

// ArrowStringColumnFrom copies an arrow string array into a new column.
func ArrowStringColumnFrom(name string, arr *array.String) *ArrowStringColumn {
	n := arr.Len()
	if n == 0 {
		return &ArrowStringColumn{name: name, offsets: []int32{0}, owned: true}
	}
	offs := arr.ValueOffsets()
	base := offs[0]
	out := &ArrowStringColumn{
		name:     name,
		data:     slices.Clone(arr.ValueBytes()),
		offsets:  make([]int32, n+1),
		validity: NullBitmapFromBytes(arr.NullBitmapBytes(), arr.Data().Offset(), n),
		owned:    true,
	}
	if arr.NullN() == 0 {
		out.validity = NewNullBitmap(n)
	}
	for i, o := range offs[:n+1] {
		out.offsets[i] = o - base
	}
	return out
}

// ToArrow exports the column as an arrow string array allocated from mem.
// The caller owns the result and must Release it.
func (c *ArrowStringColumn) ToArrow(mem memory.Allocator) *array.String {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Reserve(c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			b.AppendNull()
			continue
		}
		b.Append(c.stringAt(i))
	}
	return b.NewStringArray()
}

func (c *ArrowStringColumn) Name() string        { return c.name }
func (c *ArrowStringColumn) SetName(name string) { c.name = name }
func (c *ArrowStringColumn) Type() DataType      { return ArrowString }
func (c *ArrowStringColumn) Len() int            { return len(c.offsets) - 1 }
func (c *ArrowStringColumn) NullCount() int      { return c.validity.NullCount() }
func (c *ArrowStringColumn) IsNull(i int) bool   { return !c.validity.IsValid(i) }

func (c *ArrowStringColumn) bytesAt(i int) []byte {
	return c.data[c.offsets[i]:c.offsets[i+1]]
}

func (c *ArrowStringColumn) stringAt(i int) string {
	return string(c.bytesAt(i))
}

// Value returns the string at row i and whether it is valid.
func (c *ArrowStringColumn) Value(i int) (string, bool) {
	if c.IsNull(i) {
		return "", false
	}
	return c.stringAt(i), true
}

func (c *ArrowStringColumn) Get(i int) any {
	if c.IsNull(i) {
		return nil
	}
	return c.stringAt(i)
}

func (c *ArrowStringColumn) Set(i int, v any) error {
	return unsupportedf("arrow string column %q is immutable", c.name)
}

func (c *ArrowStringColumn) Append(v any) error {
	return c.AppendMany(v, 1)
}

func (c *ArrowStringColumn) AppendMany(v any, n int) error {
	if n < 0 {
		return invalidArgf("column %q: negative append count %d", c.name, n)
	}
	s, valid, err := coerceString(v)
	if err != nil {
		return err
	}
	c.own()
	for range n {
		if valid {
			c.data = append(c.data, s...)
		}
		c.offsets = append(c.offsets, int32(len(c.data)))
	}
	c.validity.AppendMany(valid, n)
	return nil
}

// own copies aliased buffers before the first write.
func (c *ArrowStringColumn) own() {
	if c.owned {
		return
	}
	c.data = slices.Clone(c.data[:c.offsets[len(c.offsets)-1]])
	c.offsets = slices.Clone(c.offsets)
	c.owned = true
}

func (c *ArrowStringColumn) check(any) error { return nil }

func (c *ArrowStringColumn) Values() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := 0; i < c.Len(); i++ {
			if !yield(i, c.Get(i)) {
				return
			}
		}
	}
}

func (c *ArrowStringColumn) Clone() Column {
	return &ArrowStringColumn{
		name:     c.name,
		data:     slices.Clone(c.data[:c.offsets[len(c.offsets)-1]]),
		offsets:  slices.Clone(c.offsets),
		validity: c.validity.Clone(),
		owned:    true,
	}
}

func (c *ArrowStringColumn) Take(indices []int) Column {
	out := &ArrowStringColumn{name: c.name, offsets: make([]int32, 1, len(indices)+1), owned: true}
	for _, i := range indices {
		if i >= 0 && !c.IsNull(i) {
			out.data = append(out.data, c.bytesAt(i)...)
			out.validity.Append(true)
		} else {
			out.validity.Append(false)
		}
		out.offsets = append(out.offsets, int32(len(out.data)))
	}
	return out
}

func (c *ArrowStringColumn) PadNulls(n int) Column {
	out := c.Clone().(*ArrowStringColumn)
	_ = out.AppendMany(nil, n)
	return out
}

func (c *ArrowStringColumn) compareRows(i, j int) int {
	return bytes.Compare(c.bytesAt(i), c.bytesAt(j))
}

func (c *ArrowStringColumn) key(i int) any {
	if c.IsNull(i) {
		return nullKey{}
	}
	return c.stringAt(i)
}

func (c *ArrowStringColumn) aggregateType(kind AggKind) (DataType, error) {
	return textAggregateType(kind, ArrowString)
}

func (c *ArrowStringColumn) aggregate(kind AggKind, rows []int) (any, error) {
	return textAggregate(c, kind, rows)
}

// Apply returns a new column with fn applied to every row.
func (c *ArrowStringColumn) Apply(fn func(s string, valid bool) (string, bool)) *ArrowStringColumn {
	out := &ArrowStringColumn{name: c.name, offsets: make([]int32, 1, len(c.offsets)), owned: true}
	for i := 0; i < c.Len(); i++ {
		s, ok := fn(c.Value(i))
		if ok {
			out.data = append(out.data, s...)
		}
		out.offsets = append(out.offsets, int32(len(out.data)))
		out.validity.Append(ok)
	}
	return out
}

func (c *ArrowStringColumn) fillNulls(v any, inPlace bool) (Column, error) {
	if inPlace {
		return nil, unsupportedf("arrow string column %q is immutable", c.name)
	}
	s, valid, err := coerceString(v)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, invalidArgf("fill value must not be null")
	}
	return c.Apply(func(v string, ok bool) (string, bool) {
		if !ok {
			return s, true
		}
		return v, true
	}), nil
}
