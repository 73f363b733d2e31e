package frame

import (
	"math"
	"slices"

	"github.com/pkg/errors"
)

// NumericColumn stores one of the fixed-width Go integer or float kinds.
type NumericColumn[T Number] struct {
	baseColumn[T]
}

// Shorthands for the ten numeric instantiations.
type (
	Int8Column    = NumericColumn[int8]
	Int16Column   = NumericColumn[int16]
	Int32Column   = NumericColumn[int32]
	Int64Column   = NumericColumn[int64]
	UInt8Column   = NumericColumn[uint8]
	UInt16Column  = NumericColumn[uint16]
	UInt32Column  = NumericColumn[uint32]
	UInt64Column  = NumericColumn[uint64]
	Float32Column = NumericColumn[float32]
	Float64Column = NumericColumn[float64]
)

func numericOps[T Number]() *elemOps[T] {
	return &elemOps[T]{coerce: coerceNumeric[T], cmp: compareOrdered[T]}
}

// NewNumericColumn creates a column holding a copy of values, all valid.
func NewNumericColumn[T Number](name string, values []T) *NumericColumn[T] {
	return &NumericColumn[T]{newBase(name, slices.Clone(values), numericOps[T]())}
}

// NewNumericColumnWithNulls creates a column from values and a validity bitmap
// of the same length.
func NewNumericColumnWithNulls[T Number](name string, values []T, validity NullBitmap) (*NumericColumn[T], error) {
	if validity.Len() != len(values) {
		return nil, invalidArgf("column %q: %d values but validity covers %d rows", name, len(values), validity.Len())
	}
	c := NewNumericColumn(name, values)
	c.validity = validity.Clone()
	return c, nil
}

func (c *NumericColumn[T]) Type() DataType { return dataTypeOf[T]() }

func (c *NumericColumn[T]) Clone() Column {
	return &NumericColumn[T]{c.cloneBase()}
}

func (c *NumericColumn[T]) Take(indices []int) Column {
	return &NumericColumn[T]{c.takeBase(indices)}
}

func (c *NumericColumn[T]) PadNulls(n int) Column {
	return &NumericColumn[T]{c.padBase(n)}
}

func (c *NumericColumn[T]) key(i int) any {
	if c.IsNull(i) {
		return nullKey{}
	}
	v := c.values[i]
	dt := c.Type()
	switch {
	case dt.IsFloat():
		return floatKey(float64(v))
	case dt.IsSigned():
		return int64(v)
	default:
		if u := uint64(v); u > math.MaxInt64 {
			return u
		}
		return int64(v)
	}
}

// Apply rewrites every row in place. fn receives the value and its validity
// and returns the new pair; the null count follows the returned validity.
func (c *NumericColumn[T]) Apply(fn func(v T, valid bool) (T, bool)) {
	for i := range c.values {
		v, ok := fn(c.values[i], c.validity.IsValid(i))
		if ok {
			c.SetValue(i, v)
		} else {
			c.SetNull(i)
		}
	}
}

// Map converts every valid value with fn into a new column of element type R.
// Nulls stay null.
func Map[T, R Number](c *NumericColumn[T], name string, fn func(T) R) *NumericColumn[R] {
	out := &NumericColumn[R]{newNullBase(name, c.Len(), numericOps[R]())}
	for i, v := range c.values {
		if c.validity.IsValid(i) {
			out.SetValue(i, fn(v))
		}
	}
	return out
}

// convertNumeric converts every valid value to R. checked conversions fail
// with ErrConversion on the first value an integer R cannot hold; unchecked
// ones follow Go's conversion rules.
func convertNumeric[S, R Number](c *NumericColumn[S], checked bool) (Column, error) {
	if !checked || dataTypeOf[R]().IsFloat() {
		return Map(c, c.name, func(v S) R { return R(v) }), nil
	}
	out := &NumericColumn[R]{newNullBase(c.name, c.Len(), numericOps[R]())}
	for i, v := range c.values {
		if !c.validity.IsValid(i) {
			continue
		}
		n, _ := toNum(v)
		r, err := numAs[R](n)
		if err != nil {
			return nil, errors.Wrapf(err, "casting column %q row %d", c.name, i)
		}
		out.SetValue(i, r)
	}
	return out, nil
}

// castTo converts the column to another numeric, decimal or text type.
// Values that do not fit an integer target fail with ErrConversion.
func (c *NumericColumn[T]) castTo(dt DataType) (Column, error) {
	return c.convert(dt, true)
}

// promoteTo brings a binary operand to the promoted type. It never fails on
// range, so mixed-sign arithmetic wraps like the native integer types.
func (c *NumericColumn[T]) promoteTo(dt DataType) (Column, error) {
	return c.convert(dt, false)
}

func (c *NumericColumn[T]) convert(dt DataType, checked bool) (Column, error) {
	if dt == c.Type() {
		return c, nil
	}
	switch dt {
	case Int8:
		return convertNumeric[T, int8](c, checked)
	case Int16:
		return convertNumeric[T, int16](c, checked)
	case Int32:
		return convertNumeric[T, int32](c, checked)
	case Int64:
		return convertNumeric[T, int64](c, checked)
	case UInt8:
		return convertNumeric[T, uint8](c, checked)
	case UInt16:
		return convertNumeric[T, uint16](c, checked)
	case UInt32:
		return convertNumeric[T, uint32](c, checked)
	case UInt64:
		return convertNumeric[T, uint64](c, checked)
	case Float32:
		return convertNumeric[T, float32](c, checked)
	case Float64:
		return convertNumeric[T, float64](c, checked)
	case Decimal:
		out := &DecimalColumn{newNullBase(c.name, c.Len(), decimalOps)}
		for i, v := range c.values {
			if c.validity.IsValid(i) {
				n, _ := toNum(v)
				out.SetValue(i, numToDecimal(n))
			}
		}
		return out, nil
	}
	return castViaValues(c, dt)
}

func (c *NumericColumn[T]) aggregateType(kind AggKind) (DataType, error) {
	switch kind {
	case AggCount:
		return Int64, nil
	case AggMean, AggMedian:
		return Float64, nil
	}
	return c.Type(), nil
}

func (c *NumericColumn[T]) aggregate(kind AggKind, rows []int) (any, error) {
	if v, ok := c.commonAggregate(kind, rows); ok {
		return v, nil
	}
	vals := c.validRows(rows)
	if len(vals) == 0 {
		return nil, nil
	}
	switch kind {
	case AggSum:
		var s T
		for _, v := range vals {
			s += v
		}
		return s, nil
	case AggProduct:
		p := T(1)
		for _, v := range vals {
			p *= v
		}
		return p, nil
	case AggMean:
		var s float64
		for _, v := range vals {
			s += float64(v)
		}
		return s / float64(len(vals)), nil
	case AggMedian:
		slices.SortFunc(vals, compareOrdered[T])
		mid := len(vals) / 2
		if len(vals)%2 == 1 {
			return float64(vals[mid]), nil
		}
		return (float64(vals[mid-1]) + float64(vals[mid])) / 2, nil
	}
	return nil, unsupportedf("%s over %s", kind, c.Type())
}

func (c *NumericColumn[T]) cumulative(kind AggKind, inPlace bool) (Column, error) {
	dst := c
	if !inPlace {
		dst = &NumericColumn[T]{c.cloneBase()}
	}
	switch kind {
	case AggSum:
		cumulate(&dst.baseColumn, func(acc, v T) T { return acc + v })
	case AggProduct:
		cumulate(&dst.baseColumn, func(acc, v T) T { return acc * v })
	case AggMax, AggMin:
		cumulate(&dst.baseColumn, extremumOf(kind, compareOrdered[T]))
	default:
		return nil, unsupportedf("cumulative %s over %s", kind, c.Type())
	}
	return dst, nil
}

func (c *NumericColumn[T]) abs(inPlace bool) Column {
	dst := c
	if !inPlace {
		dst = &NumericColumn[T]{c.cloneBase()}
	}
	for i, v := range dst.values {
		if v < 0 {
			dst.values[i] = -v
		}
	}
	return dst
}

func (c *NumericColumn[T]) round(places int32, inPlace bool) Column {
	dst := c
	if !inPlace {
		dst = &NumericColumn[T]{c.cloneBase()}
	}
	if !c.Type().IsFloat() {
		return dst
	}
	scale := math.Pow10(int(places))
	for i, v := range dst.values {
		if dst.validity.IsValid(i) {
			dst.values[i] = T(math.Round(float64(v)*scale) / scale)
		}
	}
	return dst
}

func (c *NumericColumn[T]) clamp(lo, hi any, inPlace bool) (Column, error) {
	l, h, err := c.clampBounds(lo, hi)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &NumericColumn[T]{c.cloneBase()}
	}
	clampInto(&dst.baseColumn, l, h)
	return dst, nil
}

func (c *NumericColumn[T]) fillNulls(v any, inPlace bool) (Column, error) {
	x, err := c.fillValue(v)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &NumericColumn[T]{c.cloneBase()}
	}
	fillInto(&dst.baseColumn, x)
	return dst, nil
}
