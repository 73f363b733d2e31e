package frame

// AggKind names a reduction over a set of rows.
type AggKind int

const (
	AggCount AggKind = iota
	AggFirst
	AggSum
	AggProduct
	AggMax
	AggMin
	AggMean
	AggMedian
)

func (k AggKind) String() string {
	switch k {
	case AggCount:
		return "Count"
	case AggFirst:
		return "First"
	case AggSum:
		return "Sum"
	case AggProduct:
		return "Product"
	case AggMax:
		return "Max"
	case AggMin:
		return "Min"
	case AggMean:
		return "Mean"
	case AggMedian:
		return "Median"
	default:
		return "Unknown"
	}
}

// commonAggregate answers Count, First, Max and Min for any ordered column.
func (c *baseColumn[T]) commonAggregate(kind AggKind, rows []int) (any, bool) {
	switch kind {
	case AggCount:
		var n int64
		for _, i := range rows {
			if c.validity.IsValid(i) {
				n++
			}
		}
		return n, true
	case AggFirst:
		if len(rows) == 0 {
			return nil, true
		}
		return c.Get(rows[0]), true
	case AggMax, AggMin:
		best := -1
		for _, i := range rows {
			if !c.validity.IsValid(i) {
				continue
			}
			if best < 0 {
				best = i
				continue
			}
			d := c.ops.cmp(c.values[i], c.values[best])
			if (kind == AggMax && d > 0) || (kind == AggMin && d < 0) {
				best = i
			}
		}
		if best < 0 {
			return nil, true
		}
		return c.values[best], true
	}
	return nil, false
}

func orderedAggregateType(kind AggKind, dt DataType) (DataType, error) {
	switch kind {
	case AggCount:
		return Int64, nil
	case AggFirst, AggMax, AggMin:
		return dt, nil
	}
	return 0, unsupportedf("%s over %s", kind, dt)
}

// cumulate replaces every valid row with the running combination of the
// valid rows up to it. Nulls stay null and do not reset the running value.
func cumulate[T any](c *baseColumn[T], combine func(acc, v T) T) {
	var acc T
	started := false
	for i, v := range c.values {
		if !c.validity.IsValid(i) {
			continue
		}
		if started {
			acc = combine(acc, v)
		} else {
			acc, started = v, true
		}
		c.values[i] = acc
	}
}

func extremumOf[T any](kind AggKind, cmp func(a, b T) int) func(acc, v T) T {
	return func(acc, v T) T {
		d := cmp(v, acc)
		if (kind == AggMax && d > 0) || (kind == AggMin && d < 0) {
			return v
		}
		return acc
	}
}

func (c *baseColumn[T]) clampBounds(lo, hi any) (T, T, error) {
	var zero T
	l, lok, err := c.ops.coerce(lo)
	if err != nil {
		return zero, zero, err
	}
	h, hok, err := c.ops.coerce(hi)
	if err != nil {
		return zero, zero, err
	}
	if !lok || !hok {
		return zero, zero, invalidArgf("column %q: bounds must not be null", c.name)
	}
	if c.ops.cmp(l, h) > 0 {
		return zero, zero, invalidArgf("column %q: lower bound %v above upper bound %v", c.name, lo, hi)
	}
	return l, h, nil
}

func clampInto[T any](c *baseColumn[T], lo, hi T) {
	for i, v := range c.values {
		if !c.validity.IsValid(i) {
			continue
		}
		if c.ops.cmp(v, lo) < 0 {
			c.values[i] = lo
		} else if c.ops.cmp(v, hi) > 0 {
			c.values[i] = hi
		}
	}
}

// rangeRows returns the valid rows whose value lies in [lo, hi].
func (c *baseColumn[T]) rangeRows(lo, hi any) ([]int, error) {
	l, h, err := c.clampBounds(lo, hi)
	if err != nil {
		return nil, err
	}
	rows := []int{}
	for i, v := range c.values {
		if c.validity.IsValid(i) && c.ops.cmp(v, l) >= 0 && c.ops.cmp(v, h) <= 0 {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

func (c *baseColumn[T]) fillValue(v any) (T, error) {
	x, ok, err := c.ops.coerce(v)
	if err != nil {
		return x, err
	}
	if !ok {
		return x, invalidArgf("column %q: fill value must not be null", c.name)
	}
	return x, nil
}

func fillInto[T any](c *baseColumn[T], v T) {
	for i := range c.values {
		if !c.validity.IsValid(i) {
			c.SetValue(i, v)
		}
	}
}

// castViaValues converts through Get/Append, the slow path for casts with no
// dedicated kernel.
func castViaValues(c Column, dt DataType) (Column, error) {
	out, err := NewColumn(c.Name(), dt, 0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < c.Len(); i++ {
		v := c.Get(i)
		if r, ok := v.(rune); ok && c.Type() == Char && dt.IsText() {
			v = string(r)
		}
		if err := out.Append(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type caster interface {
	castTo(dt DataType) (Column, error)
}

// Cast converts a column to another element type. Numeric columns convert
// natively; other conversions go through each value and fail with a
// conversion error on the first value that does not fit.
func Cast(c Column, dt DataType) (Column, error) {
	if c.Type() == dt {
		return c.Clone(), nil
	}
	if cc, ok := c.(caster); ok {
		return cc.castTo(dt)
	}
	return castViaValues(c, dt)
}

type promoter interface {
	promoteTo(dt DataType) (Column, error)
}

func castOperand(c Column, dt DataType) (Column, error) {
	if c.Type() == dt {
		return c, nil
	}
	if p, ok := c.(promoter); ok {
		return p.promoteTo(dt)
	}
	return Cast(c, dt)
}

// Reduce aggregates every row of c. The result is nil when no valid value
// takes part.
func Reduce(c Column, kind AggKind) (any, error) {
	if _, err := c.aggregateType(kind); err != nil {
		return nil, err
	}
	rows := make([]int, c.Len())
	for i := range rows {
		rows[i] = i
	}
	return c.aggregate(kind, rows)
}

// Sum adds the valid values of c.
func Sum(c Column) (any, error) { return Reduce(c, AggSum) }

// Product multiplies the valid values of c.
func Product(c Column) (any, error) { return Reduce(c, AggProduct) }

// Max returns the largest valid value of c.
func Max(c Column) (any, error) { return Reduce(c, AggMax) }

// Min returns the smallest valid value of c.
func Min(c Column) (any, error) { return Reduce(c, AggMin) }

// Mean averages the valid values of c: float64, or decimal for decimal columns.
func Mean(c Column) (any, error) { return Reduce(c, AggMean) }

// Median returns the middle valid value of c, averaging the two middle values
// for even counts.
func Median(c Column) (any, error) { return Reduce(c, AggMedian) }

type cumulativeColumn interface {
	cumulative(kind AggKind, inPlace bool) (Column, error)
}

// Cumulative returns the running Sum, Product, Max or Min of c. Nulls stay null.
func Cumulative(c Column, kind AggKind) (Column, error) {
	return applyCumulative(c, kind, false)
}

// CumulativeInPlace is Cumulative writing into c.
func CumulativeInPlace(c Column, kind AggKind) error {
	_, err := applyCumulative(c, kind, true)
	return err
}

func applyCumulative(c Column, kind AggKind, inPlace bool) (Column, error) {
	cc, ok := c.(cumulativeColumn)
	if !ok {
		if c.Type().IsText() {
			return nil, notImplementedf("cumulative %s over %s", kind, c.Type())
		}
		return nil, unsupportedf("cumulative %s over %s", kind, c.Type())
	}
	return cc.cumulative(kind, inPlace)
}

type mathColumn interface {
	abs(inPlace bool) Column
	round(places int32, inPlace bool) Column
	clamp(lo, hi any, inPlace bool) (Column, error)
}

func asMath(c Column, op string) (mathColumn, error) {
	mc, ok := c.(mathColumn)
	if !ok {
		return nil, unsupportedf("%s over %s", op, c.Type())
	}
	return mc, nil
}

// Abs returns the absolute values of a numeric column.
func Abs(c Column) (Column, error) {
	mc, err := asMath(c, "Abs")
	if err != nil {
		return nil, err
	}
	return mc.abs(false), nil
}

// AbsInPlace is Abs writing into c.
func AbsInPlace(c Column) error {
	mc, err := asMath(c, "Abs")
	if err != nil {
		return err
	}
	mc.abs(true)
	return nil
}

// Round rounds float and decimal values to the given number of decimal
// places. Integer columns are returned unchanged.
func Round(c Column, places int32) (Column, error) {
	mc, err := asMath(c, "Round")
	if err != nil {
		return nil, err
	}
	return mc.round(places, false), nil
}

// Clamp bounds every valid value of a numeric column to [lo, hi].
func Clamp(c Column, lo, hi any) (Column, error) {
	mc, err := asMath(c, "Clamp")
	if err != nil {
		return nil, err
	}
	return mc.clamp(lo, hi, false)
}

// ClampInPlace is Clamp writing into c.
func ClampInPlace(c Column, lo, hi any) error {
	mc, err := asMath(c, "Clamp")
	if err != nil {
		return err
	}
	_, err = mc.clamp(lo, hi, true)
	return err
}

type rangeColumn interface {
	rangeRows(lo, hi any) ([]int, error)
}

// FilterColumn returns the valid values of c within [lo, hi], in order.
func FilterColumn(c Column, lo, hi any) (Column, error) {
	rc, ok := c.(rangeColumn)
	if !ok {
		return nil, unsupportedf("range filter over %s", c.Type())
	}
	rows, err := rc.rangeRows(lo, hi)
	if err != nil {
		return nil, err
	}
	return c.Take(rows), nil
}

type fillColumn interface {
	fillNulls(v any, inPlace bool) (Column, error)
}

// FillNulls returns a copy of c with every null replaced by v.
func FillNulls(c Column, v any) (Column, error) {
	return c.(fillColumn).fillNulls(v, false)
}

// FillNullsInPlace replaces every null of c with v.
func FillNullsInPlace(c Column, v any) error {
	_, err := c.(fillColumn).fillNulls(v, true)
	return err
}
