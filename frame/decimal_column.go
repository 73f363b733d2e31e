package frame

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DecimalColumn stores exact decimal values.
type DecimalColumn struct {
	baseColumn[decimal.Decimal]
}

var decimalOps = &elemOps[decimal.Decimal]{
	coerce: coerceDecimal,
	cmp:    func(a, b decimal.Decimal) int { return a.Cmp(b) },
}

// NewDecimalColumn creates a column holding a copy of values, all valid.
func NewDecimalColumn(name string, values []decimal.Decimal) *DecimalColumn {
	return &DecimalColumn{newBase(name, slices.Clone(values), decimalOps)}
}

func (c *DecimalColumn) Type() DataType { return Decimal }

func (c *DecimalColumn) Clone() Column {
	return &DecimalColumn{c.cloneBase()}
}

func (c *DecimalColumn) Take(indices []int) Column {
	return &DecimalColumn{c.takeBase(indices)}
}

func (c *DecimalColumn) PadNulls(n int) Column {
	return &DecimalColumn{c.padBase(n)}
}

func (c *DecimalColumn) key(i int) any {
	if c.IsNull(i) {
		return nullKey{}
	}
	return decimalKey(c.values[i])
}

func (c *DecimalColumn) castTo(dt DataType) (Column, error) {
	if dt == Decimal {
		return c, nil
	}
	if dt.IsFloat() {
		out, _ := NewColumn(c.name, dt, 0)
		for i, v := range c.values {
			if c.validity.IsValid(i) {
				_ = out.Append(v.InexactFloat64())
			} else {
				_ = out.Append(nil)
			}
		}
		return out, nil
	}
	return castViaValues(c, dt)
}

func (c *DecimalColumn) aggregateType(kind AggKind) (DataType, error) {
	if kind == AggCount {
		return Int64, nil
	}
	return Decimal, nil
}

func (c *DecimalColumn) aggregate(kind AggKind, rows []int) (any, error) {
	if v, ok := c.commonAggregate(kind, rows); ok {
		return v, nil
	}
	vals := c.validRows(rows)
	if len(vals) == 0 {
		return nil, nil
	}
	switch kind {
	case AggSum:
		return decimal.Sum(vals[0], vals[1:]...), nil
	case AggProduct:
		p := decimal.NewFromInt(1)
		for _, v := range vals {
			p = p.Mul(v)
		}
		return p, nil
	case AggMean:
		return decimal.Avg(vals[0], vals[1:]...), nil
	case AggMedian:
		slices.SortFunc(vals, decimalOps.cmp)
		mid := len(vals) / 2
		if len(vals)%2 == 1 {
			return vals[mid], nil
		}
		return vals[mid-1].Add(vals[mid]).Div(decimal.NewFromInt(2)), nil
	}
	return nil, unsupportedf("%s over %s", kind, Decimal)
}

func (c *DecimalColumn) cumulative(kind AggKind, inPlace bool) (Column, error) {
	dst := c
	if !inPlace {
		dst = &DecimalColumn{c.cloneBase()}
	}
	switch kind {
	case AggSum:
		cumulate(&dst.baseColumn, decimal.Decimal.Add)
	case AggProduct:
		cumulate(&dst.baseColumn, decimal.Decimal.Mul)
	case AggMax, AggMin:
		cumulate(&dst.baseColumn, extremumOf(kind, decimalOps.cmp))
	default:
		return nil, unsupportedf("cumulative %s over %s", kind, Decimal)
	}
	return dst, nil
}

func (c *DecimalColumn) abs(inPlace bool) Column {
	dst := c
	if !inPlace {
		dst = &DecimalColumn{c.cloneBase()}
	}
	for i, v := range dst.values {
		dst.values[i] = v.Abs()
	}
	return dst
}

func (c *DecimalColumn) round(places int32, inPlace bool) Column {
	dst := c
	if !inPlace {
		dst = &DecimalColumn{c.cloneBase()}
	}
	for i, v := range dst.values {
		dst.values[i] = v.Round(places)
	}
	return dst
}

func (c *DecimalColumn) clamp(lo, hi any, inPlace bool) (Column, error) {
	l, h, err := c.clampBounds(lo, hi)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &DecimalColumn{c.cloneBase()}
	}
	clampInto(&dst.baseColumn, l, h)
	return dst, nil
}

func (c *DecimalColumn) fillNulls(v any, inPlace bool) (Column, error) {
	x, err := c.fillValue(v)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &DecimalColumn{c.cloneBase()}
	}
	fillInto(&dst.baseColumn, x)
	return dst, nil
}
