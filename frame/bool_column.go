package frame

import "slices"

// BoolColumn stores booleans. It supports logical operators and equality but
// no arithmetic.
type BoolColumn struct {
	baseColumn[bool]
}

var boolOps = &elemOps[bool]{
	coerce: coerceBool,
	cmp: func(a, b bool) int {
		switch {
		case a == b:
			return 0
		case !a:
			return -1
		default:
			return 1
		}
	},
}

// NewBoolColumn creates a column holding a copy of values, all valid.
func NewBoolColumn(name string, values []bool) *BoolColumn {
	return &BoolColumn{newBase(name, slices.Clone(values), boolOps)}
}

func (c *BoolColumn) Type() DataType { return Boolean }

func (c *BoolColumn) Clone() Column {
	return &BoolColumn{c.cloneBase()}
}

func (c *BoolColumn) Take(indices []int) Column {
	return &BoolColumn{c.takeBase(indices)}
}

func (c *BoolColumn) PadNulls(n int) Column {
	return &BoolColumn{c.padBase(n)}
}

func (c *BoolColumn) key(i int) any {
	if c.IsNull(i) {
		return nullKey{}
	}
	return c.values[i]
}

func (c *BoolColumn) aggregateType(kind AggKind) (DataType, error) {
	switch kind {
	case AggCount:
		return Int64, nil
	case AggFirst:
		return Boolean, nil
	}
	return 0, unsupportedf("%s over %s", kind, Boolean)
}

func (c *BoolColumn) aggregate(kind AggKind, rows []int) (any, error) {
	if kind == AggCount || kind == AggFirst {
		v, _ := c.commonAggregate(kind, rows)
		return v, nil
	}
	return nil, unsupportedf("%s over %s", kind, Boolean)
}

// Any reports whether at least one valid row is true.
func (c *BoolColumn) Any() bool {
	for i, v := range c.values {
		if v && c.validity.IsValid(i) {
			return true
		}
	}
	return false
}

// All reports whether every valid row is true.
func (c *BoolColumn) All() bool {
	for i, v := range c.values {
		if !v && c.validity.IsValid(i) {
			return false
		}
	}
	return true
}

func (c *BoolColumn) fillNulls(v any, inPlace bool) (Column, error) {
	x, err := c.fillValue(v)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &BoolColumn{c.cloneBase()}
	}
	fillInto(&dst.baseColumn, x)
	return dst, nil
}

// Any reports whether a boolean column holds at least one true value. Other
// column types are unsupported.
func Any(c Column) (bool, error) {
	b, ok := c.(*BoolColumn)
	if !ok {
		return false, unsupportedf("Any over %s", c.Type())
	}
	return b.Any(), nil
}

// All reports whether every valid value of a boolean column is true. Other
// column types are unsupported.
func All(c Column) (bool, error) {
	b, ok := c.(*BoolColumn)
	if !ok {
		return false, unsupportedf("All over %s", c.Type())
	}
	return b.All(), nil
}
