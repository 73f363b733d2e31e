package frame

import "slices"

// CharColumn stores single runes. Values come back from Get as rune (int32).
type CharColumn struct {
	baseColumn[rune]
}

var charOps = &elemOps[rune]{coerce: coerceChar, cmp: compareOrdered[rune]}

// NewCharColumn creates a column holding a copy of values, all valid.
func NewCharColumn(name string, values []rune) *CharColumn {
	return &CharColumn{newBase(name, slices.Clone(values), charOps)}
}

func (c *CharColumn) Type() DataType { return Char }

func (c *CharColumn) Clone() Column {
	return &CharColumn{c.cloneBase()}
}

func (c *CharColumn) Take(indices []int) Column {
	return &CharColumn{c.takeBase(indices)}
}

func (c *CharColumn) PadNulls(n int) Column {
	return &CharColumn{c.padBase(n)}
}

type charKey rune

func (c *CharColumn) key(i int) any {
	if c.IsNull(i) {
		return nullKey{}
	}
	return charKey(c.values[i])
}

func (c *CharColumn) aggregateType(kind AggKind) (DataType, error) {
	return orderedAggregateType(kind, Char)
}

func (c *CharColumn) aggregate(kind AggKind, rows []int) (any, error) {
	if v, ok := c.commonAggregate(kind, rows); ok {
		return v, nil
	}
	return nil, unsupportedf("%s over %s", kind, Char)
}

func (c *CharColumn) cumulative(kind AggKind, inPlace bool) (Column, error) {
	if kind != AggMax && kind != AggMin {
		return nil, unsupportedf("cumulative %s over %s", kind, Char)
	}
	dst := c
	if !inPlace {
		dst = &CharColumn{c.cloneBase()}
	}
	cumulate(&dst.baseColumn, extremumOf(kind, charOps.cmp))
	return dst, nil
}

func (c *CharColumn) fillNulls(v any, inPlace bool) (Column, error) {
	x, err := c.fillValue(v)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &CharColumn{c.cloneBase()}
	}
	fillInto(&dst.baseColumn, x)
	return dst, nil
}
