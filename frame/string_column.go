package frame

import (
	"slices"
	"strings"
)

// StringColumn stores mutable per-row strings.
type StringColumn struct {
	baseColumn[string]
}

var stringOps = &elemOps[string]{coerce: coerceString, cmp: strings.Compare}

// textColumn is implemented by both text representations.
type textColumn interface {
	Column
	stringAt(i int) string
}

// NewStringColumn creates a column holding a copy of values, all valid.
func NewStringColumn(name string, values []string) *StringColumn {
	return &StringColumn{newBase(name, slices.Clone(values), stringOps)}
}

func (c *StringColumn) Type() DataType { return String }

func (c *StringColumn) Clone() Column {
	return &StringColumn{c.cloneBase()}
}

func (c *StringColumn) Take(indices []int) Column {
	return &StringColumn{c.takeBase(indices)}
}

func (c *StringColumn) PadNulls(n int) Column {
	return &StringColumn{c.padBase(n)}
}

func (c *StringColumn) stringAt(i int) string { return c.values[i] }

func (c *StringColumn) key(i int) any {
	if c.IsNull(i) {
		return nullKey{}
	}
	return c.values[i]
}

func (c *StringColumn) aggregateType(kind AggKind) (DataType, error) {
	return textAggregateType(kind, String)
}

func (c *StringColumn) aggregate(kind AggKind, rows []int) (any, error) {
	return textAggregate(c, kind, rows)
}

// Apply rewrites every row in place, like NumericColumn.Apply.
func (c *StringColumn) Apply(fn func(s string, valid bool) (string, bool)) {
	for i := range c.values {
		v, ok := fn(c.values[i], c.validity.IsValid(i))
		if ok {
			c.SetValue(i, v)
		} else {
			c.SetNull(i)
		}
	}
}

func (c *StringColumn) fillNulls(v any, inPlace bool) (Column, error) {
	x, err := c.fillValue(v)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &StringColumn{c.cloneBase()}
	}
	fillInto(&dst.baseColumn, x)
	return dst, nil
}

func textAggregateType(kind AggKind, dt DataType) (DataType, error) {
	switch kind {
	case AggCount:
		return Int64, nil
	case AggFirst:
		return dt, nil
	}
	return 0, notImplementedf("%s over %s", kind, dt)
}

func textAggregate(c textColumn, kind AggKind, rows []int) (any, error) {
	switch kind {
	case AggCount:
		var n int64
		for _, i := range rows {
			if !c.IsNull(i) {
				n++
			}
		}
		return n, nil
	case AggFirst:
		if len(rows) == 0 {
			return nil, nil
		}
		return c.Get(rows[0]), nil
	}
	return nil, notImplementedf("%s over %s", kind, c.Type())
}
