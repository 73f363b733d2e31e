package frame

import (
	"slices"
	"time"
)

// DateTimeColumn stores instants. It supports equality and ordering only.
type DateTimeColumn struct {
	baseColumn[time.Time]
}

var timeOps = &elemOps[time.Time]{
	coerce: coerceTime,
	cmp:    func(a, b time.Time) int { return a.Compare(b) },
}

// NewDateTimeColumn creates a column holding a copy of values, all valid.
func NewDateTimeColumn(name string, values []time.Time) *DateTimeColumn {
	return &DateTimeColumn{newBase(name, slices.Clone(values), timeOps)}
}

func (c *DateTimeColumn) Type() DataType { return DateTime }

func (c *DateTimeColumn) Clone() Column {
	return &DateTimeColumn{c.cloneBase()}
}

func (c *DateTimeColumn) Take(indices []int) Column {
	return &DateTimeColumn{c.takeBase(indices)}
}

func (c *DateTimeColumn) PadNulls(n int) Column {
	return &DateTimeColumn{c.padBase(n)}
}

// timeKey identifies an instant independent of its location.
type timeKey struct {
	sec  int64
	nsec int
}

func (c *DateTimeColumn) key(i int) any {
	if c.IsNull(i) {
		return nullKey{}
	}
	t := c.values[i]
	return timeKey{sec: t.Unix(), nsec: t.Nanosecond()}
}

func (c *DateTimeColumn) aggregateType(kind AggKind) (DataType, error) {
	return orderedAggregateType(kind, DateTime)
}

func (c *DateTimeColumn) aggregate(kind AggKind, rows []int) (any, error) {
	if v, ok := c.commonAggregate(kind, rows); ok {
		return v, nil
	}
	return nil, unsupportedf("%s over %s", kind, DateTime)
}

func (c *DateTimeColumn) cumulative(kind AggKind, inPlace bool) (Column, error) {
	if kind != AggMax && kind != AggMin {
		return nil, unsupportedf("cumulative %s over %s", kind, DateTime)
	}
	dst := c
	if !inPlace {
		dst = &DateTimeColumn{c.cloneBase()}
	}
	cumulate(&dst.baseColumn, extremumOf(kind, timeOps.cmp))
	return dst, nil
}

func (c *DateTimeColumn) fillNulls(v any, inPlace bool) (Column, error) {
	x, err := c.fillValue(v)
	if err != nil {
		return nil, err
	}
	dst := c
	if !inPlace {
		dst = &DateTimeColumn{c.cloneBase()}
	}
	fillInto(&dst.baseColumn, x)
	return dst, nil
}
