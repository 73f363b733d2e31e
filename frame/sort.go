package frame

import (
	"slices"
	"strings"
)

// SortField represents a column to sort by with direction and nulls ordering
type SortField struct {
	Column        string
	Direction     SortDirection
	NullsOrdering NullsOrdering
}

// SortDirection represents the sort order for a column
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// NullsOrdering represents how null values should be ordered
type NullsOrdering int

const (
	NullsLast NullsOrdering = iota
	NullsFirst
)

// Asc creates a SortField for ascending order with nulls last (default)
func Asc(column string) SortField {
	return SortField{Column: column, Direction: Ascending, NullsOrdering: NullsLast}
}

// Desc creates a SortField for descending order with nulls last (default)
func Desc(column string) SortField {
	return SortField{Column: column, Direction: Descending, NullsOrdering: NullsLast}
}

// AscNullsFirst creates a SortField for ascending order with nulls first
func AscNullsFirst(column string) SortField {
	return SortField{Column: column, Direction: Ascending, NullsOrdering: NullsFirst}
}

// DescNullsFirst creates a SortField for descending order with nulls first
func DescNullsFirst(column string) SortField {
	return SortField{Column: column, Direction: Descending, NullsOrdering: NullsFirst}
}

// String returns a string representation of the sort direction
func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the sort field
func (sf SortField) String() string {
	s := sf.Column + " " + sf.Direction.String()
	if sf.NullsOrdering == NullsFirst {
		s += " NULLS FIRST"
	}
	return s
}

type sortKey struct {
	col        Column
	descending bool
	nullsFirst bool
}

// compare orders rows i and j by one key. Null placement ignores direction.
func (k sortKey) compare(i, j int) int {
	in, jn := k.col.IsNull(i), k.col.IsNull(j)
	switch {
	case in && jn:
		return 0
	case in != jn:
		if in == k.nullsFirst {
			return -1
		}
		return 1
	}
	d := k.col.compareRows(i, j)
	if k.descending {
		return -d
	}
	return d
}

// permutation returns the stable row order for keys.
func permutation(n int, keys []sortKey) []int {
	perm := seq(0, n)
	slices.SortStableFunc(perm, func(i, j int) int {
		for _, k := range keys {
			if d := k.compare(i, j); d != 0 {
				return d
			}
		}
		return 0
	})
	return perm
}

// SortColumn returns a sorted copy of c. The sort is stable and nulls go to
// the tail in either direction.
func SortColumn(c Column, ascending bool) Column {
	return c.Take(permutation(c.Len(), []sortKey{{col: c, descending: !ascending}}))
}

// Sort returns the table ordered by the named column, nulls last.
func (t *Table) Sort(name string, ascending bool) (*Table, error) {
	if ascending {
		return t.SortBy(Asc(name))
	}
	return t.SortBy(Desc(name))
}

// SortBy returns the table ordered by fields, the first field most
// significant. Rows that tie on every field keep their relative order.
func (t *Table) SortBy(fields ...SortField) (*Table, error) {
	if len(fields) == 0 {
		return nil, invalidArgf("sort: no sort fields")
	}
	keys := make([]sortKey, len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		c, err := t.ColumnByName(f.Column)
		if err != nil {
			return nil, err
		}
		keys[i] = sortKey{col: c, descending: f.Direction == Descending, nullsFirst: f.NullsOrdering == NullsFirst}
		names[i] = f.String()
	}
	log().Debug("sorting table", "rows", t.RowCount(), "by", strings.Join(names, ", "))
	return t.Take(permutation(t.RowCount(), keys)), nil
}
