package frame

import "hash/maphash"

// GroupBy partitions the rows of a table by the values of its key columns.
// Groups are ordered by the first row carrying each distinct key and rows
// keep their table order within a group. Null keys form their own group.
type GroupBy struct {
	table   *Table
	keys    []string
	keyCols []Column
	groups  [][]int
}

// GroupBy partitions t by the named key columns.
func (t *Table) GroupBy(keys ...string) (*GroupBy, error) {
	if len(keys) == 0 {
		return nil, invalidArgf("group by: no key columns")
	}
	cols, err := keyColumns(t, keys)
	if err != nil {
		return nil, err
	}
	rk := newRowKeys(cols, maphash.MakeSeed())
	byHash := make(map[uint64][]int)
	var groups [][]int
	for r := 0; r < t.RowCount(); r++ {
		h := rk.hash(r)
		found := -1
		for _, g := range byHash[h] {
			if rk.equal(groups[g][0], rk, r) {
				found = g
				break
			}
		}
		if found < 0 {
			found = len(groups)
			groups = append(groups, nil)
			byHash[h] = append(byHash[h], found)
		}
		groups[found] = append(groups[found], r)
	}
	log().Debug("grouped table", "keys", keys, "rows", t.RowCount(), "groups", len(groups))
	return &GroupBy{table: t, keys: keys, keyCols: cols, groups: groups}, nil
}

// NumGroups returns the number of distinct keys.
func (g *GroupBy) NumGroups() int { return len(g.groups) }

// Groups returns the row indices of each group.
func (g *GroupBy) Groups() [][]int {
	out := make([][]int, len(g.groups))
	for i, rows := range g.groups {
		out[i] = append([]int(nil), rows...)
	}
	return out
}

// keyTable holds one row per group: the key values of its first row.
func (g *GroupBy) keyTable() *Table {
	first := make([]int, len(g.groups))
	for i, rows := range g.groups {
		first[i] = rows[0]
	}
	out := &Table{columns: make([]Column, len(g.keyCols))}
	for i, c := range g.keyCols {
		out.columns[i] = c.Take(first)
	}
	out.reindex()
	return out
}

func (g *GroupBy) isKey(name string) bool {
	for _, k := range g.keys {
		if k == name {
			return true
		}
	}
	return false
}

// targets resolves the columns to aggregate. Without names every non-key
// column whose type allows kind takes part; named columns must allow it.
func (g *GroupBy) targets(kind AggKind, names []string) ([]Column, error) {
	if len(names) == 0 {
		var out []Column
		for _, c := range g.table.columns {
			if g.isKey(c.Name()) {
				continue
			}
			if _, err := c.aggregateType(kind); err != nil {
				continue
			}
			out = append(out, c)
		}
		return out, nil
	}
	out := make([]Column, len(names))
	for i, name := range names {
		if g.isKey(name) {
			return nil, invalidArgf("group by: cannot aggregate key column %q", name)
		}
		c, err := g.table.ColumnByName(name)
		if err != nil {
			return nil, err
		}
		if _, err := c.aggregateType(kind); err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// aggregateColumn reduces every group of c into one row.
func (g *GroupBy) aggregateColumn(c Column, kind AggKind, name string) (Column, error) {
	dt, err := c.aggregateType(kind)
	if err != nil {
		return nil, err
	}
	out, err := NewColumn(name, dt, 0)
	if err != nil {
		return nil, err
	}
	for _, rows := range g.groups {
		v, err := c.aggregate(kind, rows)
		if err != nil {
			return nil, err
		}
		if err := out.Append(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Aggregate reduces the named columns, or every eligible non-key column,
// with kind. The result holds the key columns followed by one column per
// aggregated column, one row per group.
func (g *GroupBy) Aggregate(kind AggKind, columns ...string) (*Table, error) {
	cols, err := g.targets(kind, columns)
	if err != nil {
		return nil, err
	}
	out := g.keyTable()
	for _, c := range cols {
		agg, err := g.aggregateColumn(c, kind, c.Name())
		if err != nil {
			return nil, err
		}
		if err := out.Add(agg); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Count counts the non-null values per group.
func (g *GroupBy) Count(columns ...string) (*Table, error) { return g.Aggregate(AggCount, columns...) }

// First returns the first row's value per group, null included.
func (g *GroupBy) First(columns ...string) (*Table, error) { return g.Aggregate(AggFirst, columns...) }

// Sum adds the non-null values per group.
func (g *GroupBy) Sum(columns ...string) (*Table, error) { return g.Aggregate(AggSum, columns...) }

// Product multiplies the non-null values per group.
func (g *GroupBy) Product(columns ...string) (*Table, error) {
	return g.Aggregate(AggProduct, columns...)
}

// Max returns the largest non-null value per group.
func (g *GroupBy) Max(columns ...string) (*Table, error) { return g.Aggregate(AggMax, columns...) }

// Min returns the smallest non-null value per group.
func (g *GroupBy) Min(columns ...string) (*Table, error) { return g.Aggregate(AggMin, columns...) }

// Mean averages the non-null values per group.
func (g *GroupBy) Mean(columns ...string) (*Table, error) { return g.Aggregate(AggMean, columns...) }

// Median returns the middle non-null value per group.
func (g *GroupBy) Median(columns ...string) (*Table, error) {
	return g.Aggregate(AggMedian, columns...)
}

// Head returns up to n leading rows of every group, group after group.
func (g *GroupBy) Head(n int) *Table {
	var rows []int
	for _, grp := range g.groups {
		rows = append(rows, grp[:min(max(n, 0), len(grp))]...)
	}
	return g.table.Take(rows)
}

// Tail returns up to n trailing rows of every group, group after group.
func (g *GroupBy) Tail(n int) *Table {
	var rows []int
	for _, grp := range g.groups {
		rows = append(rows, grp[max(len(grp)-max(n, 0), 0):]...)
	}
	return g.table.Take(rows)
}
