package frame

// Info summarises every column: its element type and the number of non-null
// values. The first column labels the rows.
func (t *Table) Info() *Table {
	labels := NewStringColumn("Info", []string{"DataType", "Length (excluding null values)"})
	out := &Table{columns: []Column{labels}}
	for _, c := range t.columns {
		nonNull := int64(c.Len() - c.NullCount())
		col := NewStringColumn(c.Name(), []string{c.Type().String(), formatValue(nonNull)})
		out.columns = append(out.columns, col)
	}
	out.reindex()
	return out
}

var descriptionRows = []string{"Length (excluding null values)", "Max", "Min", "Mean"}

// Description reports count, max, min and mean for every numeric column as
// float64. Columns without valid values report nulls.
func (t *Table) Description() (*Table, error) {
	out := &Table{columns: []Column{NewStringColumn("Description", descriptionRows)}}
	for _, c := range t.columns {
		if !c.Type().IsNumeric() {
			continue
		}
		col := &Float64Column{newBase(c.Name(), make([]float64, 0, len(descriptionRows)), numericOps[float64]())}
		col.AppendValue(float64(c.Len() - c.NullCount()))
		for _, kind := range []AggKind{AggMax, AggMin, AggMean} {
			v, err := Reduce(c, kind)
			if err != nil {
				return nil, err
			}
			if f, ok := asFloat(v); ok {
				col.AppendValue(f)
			} else {
				col.AppendNull()
			}
		}
		out.columns = append(out.columns, col)
	}
	out.reindex()
	return out, nil
}

// asFloat widens a numeric aggregate result to float64.
func asFloat(v any) (float64, bool) {
	n, ok := toNum(v)
	if !ok {
		return 0, false
	}
	switch n.kind {
	case numSigned:
		return float64(n.i), true
	case numUnsigned:
		return float64(n.u), true
	case numDecimal:
		return n.d.InexactFloat64(), true
	}
	return n.f, true
}

// ValueCounts counts the occurrences of each distinct value of c, nulls
// included, in first-seen order. The result has the columns Values and Counts.
func ValueCounts(c Column) (*Table, error) {
	idx := make(map[any]int)
	var first []int
	var counts []int64
	for r := 0; r < c.Len(); r++ {
		k := c.key(r)
		g, ok := idx[k]
		if !ok {
			g = len(first)
			idx[k] = g
			first = append(first, r)
			counts = append(counts, 0)
		}
		counts[g]++
	}
	values := c.Take(first)
	values.SetName("Values")
	return NewTable(values, NewNumericColumn("Counts", counts))
}
