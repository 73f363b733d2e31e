package frame

import "hash/maphash"

// JoinType represents the type of join operation
type JoinType int

const (
	JoinTypeInner JoinType = iota
	JoinTypeLeft
	JoinTypeRight
	JoinTypeOuter // full outer join
	JoinTypeCross
)

func (jt JoinType) String() string {
	switch jt {
	case JoinTypeInner:
		return "inner"
	case JoinTypeLeft:
		return "left"
	case JoinTypeRight:
		return "right"
	case JoinTypeOuter:
		return "outer"
	case JoinTypeCross:
		return "cross"
	default:
		return "unknown"
	}
}

// Default suffixes appended to column names present on both sides of a join.
const (
	DefaultLeftSuffix  = "_left"
	DefaultRightSuffix = "_right"
)

// JoinSpec represents the specification for a join operation
type JoinSpec struct {
	leftOn      []string
	rightOn     []string
	joinType    JoinType
	leftSuffix  string
	rightSuffix string
}

// On creates a JoinSpec for joining on the same column names in both tables
func On(columns ...string) JoinSpec {
	return JoinSpec{
		leftOn:      columns,
		rightOn:     columns,
		joinType:    JoinTypeInner,
		leftSuffix:  DefaultLeftSuffix,
		rightSuffix: DefaultRightSuffix,
	}
}

// LeftOn creates a JoinSpec builder for specifying different left and right columns
func LeftOn(columns ...string) JoinSpecBuilder {
	spec := On()
	spec.leftOn = columns
	return JoinSpecBuilder{spec: spec}
}

// JoinSpecBuilder allows building join specifications with differing key names
type JoinSpecBuilder struct {
	spec JoinSpec
}

// RightOn specifies the right-side columns for the join
func (b JoinSpecBuilder) RightOn(columns ...string) JoinSpec {
	b.spec.rightOn = columns
	return b.spec
}

// WithType sets the join type
func (spec JoinSpec) WithType(joinType JoinType) JoinSpec {
	spec.joinType = joinType
	return spec
}

// WithSuffixes sets the suffixes for column names present on both sides
func (spec JoinSpec) WithSuffixes(left, right string) JoinSpec {
	spec.leftSuffix, spec.rightSuffix = left, right
	return spec
}

// Type returns the join type of the spec.
func (spec JoinSpec) Type() JoinType { return spec.joinType }

// joinIndex pairs output rows with source rows; -1 stands for a null row.
type joinIndex struct {
	left, right []int
}

func (ji *joinIndex) emit(l, r int) {
	ji.left = append(ji.left, l)
	ji.right = append(ji.right, r)
}

func keyColumns(t *Table, names []string) ([]Column, error) {
	cols := make([]Column, len(names))
	for i, name := range names {
		c, err := t.ColumnByName(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

// Merge joins t with right on equal key tuples. A key tuple matches when
// every component is equal; a null component equals only another null.
// Every matching pair yields a row, so duplicate keys expand to their
// cartesian product.
func (t *Table) Merge(right *Table, spec JoinSpec) (*Table, error) {
	if spec.joinType == JoinTypeCross {
		return t.CrossJoin(right)
	}
	if len(spec.leftOn) == 0 {
		return nil, invalidArgf("merge: no join keys")
	}
	if len(spec.leftOn) != len(spec.rightOn) {
		return nil, invalidArgf("merge: %d left keys and %d right keys", len(spec.leftOn), len(spec.rightOn))
	}
	lcols, err := keyColumns(t, spec.leftOn)
	if err != nil {
		return nil, err
	}
	rcols, err := keyColumns(right, spec.rightOn)
	if err != nil {
		return nil, err
	}

	seed := maphash.MakeSeed()
	lkeys, rkeys := newRowKeys(lcols, seed), newRowKeys(rcols, seed)
	var ji joinIndex
	switch spec.joinType {
	case JoinTypeInner, JoinTypeLeft, JoinTypeOuter:
		idx := buildKeyIndex(rkeys, right.RowCount())
		matched := make([]bool, right.RowCount())
		for l := 0; l < t.RowCount(); l++ {
			rows := idx.lookup(lkeys, l)
			if len(rows) == 0 && spec.joinType != JoinTypeInner {
				ji.emit(l, -1)
			}
			for _, r := range rows {
				ji.emit(l, r)
				matched[r] = true
			}
		}
		if spec.joinType == JoinTypeOuter {
			for r, m := range matched {
				if !m {
					ji.emit(-1, r)
				}
			}
		}
	case JoinTypeRight:
		idx := buildKeyIndex(lkeys, t.RowCount())
		for r := 0; r < right.RowCount(); r++ {
			rows := idx.lookup(rkeys, r)
			if len(rows) == 0 {
				ji.emit(-1, r)
			}
			for _, l := range rows {
				ji.emit(l, r)
			}
		}
	default:
		return nil, invalidArgf("merge: unknown join type %d", spec.joinType)
	}

	log().Debug("merged tables",
		"type", spec.joinType,
		"keys", len(spec.leftOn),
		"left_rows", t.RowCount(),
		"right_rows", right.RowCount(),
		"out_rows", len(ji.left))
	return t.assemble(right, ji, spec.leftSuffix, spec.rightSuffix)
}

// assemble materialises the join output: left columns then right columns,
// with names present on both sides suffixed.
func (t *Table) assemble(right *Table, ji joinIndex, leftSuffix, rightSuffix string) (*Table, error) {
	out := &Table{index: map[string]int{}}
	add := func(src *Table, other *Table, rows []int, suffix string) error {
		for _, c := range src.columns {
			taken := c.Take(rows)
			if other.IndexOf(c.Name()) >= 0 {
				taken.SetName(c.Name() + suffix)
			}
			if err := out.Add(taken); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(t, right, ji.left, leftSuffix); err != nil {
		return nil, err
	}
	if err := add(right, t, ji.right, rightSuffix); err != nil {
		return nil, err
	}
	return out, nil
}

// InnerJoin merges with right on the same key names, keeping matches only.
func (t *Table) InnerJoin(right *Table, on ...string) (*Table, error) {
	return t.Merge(right, On(on...).WithType(JoinTypeInner))
}

// LeftJoin merges with right on the same key names, keeping every left row.
func (t *Table) LeftJoin(right *Table, on ...string) (*Table, error) {
	return t.Merge(right, On(on...).WithType(JoinTypeLeft))
}

// RightJoin merges with right on the same key names, keeping every right row.
func (t *Table) RightJoin(right *Table, on ...string) (*Table, error) {
	return t.Merge(right, On(on...).WithType(JoinTypeRight))
}

// OuterJoin merges with right on the same key names, keeping every row of
// both sides.
func (t *Table) OuterJoin(right *Table, on ...string) (*Table, error) {
	return t.Merge(right, On(on...).WithType(JoinTypeOuter))
}

// Join aligns t and right by row position. Left keeps t's row count, Right
// keeps right's, Inner the shorter and Outer the longer; the side without a
// row at a position contributes nulls.
func (t *Table) Join(right *Table, jt JoinType) (*Table, error) {
	n, m := t.RowCount(), right.RowCount()
	var rows int
	switch jt {
	case JoinTypeLeft:
		rows = n
	case JoinTypeRight:
		rows = m
	case JoinTypeInner:
		rows = min(n, m)
	case JoinTypeOuter:
		rows = max(n, m)
	case JoinTypeCross:
		return t.CrossJoin(right)
	default:
		return nil, invalidArgf("join: unknown join type %d", jt)
	}
	var ji joinIndex
	for i := 0; i < rows; i++ {
		l, r := i, i
		if l >= n {
			l = -1
		}
		if r >= m {
			r = -1
		}
		ji.emit(l, r)
	}
	return t.assemble(right, ji, DefaultLeftSuffix, DefaultRightSuffix)
}

// CrossJoin pairs every row of t with every row of right.
func (t *Table) CrossJoin(right *Table) (*Table, error) {
	n, m := t.RowCount(), right.RowCount()
	ji := joinIndex{left: make([]int, 0, n*m), right: make([]int, 0, n*m)}
	for l := 0; l < n; l++ {
		for r := 0; r < m; r++ {
			ji.emit(l, r)
		}
	}
	return t.assemble(right, ji, DefaultLeftSuffix, DefaultRightSuffix)
}
