package frame

import (
	"fmt"
	"iter"
	"slices"

	"github.com/pkg/errors"
)

type opcode int

const (
	opColumn opcode = iota
	opLiteral
	opBinary
	opNot
	opIsNull
	opIsNotNull
	opCast
	opAlias
	opAggregate
	opError
)

// Operation is one step of an expression program. Programs run on a stack:
// column and literal steps push, the others pop their inputs and push the
// result.
type Operation struct {
	opcode opcode
	name   string
	value  any
	binary BinaryOp
	dtype  DataType
	agg    AggKind
	err    error
}

// ExprNode contains a lazy sequence of operations to build an expression.
// Nodes are immutable; every builder returns a new node and a node may be
// evaluated any number of times.
type ExprNode struct {
	ops iter.Seq[Operation]
}

// Helper functions for iterator composition
func combine(iterators ...iter.Seq[Operation]) iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		for _, it := range iterators {
			if it == nil {
				continue
			}
			for op := range it {
				if !yield(op) {
					return
				}
			}
		}
	}
}

// single creates an iterator that yields a single operation
func single(op Operation) iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		yield(op)
	}
}

func errOpf(format string, args ...any) Operation {
	return Operation{opcode: opError, err: invalidArgf(format, args...)}
}

// countOps returns the number of operations in the expression (for testing)
func (e *ExprNode) countOps() int {
	count := 0
	for range e.ops {
		count++
	}
	return count
}

// Col references a column of the table the expression is evaluated against.
func Col(name string) *ExprNode {
	return &ExprNode{ops: single(Operation{opcode: opColumn, name: name})}
}

// Lit is a constant. A Go int literal adopts the type of the column it is
// combined with.
func Lit(value any) *ExprNode {
	if _, _, ok := scalarType(value); !ok {
		return &ExprNode{ops: single(errOpf("unsupported literal type: %T", value))}
	}
	return &ExprNode{ops: single(Operation{opcode: opLiteral, value: value})}
}

func (e *ExprNode) then(op Operation) *ExprNode {
	return &ExprNode{ops: combine(e.ops, single(op))}
}

func binOp(left, right *ExprNode, op BinaryOp) *ExprNode {
	return &ExprNode{ops: combine(left.ops, right.ops, single(Operation{opcode: opBinary, binary: op}))}
}

// Comparisons
func (e *ExprNode) Eq(right *ExprNode) *ExprNode { return binOp(e, right, OpEqual) }
func (e *ExprNode) Ne(right *ExprNode) *ExprNode { return binOp(e, right, OpNotEqual) }
func (e *ExprNode) Gt(right *ExprNode) *ExprNode { return binOp(e, right, OpGreater) }
func (e *ExprNode) Ge(right *ExprNode) *ExprNode { return binOp(e, right, OpGreaterEqual) }
func (e *ExprNode) Lt(right *ExprNode) *ExprNode { return binOp(e, right, OpLess) }
func (e *ExprNode) Le(right *ExprNode) *ExprNode { return binOp(e, right, OpLessEqual) }

// Arithmetic operations
func (e *ExprNode) Add(right *ExprNode) *ExprNode { return binOp(e, right, OpAdd) }
func (e *ExprNode) Sub(right *ExprNode) *ExprNode { return binOp(e, right, OpSubtract) }
func (e *ExprNode) Mul(right *ExprNode) *ExprNode { return binOp(e, right, OpMultiply) }
func (e *ExprNode) Div(right *ExprNode) *ExprNode { return binOp(e, right, OpDivide) }
func (e *ExprNode) Mod(right *ExprNode) *ExprNode { return binOp(e, right, OpModulo) }

// Boolean operations
func (e *ExprNode) And(right *ExprNode) *ExprNode { return binOp(e, right, OpAnd) }
func (e *ExprNode) Or(right *ExprNode) *ExprNode  { return binOp(e, right, OpOr) }
func (e *ExprNode) Xor(right *ExprNode) *ExprNode { return binOp(e, right, OpXor) }

func (e *ExprNode) Not() *ExprNode { return e.then(Operation{opcode: opNot}) }

// IsNull checks if values are null
func (e *ExprNode) IsNull() *ExprNode { return e.then(Operation{opcode: opIsNull}) }

// IsNotNull checks if values are not null
func (e *ExprNode) IsNotNull() *ExprNode { return e.then(Operation{opcode: opIsNotNull}) }

// Cast converts the expression to another element type.
func (e *ExprNode) Cast(dt DataType) *ExprNode {
	return e.then(Operation{opcode: opCast, dtype: dt})
}

// Alias adds an alias to the expression for naming computed columns
func (e *ExprNode) Alias(name string) *ExprNode {
	return e.then(Operation{opcode: opAlias, name: name})
}

func (e *ExprNode) aggregate(kind AggKind) *ExprNode {
	return e.then(Operation{opcode: opAggregate, agg: kind})
}

// Count counts non-null values (excludes nulls)
func (e *ExprNode) Count() *ExprNode { return e.aggregate(AggCount) }

// First gets the first value of the expression
func (e *ExprNode) First() *ExprNode { return e.aggregate(AggFirst) }

// Sum applies sum aggregation to the expression
func (e *ExprNode) Sum() *ExprNode { return e.aggregate(AggSum) }

// Product applies product aggregation to the expression
func (e *ExprNode) Product() *ExprNode { return e.aggregate(AggProduct) }

// Max applies max aggregation to the expression
func (e *ExprNode) Max() *ExprNode { return e.aggregate(AggMax) }

// Min applies min aggregation to the expression
func (e *ExprNode) Min() *ExprNode { return e.aggregate(AggMin) }

// Mean applies mean aggregation to the expression
func (e *ExprNode) Mean() *ExprNode { return e.aggregate(AggMean) }

// Median applies median aggregation to the expression
func (e *ExprNode) Median() *ExprNode { return e.aggregate(AggMedian) }

// String renders the operation program, one step per operation.
func (e *ExprNode) String() string {
	s := ""
	for op := range e.ops {
		if s != "" {
			s += " "
		}
		switch op.opcode {
		case opColumn:
			s += fmt.Sprintf("col(%s)", op.name)
		case opLiteral:
			s += fmt.Sprintf("lit(%v)", op.value)
		case opBinary:
			s += op.binary.String()
		case opNot:
			s += "Not"
		case opIsNull:
			s += "IsNull"
		case opIsNotNull:
			s += "IsNotNull"
		case opCast:
			s += "Cast(" + op.dtype.String() + ")"
		case opAlias:
			s += "Alias(" + op.name + ")"
		case opAggregate:
			s += op.agg.String()
		case opError:
			s += "error"
		}
	}
	return s
}

// slot is a value on the evaluation stack: a column, or a typed scalar
// produced by a literal or an aggregation.
type slot struct {
	col    Column
	scalar any
	dtype  DataType
	name   string
}

func (s slot) isScalar() bool { return s.col == nil }

// column materialises s as a column of n rows.
func (s slot) column(n int) (Column, error) {
	if !s.isScalar() {
		return s.col, nil
	}
	c, err := NewColumn(s.name, s.dtype, 0)
	if err != nil {
		return nil, err
	}
	if err := c.AppendMany(s.scalar, n); err != nil {
		return nil, err
	}
	return c, nil
}

// scalarOp applies fn to a one row column holding s and returns the result
// as a scalar.
func (s slot) scalarOp(fn func(Column) (Column, error)) (slot, error) {
	c, err := s.column(1)
	if err != nil {
		return slot{}, err
	}
	r, err := fn(c)
	if err != nil {
		return slot{}, err
	}
	return slot{scalar: r.Get(0), dtype: r.Type(), name: s.name}, nil
}

func (s slot) apply(fn func(Column) (Column, error)) (slot, error) {
	if s.isScalar() {
		return s.scalarOp(fn)
	}
	r, err := fn(s.col)
	if err != nil {
		return slot{}, err
	}
	return slot{col: r, dtype: r.Type(), name: r.Name()}, nil
}

// eval runs the expression against t.
func (e *ExprNode) eval(t *Table) (slot, error) {
	var stack []slot
	pop := func() (slot, error) {
		if len(stack) == 0 {
			return slot{}, invalidArgf("malformed expression %s", e)
		}
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return s, nil
	}
	for op := range e.ops {
		var (
			res slot
			err error
		)
		switch op.opcode {
		case opError:
			return slot{}, op.err
		case opColumn:
			var c Column
			if c, err = t.ColumnByName(op.name); err != nil {
				return slot{}, err
			}
			res = slot{col: c, dtype: c.Type(), name: c.Name()}
		case opLiteral:
			dt, _, _ := scalarType(op.value)
			res = slot{scalar: op.value, dtype: dt, name: "literal"}
		case opBinary:
			var l, r slot
			if r, err = pop(); err != nil {
				return slot{}, err
			}
			if l, err = pop(); err != nil {
				return slot{}, err
			}
			res, err = evalBinary(op.binary, l, r)
		default:
			var in slot
			if in, err = pop(); err != nil {
				return slot{}, err
			}
			res, err = evalUnary(op, in)
		}
		if err != nil {
			return slot{}, errors.Wrapf(err, "evaluating %s", e)
		}
		stack = append(stack, res)
	}
	if len(stack) != 1 {
		return slot{}, invalidArgf("malformed expression %s: %d results", e, len(stack))
	}
	return stack[0], nil
}

func evalBinary(op BinaryOp, l, r slot) (slot, error) {
	switch {
	case l.isScalar() && r.isScalar():
		return l.scalarOp(func(c Column) (Column, error) { return Apply(op, c, r.scalar) })
	case l.isScalar():
		return r.apply(func(c Column) (Column, error) { return ApplyReverse(op, c, l.scalar) })
	case r.isScalar():
		return l.apply(func(c Column) (Column, error) { return Apply(op, c, r.scalar) })
	default:
		return l.apply(func(c Column) (Column, error) { return Apply(op, c, r.col) })
	}
}

func evalUnary(op Operation, in slot) (slot, error) {
	switch op.opcode {
	case opNot:
		return in.apply(Not)
	case opIsNull:
		return in.apply(func(c Column) (Column, error) { return IsNullMask(c), nil })
	case opIsNotNull:
		return in.apply(func(c Column) (Column, error) { return Not(IsNullMask(c)) })
	case opCast:
		return in.apply(func(c Column) (Column, error) { return Cast(c, op.dtype) })
	case opAlias:
		if in.isScalar() {
			in.name = op.name
			return in, nil
		}
		c := in.col.Clone()
		c.SetName(op.name)
		return slot{col: c, dtype: c.Type(), name: op.name}, nil
	case opAggregate:
		if in.isScalar() {
			return slot{}, invalidArgf("%s of a scalar", op.agg)
		}
		dt, err := in.col.aggregateType(op.agg)
		if err != nil {
			return slot{}, err
		}
		v, err := Reduce(in.col, op.agg)
		if err != nil {
			return slot{}, err
		}
		return slot{scalar: v, dtype: dt, name: in.name}, nil
	}
	return slot{}, invalidArgf("unknown opcode %d", op.opcode)
}

// Evaluate computes expr over t. Scalar results are repeated for every row.
func (t *Table) Evaluate(expr *ExprNode) (Column, error) {
	s, err := expr.eval(t)
	if err != nil {
		return nil, err
	}
	return s.column(t.RowCount())
}

// Filter keeps the rows for which the boolean expression is true.
func (t *Table) Filter(expr *ExprNode) (*Table, error) {
	c, err := t.Evaluate(expr)
	if err != nil {
		return nil, err
	}
	mask, ok := c.(*BoolColumn)
	if !ok {
		return nil, invalidArgf("filter expression %s produces %s, want bool", expr, c.Type())
	}
	return t.FilterMask(mask)
}

// WithColumns returns a table extended by the evaluated expressions. A
// result named like an existing column replaces it.
func (t *Table) WithColumns(exprs ...*ExprNode) (*Table, error) {
	out := &Table{columns: slices.Clone(t.columns)}
	out.reindex()
	for _, expr := range exprs {
		c, err := t.Evaluate(expr)
		if err != nil {
			return nil, err
		}
		if i := out.IndexOf(c.Name()); i >= 0 {
			err = out.Replace(i, c)
		} else {
			err = out.Add(c)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Agg evaluates aggregation expressions for every group. The result holds
// the key columns followed by one column per expression.
func (g *GroupBy) Agg(exprs ...*ExprNode) (*Table, error) {
	out := g.keyTable()
	for _, expr := range exprs {
		c, err := g.evalGroups(expr)
		if err != nil {
			return nil, err
		}
		if err := out.Add(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *GroupBy) evalGroups(expr *ExprNode) (Column, error) {
	if len(g.groups) == 0 {
		s, err := expr.eval(g.table.Take(nil))
		if err != nil {
			return nil, err
		}
		return NewColumn(s.name, s.dtype, 0)
	}
	var out Column
	for _, rows := range g.groups {
		s, err := expr.eval(g.table.Take(rows))
		if err != nil {
			return nil, err
		}
		if !s.isScalar() {
			return nil, invalidArgf("group by: expression %s does not aggregate", expr)
		}
		if out == nil {
			if out, err = NewColumn(s.name, s.dtype, 0); err != nil {
				return nil, err
			}
		}
		if err := out.Append(s.scalar); err != nil {
			return nil, err
		}
	}
	return out, nil
}
