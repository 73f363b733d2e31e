package frame

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Apply evaluates left op right elementwise. right is either a Column of the
// same length or a scalar; a nil scalar is a null of the column's type.
func Apply(op BinaryOp, left Column, right any) (Column, error) {
	return binary(op, left, right, false, false)
}

// ApplyInPlace is Apply writing the result into left. It fails with
// ErrInvalidArgument when the result type differs from left's type, so only
// boolean columns take an in-place comparison.
func ApplyInPlace(op BinaryOp, left Column, right any) error {
	_, err := binary(op, left, right, false, true)
	return err
}

// ApplyReverse evaluates scalar op c elementwise.
func ApplyReverse(op BinaryOp, c Column, scalar any) (Column, error) {
	return binary(op, c, scalar, true, false)
}

// ApplyReverseInPlace is ApplyReverse writing the result into c.
func ApplyReverseInPlace(op BinaryOp, c Column, scalar any) error {
	_, err := binary(op, c, scalar, true, true)
	return err
}

func Add(left Column, right any) (Column, error)      { return Apply(OpAdd, left, right) }
func Subtract(left Column, right any) (Column, error) { return Apply(OpSubtract, left, right) }
func Multiply(left Column, right any) (Column, error) { return Apply(OpMultiply, left, right) }
func Divide(left Column, right any) (Column, error)   { return Apply(OpDivide, left, right) }
func Modulo(left Column, right any) (Column, error)   { return Apply(OpModulo, left, right) }
func And(left Column, right any) (Column, error)      { return Apply(OpAnd, left, right) }
func Or(left Column, right any) (Column, error)       { return Apply(OpOr, left, right) }
func Xor(left Column, right any) (Column, error)      { return Apply(OpXor, left, right) }

func LeftShift(left Column, n any) (Column, error)  { return Apply(OpLeftShift, left, n) }
func RightShift(left Column, n any) (Column, error) { return Apply(OpRightShift, left, n) }

func Equal(left Column, right any) (Column, error)        { return Apply(OpEqual, left, right) }
func NotEqual(left Column, right any) (Column, error)     { return Apply(OpNotEqual, left, right) }
func Greater(left Column, right any) (Column, error)      { return Apply(OpGreater, left, right) }
func GreaterEqual(left Column, right any) (Column, error) { return Apply(OpGreaterEqual, left, right) }
func Less(left Column, right any) (Column, error)         { return Apply(OpLess, left, right) }
func LessEqual(left Column, right any) (Column, error)    { return Apply(OpLessEqual, left, right) }

// operand is the right hand side of a binary kernel.
type operand struct {
	col    Column
	scalar any
}

func (o operand) isScalar() bool { return o.col == nil }

func binary(op BinaryOp, col Column, other any, reverse, inPlace bool) (Column, error) {
	rhs := operand{}
	otherType := col.Type()
	if oc, ok := other.(Column); ok {
		if reverse {
			return nil, invalidArgf("reverse %s takes a scalar, got column %q", op, oc.Name())
		}
		if oc.Len() != col.Len() {
			return nil, invalidArgf("%s: column %q has %d rows, column %q has %d", op, col.Name(), col.Len(), oc.Name(), oc.Len())
		}
		rhs.col, otherType = oc, oc.Type()
	} else if other != nil {
		dt, untyped, ok := scalarType(other)
		switch {
		case !ok:
			return nil, invalidArgf("%s: unsupported scalar type %T", op, other)
		case col.Type().IsText() && (op == OpAdd || op.IsComparison()):
			dt = String
		case untyped && col.Type().IsNumeric() && fitsType(other, col.Type()):
			dt = col.Type()
		case dt != col.Type() && !col.Type().IsNumeric() && !col.Type().IsText() && col.check(other) == nil:
			// bool, char and date-time columns read compatible scalars
			// ('a', "2024-01-02") as their own type
			dt = col.Type()
		}
		rhs.scalar, otherType = other, dt
	}

	l, r := col.Type(), otherType
	if reverse {
		l, r = r, l
	}
	opType, result, err := resolve(op, l, r)
	if err != nil {
		return nil, err
	}
	if inPlace && result != col.Type() {
		return nil, invalidArgf("in-place %s on %s column %q would produce %s", op, col.Type(), col.Name(), result)
	}
	if inPlace && op.IsComparison() {
		// only a boolean column can hold its own comparison result
		out, err := binary(op, col, other, reverse, false)
		if err != nil {
			return nil, err
		}
		b := col.(*BoolColumn)
		for i, v := range out.(*BoolColumn).values {
			b.SetValue(i, v)
		}
		return b, nil
	}

	if opType == String {
		return textBinary(op, col.(textColumn), rhs, reverse, inPlace)
	}

	a, err := castOperand(col, opType)
	if err != nil {
		return nil, err
	}
	if !rhs.isScalar() {
		if rhs.col, err = castOperand(rhs.col, opType); err != nil {
			return nil, err
		}
	}

	var dst Column
	switch {
	case op.IsComparison():
	case inPlace:
		dst = col
	case a != col:
		dst = a
	default:
		dst = a.Clone()
	}

	switch x := a.(type) {
	case *NumericColumn[int8]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[int16]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[int32]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[int64]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[uint8]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[uint16]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[uint32]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[uint64]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[float32]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *NumericColumn[float64]:
		return numericBinary(op, x, rhs, reverse, dst)
	case *DecimalColumn:
		return decimalBinary(op, x, rhs, reverse, dst)
	case *BoolColumn:
		return boolBinary(op, x, rhs, reverse, dst)
	case *DateTimeColumn:
		right, err := baseOperand(rhs, coerceTime, (*DateTimeColumn).Value)
		if err != nil {
			return nil, err
		}
		return compareKernel(op, x.name, x.Len(), x.Value, right, reverse, cmpPred(op, timeOps.cmp)), nil
	case *CharColumn:
		right, err := baseOperand(rhs, coerceChar, (*CharColumn).Value)
		if err != nil {
			return nil, err
		}
		return compareKernel(op, x.name, x.Len(), x.Value, right, reverse, cmpPred(op, charOps.cmp)), nil
	}
	return nil, unsupportedf("%s over %s", op, a.Type())
}

func fitsType(v any, dt DataType) bool {
	c, err := NewColumn("", dt, 0)
	if err != nil {
		return false
	}
	return c.check(v) == nil
}

// baseOperand turns rhs into a row accessor for element type T. C is the
// concrete column type the right hand column was cast to.
func baseOperand[T any, C Column](rhs operand, coerce func(any) (T, bool, error), value func(C, int) (T, bool)) (func(int) (T, bool), error) {
	if !rhs.isScalar() {
		rc := rhs.col.(C)
		return func(i int) (T, bool) { return value(rc, i) }, nil
	}
	v, ok, err := coerce(rhs.scalar)
	if err != nil {
		return nil, err
	}
	return func(int) (T, bool) { return v, ok }, nil
}

// compareKernel evaluates a comparison row by row. Equal treats two nulls as
// equal; ordering comparisons involving a null are false.
func compareKernel[T any](op BinaryOp, name string, n int, left, right func(int) (T, bool), reverse bool, pred func(x, y T) bool) *BoolColumn {
	out := &BoolColumn{newBase(name, make([]bool, n), boolOps)}
	for i := 0; i < n; i++ {
		x, xok := left(i)
		y, yok := right(i)
		if reverse {
			x, y, xok, yok = y, x, yok, xok
		}
		switch {
		case xok && yok:
			out.values[i] = pred(x, y)
		case op == OpEqual:
			out.values[i] = !xok && !yok
		case op == OpNotEqual:
			out.values[i] = xok != yok
		}
	}
	return out
}

func orderedPred[T constraints.Ordered](op BinaryOp) func(x, y T) bool {
	switch op {
	case OpEqual:
		return func(x, y T) bool { return x == y }
	case OpNotEqual:
		return func(x, y T) bool { return x != y }
	case OpGreater:
		return func(x, y T) bool { return x > y }
	case OpGreaterEqual:
		return func(x, y T) bool { return x >= y }
	case OpLess:
		return func(x, y T) bool { return x < y }
	default:
		return func(x, y T) bool { return x <= y }
	}
}

func cmpPred[T any](op BinaryOp, cmp func(x, y T) int) func(x, y T) bool {
	return func(x, y T) bool {
		d := cmp(x, y)
		switch op {
		case OpEqual:
			return d == 0
		case OpNotEqual:
			return d != 0
		case OpGreater:
			return d > 0
		case OpGreaterEqual:
			return d >= 0
		case OpLess:
			return d < 0
		default:
			return d <= 0
		}
	}
}

func numericBinary[T Number](op BinaryOp, a *NumericColumn[T], rhs operand, reverse bool, dst Column) (Column, error) {
	right, err := baseOperand(rhs, coerceNumeric[T], (*NumericColumn[T]).Value)
	if err != nil {
		return nil, err
	}
	if op.IsComparison() {
		return compareKernel(op, a.name, a.Len(), a.Value, right, reverse, orderedPred[T](op)), nil
	}
	if op.IsShift() && rhs.isScalar() && !reverse {
		if n, ok := right(0); ok && n < 0 {
			return nil, invalidArgf("%s by negative count %v", op, n)
		}
	}
	d := dst.(*NumericColumn[T])
	dt := a.Type()
	for i := range a.values {
		x, xok := a.Value(i)
		y, yok := right(i)
		if reverse {
			x, y = y, x
		}
		if !xok || !yok {
			d.SetNull(i)
			continue
		}
		if v, ok := arith(op, dt, x, y); ok {
			d.SetValue(i, v)
		} else {
			d.SetNull(i)
		}
	}
	return d, nil
}

// arith applies one arithmetic or shift operator. ok is false when the
// result is undefined for the type: integer division or modulo by zero and
// negative shift counts.
func arith[T Number](op BinaryOp, dt DataType, x, y T) (T, bool) {
	switch op {
	case OpAdd:
		return x + y, true
	case OpSubtract:
		return x - y, true
	case OpMultiply:
		return x * y, true
	case OpDivide:
		if y == 0 && !dt.IsFloat() {
			return 0, false
		}
		return x / y, true
	case OpModulo:
		switch {
		case dt.IsFloat():
			return T(math.Mod(float64(x), float64(y))), true
		case y == 0:
			return 0, false
		case dt.IsSigned():
			return T(int64(x) % int64(y)), true
		default:
			return T(uint64(x) % uint64(y)), true
		}
	case OpLeftShift, OpRightShift:
		if y < 0 {
			return 0, false
		}
		n := uint64(y)
		switch {
		case op == OpLeftShift && dt.IsSigned():
			return T(int64(x) << n), true
		case op == OpLeftShift:
			return T(uint64(x) << n), true
		case dt.IsSigned():
			return T(int64(x) >> n), true
		default:
			return T(uint64(x) >> n), true
		}
	}
	return 0, false
}

func decimalBinary(op BinaryOp, a *DecimalColumn, rhs operand, reverse bool, dst Column) (Column, error) {
	right, err := baseOperand(rhs, coerceDecimal, (*DecimalColumn).Value)
	if err != nil {
		return nil, err
	}
	if op.IsComparison() {
		return compareKernel(op, a.name, a.Len(), a.Value, right, reverse, cmpPred(op, decimalOps.cmp)), nil
	}
	d := dst.(*DecimalColumn)
	for i := range a.values {
		x, xok := a.Value(i)
		y, yok := right(i)
		if reverse {
			x, y = y, x
		}
		if !xok || !yok {
			d.SetNull(i)
			continue
		}
		var v decimal.Decimal
		switch op {
		case OpAdd:
			v = x.Add(y)
		case OpSubtract:
			v = x.Sub(y)
		case OpMultiply:
			v = x.Mul(y)
		case OpDivide, OpModulo:
			if y.IsZero() {
				d.SetNull(i)
				continue
			}
			if op == OpDivide {
				v = x.Div(y)
			} else {
				v = x.Mod(y)
			}
		}
		d.SetValue(i, v)
	}
	return d, nil
}

func boolBinary(op BinaryOp, a *BoolColumn, rhs operand, reverse bool, dst Column) (Column, error) {
	right, err := baseOperand(rhs, coerceBool, (*BoolColumn).Value)
	if err != nil {
		return nil, err
	}
	if op.IsComparison() {
		return compareKernel(op, a.name, a.Len(), a.Value, right, reverse, cmpPred(op, boolOps.cmp)), nil
	}
	d := dst.(*BoolColumn)
	for i := range a.values {
		x, xok := a.Value(i)
		y, yok := right(i)
		if !xok || !yok {
			d.SetNull(i)
			continue
		}
		switch op {
		case OpAnd:
			d.SetValue(i, x && y)
		case OpOr:
			d.SetValue(i, x || y)
		default:
			d.SetValue(i, x != y)
		}
	}
	return d, nil
}

// textBinary handles concatenation and comparison for both text columns.
// Non-text scalars take part through their string form.
func textBinary(op BinaryOp, a textColumn, rhs operand, reverse, inPlace bool) (Column, error) {
	left := func(i int) (string, bool) {
		if a.IsNull(i) {
			return "", false
		}
		return a.stringAt(i), true
	}
	var right func(int) (string, bool)
	if rhs.isScalar() {
		s, ok, _ := coerceString(rhs.scalar)
		right = func(int) (string, bool) { return s, ok }
	} else {
		rc := rhs.col.(textColumn)
		right = func(i int) (string, bool) {
			if rc.IsNull(i) {
				return "", false
			}
			return rc.stringAt(i), true
		}
	}
	if op.IsComparison() {
		return compareKernel(op, a.Name(), a.Len(), left, right, reverse, orderedPred[string](op)), nil
	}

	var d *StringColumn
	if inPlace {
		sc, ok := a.(*StringColumn)
		if !ok {
			return nil, unsupportedf("in-place %s on immutable %s column %q", op, a.Type(), a.Name())
		}
		d = sc
	} else {
		d = &StringColumn{newNullBase(a.Name(), a.Len(), stringOps)}
	}
	for i := 0; i < a.Len(); i++ {
		x, xok := left(i)
		y, yok := right(i)
		if reverse {
			x, y = y, x
		}
		if !xok || !yok {
			d.SetNull(i)
			continue
		}
		d.SetValue(i, x+y)
	}
	return d, nil
}

// Not negates a boolean column. Nulls stay null.
func Not(c Column) (Column, error) {
	b, ok := c.(*BoolColumn)
	if !ok {
		return nil, unsupportedf("Not over %s", c.Type())
	}
	out := &BoolColumn{b.cloneBase()}
	for i, v := range out.values {
		out.values[i] = !v
	}
	return out, nil
}

// IsNullMask reports, per row, whether c is null.
func IsNullMask(c Column) *BoolColumn {
	out := &BoolColumn{newBase(c.Name(), make([]bool, c.Len()), boolOps)}
	for i := range out.values {
		out.values[i] = c.IsNull(i)
	}
	return out
}
