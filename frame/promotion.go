package frame

// BinaryOp is an elementwise operator between a column and a column or scalar.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpAnd
	OpOr
	OpXor
	OpLeftShift
	OpRightShift
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
)

var binaryOpNames = [...]string{
	OpAdd:          "Add",
	OpSubtract:     "Subtract",
	OpMultiply:     "Multiply",
	OpDivide:       "Divide",
	OpModulo:       "Modulo",
	OpAnd:          "And",
	OpOr:           "Or",
	OpXor:          "Xor",
	OpLeftShift:    "LeftShift",
	OpRightShift:   "RightShift",
	OpEqual:        "Equal",
	OpNotEqual:     "NotEqual",
	OpGreater:      "Greater",
	OpGreaterEqual: "GreaterEqual",
	OpLess:         "Less",
	OpLessEqual:    "LessEqual",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "Unknown"
	}
	return binaryOpNames[op]
}

// IsArithmetic reports whether op is one of + - * / %.
func (op BinaryOp) IsArithmetic() bool { return op >= OpAdd && op <= OpModulo }

// IsLogical reports whether op is And, Or or Xor.
func (op BinaryOp) IsLogical() bool { return op >= OpAnd && op <= OpXor }

// IsShift reports whether op is a bit shift.
func (op BinaryOp) IsShift() bool { return op == OpLeftShift || op == OpRightShift }

// IsComparison reports whether op produces a boolean comparison.
func (op BinaryOp) IsComparison() bool { return op >= OpEqual && op <= OpLessEqual }

// ResultType returns the element type produced by left op right, or an
// unsupported-operation error when the pairing is not defined.
func ResultType(op BinaryOp, left, right DataType) (DataType, error) {
	_, result, err := resolve(op, left, right)
	return result, err
}

// resolve returns the type both operands are converted to before the kernel
// runs, and the type of the result.
func resolve(op BinaryOp, l, r DataType) (operand, result DataType, err error) {
	switch {
	case op.IsArithmetic():
		if l.IsNumeric() && r.IsNumeric() {
			p := promote(l, r)
			return p, p, nil
		}
		if op == OpAdd && l.IsText() && r.IsText() {
			return String, String, nil
		}
	case op.IsLogical():
		if l == Boolean && r == Boolean {
			return Boolean, Boolean, nil
		}
	case op.IsShift():
		if l.IsInteger() && r.IsInteger() {
			return l, l, nil
		}
	case op.IsComparison():
		switch {
		case l.IsNumeric() && r.IsNumeric():
			return comparisonType(l, r), Boolean, nil
		case l.IsText() && r.IsText():
			return String, Boolean, nil
		case l == r && (l == Boolean || l == DateTime || l == Char):
			return l, Boolean, nil
		}
	}
	return 0, 0, unsupportedf("%s between %s and %s", op, l, r)
}

// promote picks the common numeric type: decimal over float over integer,
// and the higher rank within a family.
func promote(a, b DataType) DataType {
	switch {
	case a == b:
		return a
	case a == Decimal || b == Decimal:
		return Decimal
	case a.IsFloat() && b.IsFloat():
		return Float64
	case a.IsFloat():
		return a
	case b.IsFloat():
		return b
	case a.member() > b.member():
		return a
	default:
		return b
	}
}

// comparisonType is the type operands are compared in. Mixed-sign integers
// whose promotion is unsigned compare as decimals so negative values keep
// their order.
func comparisonType(a, b DataType) DataType {
	p := promote(a, b)
	if p.IsInteger() && !p.IsSigned() && (a.IsSigned() || b.IsSigned()) {
		return Decimal
	}
	return p
}
