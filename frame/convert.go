package frame

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Number is the element constraint of NumericColumn: the fixed-width Go
// integer and float types.
type Number interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// dataTypeOf maps a Number type parameter to its DataType.
func dataTypeOf[T Number]() DataType {
	var z T
	switch any(z).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return UInt8
	case uint16:
		return UInt16
	case uint32:
		return UInt32
	case uint64:
		return UInt64
	case float32:
		return Float32
	default:
		return Float64
	}
}

// scalarType reports the DataType of a Go scalar. A plain int is untyped:
// it adopts the numeric type of the column it meets.
func scalarType(v any) (dt DataType, untyped bool, ok bool) {
	switch v.(type) {
	case int:
		return Int64, true, true
	case int8:
		return Int8, false, true
	case int16:
		return Int16, false, true
	case int32:
		return Int32, false, true
	case int64:
		return Int64, false, true
	case uint:
		return UInt64, false, true
	case uint8:
		return UInt8, false, true
	case uint16:
		return UInt16, false, true
	case uint32:
		return UInt32, false, true
	case uint64:
		return UInt64, false, true
	case float32:
		return Float32, false, true
	case float64:
		return Float64, false, true
	case decimal.Decimal:
		return Decimal, false, true
	case bool:
		return Boolean, false, true
	case string:
		return String, false, true
	case time.Time:
		return DateTime, false, true
	}
	return 0, false, false
}

type numKind int

const (
	numSigned numKind = iota
	numUnsigned
	numFloat
	numDecimal
)

// num is a scalar normalised for conversion into any numeric element type.
type num struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
	d    decimal.Decimal
}

func toNum(v any) (num, bool) {
	switch x := v.(type) {
	case int:
		return num{kind: numSigned, i: int64(x)}, true
	case int8:
		return num{kind: numSigned, i: int64(x)}, true
	case int16:
		return num{kind: numSigned, i: int64(x)}, true
	case int32:
		return num{kind: numSigned, i: int64(x)}, true
	case int64:
		return num{kind: numSigned, i: x}, true
	case uint:
		return num{kind: numUnsigned, u: uint64(x)}, true
	case uint8:
		return num{kind: numUnsigned, u: uint64(x)}, true
	case uint16:
		return num{kind: numUnsigned, u: uint64(x)}, true
	case uint32:
		return num{kind: numUnsigned, u: uint64(x)}, true
	case uint64:
		return num{kind: numUnsigned, u: x}, true
	case float32:
		return num{kind: numFloat, f: float64(x)}, true
	case float64:
		return num{kind: numFloat, f: x}, true
	case decimal.Decimal:
		return num{kind: numDecimal, d: x}, true
	}
	return num{}, false
}

// parseNum parses a numeric literal, preferring integers.
func parseNum(s string) (num, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return num{kind: numSigned, i: i}, true
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return num{kind: numUnsigned, u: u}, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return num{kind: numFloat, f: f}, true
	}
	return num{}, false
}

func intBounds(dt DataType) (lo int64, hi uint64) {
	switch dt {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	case Int64:
		return math.MinInt64, math.MaxInt64
	case UInt8:
		return 0, math.MaxUint8
	case UInt16:
		return 0, math.MaxUint16
	case UInt32:
		return 0, math.MaxUint32
	default:
		return 0, math.MaxUint64
	}
}

// numAs converts n to T, failing when the value does not fit exactly in an
// integer target.
func numAs[T Number](n num) (T, error) {
	dt := dataTypeOf[T]()
	if dt.IsFloat() {
		switch n.kind {
		case numSigned:
			return T(n.i), nil
		case numUnsigned:
			return T(n.u), nil
		case numFloat:
			return T(n.f), nil
		default:
			return T(n.d.InexactFloat64()), nil
		}
	}

	lo, hi := intBounds(dt)
	switch n.kind {
	case numFloat:
		if n.f != math.Trunc(n.f) || math.IsInf(n.f, 0) || math.IsNaN(n.f) {
			return 0, conversionf("%v is not an integer value for %s", n.f, dt)
		}
		if n.f < 0 {
			if n.f < float64(lo) {
				return 0, conversionf("%v out of range for %s", n.f, dt)
			}
			return T(int64(n.f)), nil
		}
		if n.f >= float64(hi)+1 {
			return 0, conversionf("%v out of range for %s", n.f, dt)
		}
		return T(uint64(n.f)), nil
	case numDecimal:
		if !n.d.IsInteger() {
			return 0, conversionf("%s is not an integer value for %s", n.d, dt)
		}
		bi := n.d.BigInt()
		if bi.Sign() < 0 {
			if !bi.IsInt64() || bi.Int64() < lo {
				return 0, conversionf("%s out of range for %s", n.d, dt)
			}
			return T(bi.Int64()), nil
		}
		if !bi.IsUint64() || bi.Uint64() > hi {
			return 0, conversionf("%s out of range for %s", n.d, dt)
		}
		return T(bi.Uint64()), nil
	case numUnsigned:
		if n.u > hi {
			return 0, conversionf("%d out of range for %s", n.u, dt)
		}
		return T(n.u), nil
	default:
		if n.i < lo || (n.i > 0 && uint64(n.i) > hi) {
			return 0, conversionf("%d out of range for %s", n.i, dt)
		}
		return T(n.i), nil
	}
}

func numToDecimal(n num) decimal.Decimal {
	switch n.kind {
	case numSigned:
		return decimal.NewFromInt(n.i)
	case numUnsigned:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n.u), 0)
	case numFloat:
		return decimal.NewFromFloat(n.f)
	default:
		return n.d
	}
}

// coerceNumeric converts a caller supplied value for a NumericColumn[T].
// nil and "" produce a null.
func coerceNumeric[T Number](v any) (T, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	if x, ok := v.(T); ok {
		return x, true, nil
	}
	n, ok := toNum(v)
	if !ok {
		s, isStr := v.(string)
		if !isStr {
			return 0, false, conversionf("cannot convert %T to %s", v, dataTypeOf[T]())
		}
		if s == "" {
			return 0, false, nil
		}
		if n, ok = parseNum(s); !ok {
			return 0, false, conversionf("cannot parse %q as %s", s, dataTypeOf[T]())
		}
	}
	x, err := numAs[T](n)
	if err != nil {
		return 0, false, err
	}
	return x, true, nil
}

func coerceDecimal(v any) (decimal.Decimal, bool, error) {
	if v == nil {
		return decimal.Zero, false, nil
	}
	if n, ok := toNum(v); ok {
		if n.kind == numFloat && (math.IsNaN(n.f) || math.IsInf(n.f, 0)) {
			return decimal.Zero, false, conversionf("cannot convert %v to decimal", n.f)
		}
		return numToDecimal(n), true, nil
	}
	s, ok := v.(string)
	if !ok {
		return decimal.Zero, false, conversionf("cannot convert %T to decimal", v)
	}
	if s == "" {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false, conversionf("cannot parse %q as decimal", s)
	}
	return d, true, nil
}

func coerceBool(v any) (bool, bool, error) {
	switch x := v.(type) {
	case nil:
		return false, false, nil
	case bool:
		return x, true, nil
	case string:
		if x == "" {
			return false, false, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, false, conversionf("cannot parse %q as bool", x)
		}
		return b, true, nil
	}
	return false, false, conversionf("cannot convert %T to bool", v)
}

func coerceChar(v any) (rune, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case string:
		if x == "" {
			return 0, false, nil
		}
		if utf8.RuneCountInString(x) != 1 {
			return 0, false, conversionf("cannot convert %q to char", x)
		}
		r, _ := utf8.DecodeRuneInString(x)
		return r, true, nil
	}
	n, ok := toNum(v)
	if !ok {
		return 0, false, conversionf("cannot convert %T to char", v)
	}
	r, err := numAs[int32](n)
	if err != nil || r < 0 || !utf8.ValidRune(r) {
		return 0, false, conversionf("%v is not a valid char", v)
	}
	return r, true, nil
}

func coerceTime(v any) (time.Time, bool, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return x, true, nil
	case string:
		if x == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, strings.TrimSpace(x)); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, conversionf("cannot parse %q as datetime", x)
	}
	return time.Time{}, false, conversionf("cannot convert %T to datetime", v)
}

// coerceString accepts any value through its string form. Only nil is null.
func coerceString(v any) (string, bool, error) {
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	}
	return formatValue(v), true, nil
}

// formatValue renders a value the way it prints in tables and text comparisons.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// compareOrdered orders values, placing NaN before every other float.
func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	aNaN, bNaN := a != a, b != b
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	default:
		return 1
	}
}
