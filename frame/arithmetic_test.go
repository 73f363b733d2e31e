package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestResultType(t *testing.T) {
	for _, tc := range []struct {
		op          BinaryOp
		left, right DataType
		want        DataType
	}{
		{OpAdd, Int8, UInt8, UInt8},
		{OpAdd, UInt8, Int16, Int16},
		{OpMultiply, Int32, UInt32, UInt32},
		{OpSubtract, UInt32, Int64, Int64},
		{OpAdd, Int64, UInt64, UInt64},
		{OpAdd, Int64, Float32, Float32},
		{OpDivide, Float32, Float64, Float64},
		{OpAdd, Float64, Decimal, Decimal},
		{OpModulo, Int8, Decimal, Decimal},
		{OpAdd, String, ArrowString, String},
		{OpAnd, Boolean, Boolean, Boolean},
		{OpLeftShift, Int16, Int64, Int16},
		{OpGreater, Int8, Float64, Boolean},
		{OpEqual, DateTime, DateTime, Boolean},
		{OpLess, Char, Char, Boolean},
		{OpEqual, String, String, Boolean},
	} {
		t.Run(tc.op.String()+"_"+tc.left.String()+"_"+tc.right.String(), func(t *testing.T) {
			got, err := ResultType(tc.op, tc.left, tc.right)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	for _, tc := range []struct {
		op          BinaryOp
		left, right DataType
	}{
		{OpAdd, Boolean, Boolean},
		{OpAdd, DateTime, DateTime},
		{OpAnd, DateTime, DateTime},
		{OpLeftShift, DateTime, Int32},
		{OpLeftShift, Float64, Int32},
		{OpAnd, Int32, Int32},
		{OpSubtract, String, String},
		{OpEqual, DateTime, Int64},
		{OpAdd, String, Int32},
	} {
		t.Run("Unsupported_"+tc.op.String()+"_"+tc.left.String()+"_"+tc.right.String(), func(t *testing.T) {
			_, err := ResultType(tc.op, tc.left, tc.right)
			require.True(t, errors.Is(err, ErrUnsupportedOperation))
		})
	}
}

// addSubtractRoundTrip checks that c + k - k reproduces c.
func addSubtractRoundTrip[T Number](t *testing.T, vals []T, k T) {
	t.Helper()
	c := NewNumericColumn("x", vals)
	require.NoError(t, c.Append(nil))

	added, err := Add(c, k)
	require.NoError(t, err)
	back, err := Subtract(added, k)
	require.NoError(t, err)
	require.Equal(t, c.Type(), back.Type())
	require.Equal(t, values(c), values(back))

	require.NoError(t, ApplyInPlace(OpAdd, c, k))
	require.NoError(t, ApplyInPlace(OpSubtract, c, k))
	require.Equal(t, values(back), values(c))
}

func TestArithmetic(t *testing.T) {
	t.Run("AddSubtractRoundTrip", func(t *testing.T) {
		addSubtractRoundTrip(t, []int8{-100, 0, 20}, int8(7))
		addSubtractRoundTrip(t, []int16{-1000, 0, 20}, int16(7))
		addSubtractRoundTrip(t, []int32{-1 << 20, 0, 20}, int32(7))
		addSubtractRoundTrip(t, []int64{-1 << 40, 0, 20}, int64(7))
		addSubtractRoundTrip(t, []uint8{0, 100, 200}, uint8(7))
		addSubtractRoundTrip(t, []uint16{0, 100, 200}, uint16(7))
		addSubtractRoundTrip(t, []uint32{0, 100, 200}, uint32(7))
		addSubtractRoundTrip(t, []uint64{0, 100, 1 << 63}, uint64(7))
		addSubtractRoundTrip(t, []float32{-1.5, 0, 2.25}, float32(0.5))
		addSubtractRoundTrip(t, []float64{-1.5, 0, 2.25}, 0.5)

		d := NewDecimalColumn("d", []decimal.Decimal{decimal.RequireFromString("1.10"), decimal.Zero})
		added, err := Add(d, 3)
		require.NoError(t, err)
		back, err := Subtract(added, 3)
		require.NoError(t, err)
		for i := range d.Len() {
			require.True(t, d.Get(i).(decimal.Decimal).Equal(back.Get(i).(decimal.Decimal)))
		}
	})

	t.Run("UntypedIntAdoptsColumnType", func(t *testing.T) {
		c := NewNumericColumn("a", []int8{1, 2})
		out, err := Add(c, 3)
		require.NoError(t, err)
		require.Equal(t, Int8, out.Type())

		// 300 does not fit in int8 so the literal is an int64
		out, err = Add(c, 300)
		require.NoError(t, err)
		require.Equal(t, Int64, out.Type())
		require.Equal(t, []any{int64(301), int64(302)}, values(out))

		err = ApplyInPlace(OpAdd, c, 300)
		require.True(t, errors.Is(err, ErrInvalidArgument))
		require.Equal(t, []any{int8(1), int8(2)}, values(c))
	})

	t.Run("Promotion", func(t *testing.T) {
		i := NewNumericColumn("i", []int32{1, 2})
		out, err := Multiply(i, 1.5)
		require.NoError(t, err)
		require.Equal(t, Float64, out.Type())
		require.Equal(t, []any{1.5, 3.0}, values(out))

		out, err = Add(i, decimal.RequireFromString("0.25"))
		require.NoError(t, err)
		require.Equal(t, Decimal, out.Type())

		u := NewNumericColumn("u", []uint8{1, 2})
		out, err = Add(i, u)
		require.NoError(t, err)
		require.Equal(t, Int32, out.Type())
		require.Equal(t, []any{int32(2), int32(4)}, values(out))
	})

	t.Run("Reverse", func(t *testing.T) {
		c := NewNumericColumn("a", []int64{1, 2, 4})
		out, err := ApplyReverse(OpSubtract, c, 10)
		require.NoError(t, err)
		require.Equal(t, []any{int64(9), int64(8), int64(6)}, values(out))

		out, err = ApplyReverse(OpDivide, c, 8)
		require.NoError(t, err)
		require.Equal(t, []any{int64(8), int64(4), int64(2)}, values(out))

		out, err = ApplyReverse(OpLess, c, 2)
		require.NoError(t, err)
		require.Equal(t, []any{false, false, true}, values(out))

		require.NoError(t, ApplyReverseInPlace(OpSubtract, c, 0))
		require.Equal(t, []any{int64(-1), int64(-2), int64(-4)}, values(c))
	})

	t.Run("DivisionByZero", func(t *testing.T) {
		ints := NewNumericColumn("i", []int64{4, 0})
		out, err := Divide(ints, 0)
		require.NoError(t, err)
		require.Equal(t, []any{nil, nil}, values(out))

		out, err = Modulo(ints, 0)
		require.NoError(t, err)
		require.Equal(t, 2, out.NullCount())

		floats := NewNumericColumn("f", []float64{1, -1, 0})
		out, err = Divide(floats, 0.0)
		require.NoError(t, err)
		f := out.(*Float64Column)
		require.True(t, math.IsInf(f.values[0], 1))
		require.True(t, math.IsInf(f.values[1], -1))
		require.True(t, math.IsNaN(f.values[2]))

		d := NewDecimalColumn("d", []decimal.Decimal{decimal.NewFromInt(1)})
		out, err = Divide(d, 0)
		require.NoError(t, err)
		require.Nil(t, out.Get(0))
	})

	t.Run("NullPropagation", func(t *testing.T) {
		a := int64Column("a", 1, nil, 3)
		b := int64Column("b", nil, nil, 4)
		out, err := Add(a, b)
		require.NoError(t, err)
		require.Equal(t, []any{nil, nil, int64(7)}, values(out))

		out, err = Add(a, nil)
		require.NoError(t, err)
		require.Equal(t, 3, out.NullCount())
	})

	t.Run("Comparisons", func(t *testing.T) {
		a := int64Column("a", 1, nil, 3, nil)
		b := int64Column("b", 1, 2, 4, nil)
		eq, err := Equal(a, b)
		require.NoError(t, err)
		require.Equal(t, []any{true, false, false, true}, values(eq))

		ne, err := NotEqual(a, b)
		require.NoError(t, err)
		require.Equal(t, []any{false, true, true, false}, values(ne))

		lt, err := Less(a, b)
		require.NoError(t, err)
		require.Equal(t, []any{false, false, true, false}, values(lt))

		ge, err := GreaterEqual(a, 2.5)
		require.NoError(t, err)
		require.Equal(t, []any{false, false, true, false}, values(ge))
	})

	t.Run("MixedSignComparisons", func(t *testing.T) {
		wide := NewNumericColumn("w", []int64{-1, 5, math.MinInt64})
		lt, err := Less(wide, uint64(0))
		require.NoError(t, err)
		require.Equal(t, []any{true, false, true}, values(lt))

		big := NewNumericColumn("u", []uint64{0, 5, math.MaxUint64})
		eq, err := Equal(wide, big)
		require.NoError(t, err)
		require.Equal(t, []any{false, true, false}, values(eq))
		gt, err := Greater(big, wide)
		require.NoError(t, err)
		require.Equal(t, []any{true, false, true}, values(gt))

		small := NewNumericColumn("s", []int8{-1, 3})
		gt, err = Greater(small, uint8(0))
		require.NoError(t, err)
		require.Equal(t, []any{false, true}, values(gt))
		le, err := LessEqual(small, NewNumericColumn("b", []uint8{255, 3}))
		require.NoError(t, err)
		require.Equal(t, []any{true, true}, values(le))

		got, err := ResultType(OpLess, Int8, UInt8)
		require.NoError(t, err)
		require.Equal(t, Boolean, got)
	})

	t.Run("InPlaceComparison", func(t *testing.T) {
		b := NewBoolColumn("b", []bool{true, false})
		require.NoError(t, b.Append(nil))
		require.NoError(t, ApplyInPlace(OpEqual, b, false))
		require.Equal(t, []any{false, true, false}, values(b))

		require.NoError(t, ApplyInPlace(OpNotEqual, b, NewBoolColumn("o", []bool{false, false, true})))
		require.Equal(t, []any{false, true, true}, values(b))

		i := int64Column("i", 1, 2)
		err := ApplyInPlace(OpLess, i, 2)
		require.True(t, errors.Is(err, ErrInvalidArgument))
		require.Equal(t, []any{int64(1), int64(2)}, values(i))
	})

	t.Run("Logical", func(t *testing.T) {
		a := NewBoolColumn("a", []bool{true, true, false})
		b := NewBoolColumn("b", []bool{true, false, false})
		and, err := And(a, b)
		require.NoError(t, err)
		require.Equal(t, []any{true, false, false}, values(and))
		or, err := Or(a, b)
		require.NoError(t, err)
		require.Equal(t, []any{true, true, false}, values(or))
		xor, err := Xor(a, true)
		require.NoError(t, err)
		require.Equal(t, []any{false, false, true}, values(xor))

		not, err := Not(a)
		require.NoError(t, err)
		require.Equal(t, []any{false, false, true}, values(not))

		_, err = Add(a, b)
		require.True(t, errors.Is(err, ErrUnsupportedOperation))
		_, err = And(int64Column("i", 1), 1)
		require.True(t, errors.Is(err, ErrUnsupportedOperation))
	})

	t.Run("Shifts", func(t *testing.T) {
		c := NewNumericColumn("a", []int32{1, -8})
		out, err := LeftShift(c, 2)
		require.NoError(t, err)
		require.Equal(t, []any{int32(4), int32(-32)}, values(out))
		out, err = RightShift(c, 1)
		require.NoError(t, err)
		require.Equal(t, []any{int32(0), int32(-4)}, values(out))

		_, err = LeftShift(c, -1)
		require.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = RightShift(int64Column("w", 8, nil), int64(-2))
		require.True(t, errors.Is(err, ErrInvalidArgument))
		require.True(t, errors.Is(ApplyInPlace(OpLeftShift, c, -1), ErrInvalidArgument))
		require.Equal(t, []any{int32(1), int32(-8)}, values(c))
		_, err = LeftShift(NewNumericColumn("f", []float64{1}), 1)
		require.True(t, errors.Is(err, ErrUnsupportedOperation))

		counts := NewNumericColumn("n", []int32{1, -1})
		out, err = LeftShift(c, counts)
		require.NoError(t, err)
		require.Equal(t, []any{int32(2), nil}, values(out))
	})

	t.Run("Text", func(t *testing.T) {
		s := NewStringColumn("s", []string{"a", "b"})
		require.NoError(t, s.Append(nil))
		out, err := Add(s, "!")
		require.NoError(t, err)
		require.Equal(t, []any{"a!", "b!", nil}, values(out))

		out, err = ApplyReverse(OpAdd, s, ">")
		require.NoError(t, err)
		require.Equal(t, []any{">a", ">b", nil}, values(out))

		out, err = Add(s, 1)
		require.NoError(t, err)
		require.Equal(t, []any{"a1", "b1", nil}, values(out))

		gt, err := Greater(s, "a")
		require.NoError(t, err)
		require.Equal(t, []any{false, true, false}, values(gt))

		_, err = Multiply(s, 2)
		require.True(t, errors.Is(err, ErrUnsupportedOperation))
	})

	t.Run("DateTimeAndChar", func(t *testing.T) {
		dt := NewDateTimeColumn("t", nil)
		require.NoError(t, dt.Append("2024-01-01"))
		require.NoError(t, dt.Append("2024-06-01"))
		after, err := Greater(dt, "2024-03-01")
		require.NoError(t, err)
		require.Equal(t, []any{false, true}, values(after))

		_, err = Add(dt, 1)
		require.True(t, errors.Is(err, ErrUnsupportedOperation))

		ch := NewCharColumn("c", []rune{'a', 'b'})
		eq, err := Equal(ch, "b")
		require.NoError(t, err)
		require.Equal(t, []any{false, true}, values(eq))
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := Add(int64Column("a", 1), int64Column("b", 1, 2))
		require.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("IsNullMask", func(t *testing.T) {
		m := IsNullMask(int64Column("a", nil, 1))
		require.Equal(t, []any{true, false}, values(m))
	})
}
