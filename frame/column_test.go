package frame

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func int64Column(name string, values ...any) *Int64Column {
	c := &Int64Column{newNullBase(name, 0, numericOps[int64]())}
	for _, v := range values {
		if err := c.Append(v); err != nil {
			panic(err)
		}
	}
	return c
}

func values(c Column) []any {
	out := make([]any, 0, c.Len())
	for _, v := range c.Values() {
		out = append(out, v)
	}
	return out
}

func TestColumnBasics(t *testing.T) {
	t.Run("SetNullThenGet", func(t *testing.T) {
		c := NewNumericColumn("a", []int32{1, 2, 3})
		before := c.NullCount()
		require.NoError(t, c.Set(1, nil))
		require.Nil(t, c.Get(1))
		require.True(t, c.IsNull(1))
		require.LessOrEqual(t, c.NullCount()-before, 1)

		// nulling an already null row leaves the count unchanged
		require.NoError(t, c.Set(1, nil))
		require.Equal(t, 1, c.NullCount())

		require.NoError(t, c.Set(1, 7))
		require.Equal(t, int32(7), c.Get(1))
		require.Equal(t, 0, c.NullCount())
	})

	t.Run("SetOutOfRange", func(t *testing.T) {
		c := NewNumericColumn("a", []int32{1})
		require.True(t, errors.Is(c.Set(3, 1), ErrInvalidArgument))
	})

	t.Run("Coercion", func(t *testing.T) {
		c := NewNumericColumn("a", []int8{})
		require.NoError(t, c.Append("42"))
		require.NoError(t, c.Append(""))
		require.NoError(t, c.Append(3.0))
		require.Equal(t, []any{int8(42), nil, int8(3)}, values(c))

		for _, bad := range []any{"abc", 1.5, 300, uint64(1 << 40), true} {
			err := c.Append(bad)
			require.True(t, errors.Is(err, ErrConversion), "%v: %v", bad, err)
		}
		// failed appends leave the column unchanged
		require.Equal(t, 3, c.Len())
	})

	t.Run("TextAcceptsAnything", func(t *testing.T) {
		c := NewStringColumn("s", nil)
		require.NoError(t, c.Append(12))
		require.NoError(t, c.Append(2.5))
		require.NoError(t, c.Append(""))
		require.NoError(t, c.Append(nil))
		require.Equal(t, []any{"12", "2.5", "", nil}, values(c))
	})

	t.Run("OtherKinds", func(t *testing.T) {
		b := NewBoolColumn("b", nil)
		require.NoError(t, b.Append("true"))
		require.True(t, errors.Is(b.Append("maybe"), ErrConversion))

		ch := NewCharColumn("c", nil)
		require.NoError(t, ch.Append("x"))
		require.NoError(t, ch.Append(int('y')))
		require.True(t, errors.Is(ch.Append("xy"), ErrConversion))
		require.Equal(t, []any{'x', 'y'}, values(ch))

		dt := NewDateTimeColumn("t", nil)
		require.NoError(t, dt.Append("2024-03-01"))
		require.True(t, errors.Is(dt.Append("yesterday"), ErrConversion))
		require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), dt.Get(0))

		d := NewDecimalColumn("d", nil)
		require.NoError(t, d.Append("1.25"))
		require.NoError(t, d.Append(2))
		require.True(t, d.Get(0).(decimal.Decimal).Equal(decimal.RequireFromString("1.25")))
		require.True(t, errors.Is(d.Append("one"), ErrConversion))
	})

	t.Run("AppendMany", func(t *testing.T) {
		c := NewNumericColumn("a", []uint16{1})
		require.NoError(t, c.AppendMany(nil, 2))
		require.NoError(t, c.AppendMany(9, 2))
		require.Equal(t, []any{uint16(1), nil, nil, uint16(9), uint16(9)}, values(c))
		require.Equal(t, 2, c.NullCount())
	})

	t.Run("TakeAndPad", func(t *testing.T) {
		c := int64Column("a", 10, nil, 30)
		taken := c.Take([]int{2, -1, 0, 1})
		require.Equal(t, []any{int64(30), nil, int64(10), nil}, values(taken))

		padded := c.PadNulls(2)
		require.Equal(t, 5, padded.Len())
		require.Equal(t, 3, padded.NullCount())
		require.Equal(t, 3, c.Len())
	})

	t.Run("NewColumnEveryType", func(t *testing.T) {
		for _, dt := range []DataType{Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64,
			Float32, Float64, Decimal, Boolean, Char, DateTime, String, ArrowString} {
			c, err := NewColumn("x", dt, 3)
			require.NoError(t, err)
			require.Equal(t, dt, c.Type())
			require.Equal(t, 3, c.NullCount())
		}
		_, err := NewColumn("x", DataType(0xFFFF_FFFF), 1)
		require.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("WithNulls", func(t *testing.T) {
		v := NewNullBitmap(3)
		v.Set(0, false)
		c, err := NewNumericColumnWithNulls("a", []float32{1, 2, 3}, v)
		require.NoError(t, err)
		require.Nil(t, c.Get(0))

		_, err = NewNumericColumnWithNulls("a", []float32{1}, v)
		require.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("ApplyAndMap", func(t *testing.T) {
		c := int64Column("a", 1, nil, 3)
		c.Apply(func(v int64, ok bool) (int64, bool) {
			if !ok {
				return 0, true
			}
			return v * 2, v != 3
		})
		require.Equal(t, []any{int64(2), int64(0), nil}, values(c))
		require.Equal(t, 1, c.NullCount())

		halves := Map(c, "h", func(v int64) float64 { return float64(v) / 4 })
		require.Equal(t, []any{0.5, 0.0, nil}, values(halves))
	})
}

func TestColumnReductions(t *testing.T) {
	t.Run("Numeric", func(t *testing.T) {
		c := int64Column("a", 4, nil, 1, 3, 2)
		for _, tc := range []struct {
			kind AggKind
			want any
		}{
			{AggCount, int64(4)},
			{AggFirst, int64(4)},
			{AggSum, int64(10)},
			{AggProduct, int64(24)},
			{AggMax, int64(4)},
			{AggMin, int64(1)},
			{AggMean, 2.5},
			{AggMedian, 2.5},
		} {
			t.Run(tc.kind.String(), func(t *testing.T) {
				got, err := Reduce(c, tc.kind)
				require.NoError(t, err)
				require.Equal(t, tc.want, got)
			})
		}
	})

	t.Run("AllNull", func(t *testing.T) {
		c := int64Column("a", nil, nil)
		v, err := Sum(c)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("Decimal", func(t *testing.T) {
		c := NewDecimalColumn("d", []decimal.Decimal{decimal.RequireFromString("1.5"), decimal.RequireFromString("2.5")})
		mean, err := Mean(c)
		require.NoError(t, err)
		require.True(t, mean.(decimal.Decimal).Equal(decimal.NewFromInt(2)))
	})

	t.Run("FamilyErrors", func(t *testing.T) {
		_, err := Sum(NewBoolColumn("b", []bool{true}))
		require.True(t, errors.Is(err, ErrUnsupportedOperation))

		_, err = Sum(NewStringColumn("s", []string{"x"}))
		require.True(t, errors.Is(err, ErrNotImplemented))

		_, err = Mean(NewDateTimeColumn("t", []time.Time{time.Now()}))
		require.True(t, errors.Is(err, ErrUnsupportedOperation))

		max, err := Max(NewCharColumn("c", []rune{'b', 'z', 'a'}))
		require.NoError(t, err)
		require.Equal(t, 'z', max)
	})

	t.Run("Cumulative", func(t *testing.T) {
		c := int64Column("a", 1, nil, 2, 3)
		sum, err := Cumulative(c, AggSum)
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), nil, int64(3), int64(6)}, values(sum))
		require.Equal(t, []any{int64(1), nil, int64(2), int64(3)}, values(c))

		require.NoError(t, CumulativeInPlace(c, AggMax))
		require.Equal(t, []any{int64(1), nil, int64(2), int64(3)}, values(c))

		_, err = Cumulative(NewStringColumn("s", nil), AggSum)
		require.True(t, errors.Is(err, ErrNotImplemented))
		_, err = Cumulative(NewBoolColumn("b", nil), AggSum)
		require.True(t, errors.Is(err, ErrUnsupportedOperation))
	})

	t.Run("AnyAll", func(t *testing.T) {
		b := NewBoolColumn("b", []bool{false, true})
		anyTrue, err := Any(b)
		require.NoError(t, err)
		require.True(t, anyTrue)
		allTrue, err := All(b)
		require.NoError(t, err)
		require.False(t, allTrue)

		_, err = Any(int64Column("a", 1))
		require.True(t, errors.Is(err, ErrUnsupportedOperation))
	})
}

func TestColumnTransforms(t *testing.T) {
	t.Run("ClampCopyAndInPlace", func(t *testing.T) {
		c := int64Column("a", -5, nil, 5, 50)
		clamped, err := Clamp(c, 0, 10)
		require.NoError(t, err)
		require.Equal(t, []any{int64(0), nil, int64(5), int64(10)}, values(clamped))
		require.Equal(t, int64(-5), c.Get(0))

		require.NoError(t, ClampInPlace(c, 0, 10))
		require.Equal(t, values(clamped), values(c))

		_, err = Clamp(c, 10, 0)
		require.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = Clamp(NewBoolColumn("b", nil), 0, 1)
		require.True(t, errors.Is(err, ErrUnsupportedOperation))
	})

	t.Run("FilterRange", func(t *testing.T) {
		c := int64Column("a", 1, 5, nil, 3, 9)
		f, err := FilterColumn(c, 2, 5)
		require.NoError(t, err)
		require.Equal(t, []any{int64(5), int64(3)}, values(f))
	})

	t.Run("AbsRound", func(t *testing.T) {
		a, err := Abs(int64Column("a", -2, nil, 3))
		require.NoError(t, err)
		require.Equal(t, []any{int64(2), nil, int64(3)}, values(a))

		r, err := Round(NewNumericColumn("f", []float64{1.234, -2.567}), 1)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{1.2, -2.6}, r.(*Float64Column).values, 1e-9)

		d, err := Round(NewDecimalColumn("d", []decimal.Decimal{decimal.RequireFromString("1.255")}), 2)
		require.NoError(t, err)
		require.Equal(t, "1.26", d.Get(0).(decimal.Decimal).String())
	})

	t.Run("FillNulls", func(t *testing.T) {
		c := int64Column("a", nil, 2)
		filled, err := FillNulls(c, 0)
		require.NoError(t, err)
		require.Equal(t, []any{int64(0), int64(2)}, values(filled))
		require.Equal(t, 1, c.NullCount())

		_, err = FillNulls(c, "x")
		require.True(t, errors.Is(err, ErrConversion))
		require.True(t, errors.Is(FillNullsInPlace(c, nil), ErrInvalidArgument))
		require.NoError(t, FillNullsInPlace(c, 1))
		require.Equal(t, 0, c.NullCount())
	})

	t.Run("Cast", func(t *testing.T) {
		c := int64Column("a", 1, nil, 300)
		f, err := Cast(c, Float32)
		require.NoError(t, err)
		require.Equal(t, []any{float32(1), nil, float32(300)}, values(f))

		s, err := Cast(c, String)
		require.NoError(t, err)
		require.Equal(t, []any{"1", nil, "300"}, values(s))

		_, err = Cast(NewStringColumn("s", []string{"x"}), Int32)
		require.True(t, errors.Is(err, ErrConversion))

		_, err = Cast(int64Column("n", 300, -1), UInt8)
		require.True(t, errors.Is(err, ErrConversion))
		_, err = Cast(NewNumericColumn("f", []float64{1.5}), Int32)
		require.True(t, errors.Is(err, ErrConversion))
		narrow, err := Cast(int64Column("n", 200, nil, 0), UInt8)
		require.NoError(t, err)
		require.Equal(t, []any{uint8(200), nil, uint8(0)}, values(narrow))

		chars, err := Cast(NewCharColumn("c", []rune{'q'}), String)
		require.NoError(t, err)
		require.Equal(t, []any{"q"}, values(chars))
	})

	t.Run("ValueCounts", func(t *testing.T) {
		c := NewBoolColumn("b", []bool{true, false, true, true})
		require.NoError(t, c.Append(nil))
		vc, err := ValueCounts(c)
		require.NoError(t, err)
		require.Equal(t, []string{"Values", "Counts"}, vc.ColumnNames())
		require.Equal(t, []any{true, false, nil}, values(vc.Column(0)))
		require.Equal(t, []any{int64(3), int64(1), int64(1)}, values(vc.Column(1)))
	})
}
