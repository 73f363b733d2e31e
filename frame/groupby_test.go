package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// alternatingTable has a boolean key flipping every row and a value column
// 0..9 with row 5 null.
func alternatingTable(t *testing.T) *Table {
	t.Helper()
	flags := make([]bool, 10)
	vals := make([]any, 10)
	for i := range 10 {
		flags[i] = i%2 == 0
		if i != 5 {
			vals[i] = i
		}
	}
	tbl, err := NewTable(
		NewBoolColumn("flag", flags),
		int64Column("v", vals...),
		NewStringColumn("tag", []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}),
	)
	require.NoError(t, err)
	return tbl
}

func TestGroupBy(t *testing.T) {
	t.Run("Count", func(t *testing.T) {
		g, err := alternatingTable(t).GroupBy("flag")
		require.NoError(t, err)
		require.Equal(t, 2, g.NumGroups())
		require.Equal(t, [][]int{{0, 2, 4, 6, 8}, {1, 3, 5, 7, 9}}, g.Groups())

		counts, err := g.Count()
		require.NoError(t, err)
		require.Equal(t, []string{"flag", "v", "tag"}, counts.ColumnNames())
		require.Equal(t, []any{true, false}, values(counts.Column(0)))
		require.Equal(t, []any{int64(5), int64(4)}, values(counts.Column(1)))
		require.Equal(t, []any{int64(5), int64(5)}, values(counts.Column(2)))
	})

	t.Run("NumericAggregates", func(t *testing.T) {
		g, err := alternatingTable(t).GroupBy("flag")
		require.NoError(t, err)

		sum, err := g.Sum()
		require.NoError(t, err)
		// text columns cannot be summed and are skipped
		require.Equal(t, []string{"flag", "v"}, sum.ColumnNames())
		require.Equal(t, []any{int64(20), int64(20)}, values(sum.Column(1)))

		mean, err := g.Mean("v")
		require.NoError(t, err)
		require.Equal(t, Float64, mean.Column(1).Type())
		require.Equal(t, []any{4.0, 5.0}, values(mean.Column(1)))

		median, err := g.Median("v")
		require.NoError(t, err)
		require.Equal(t, []any{4.0, 5.0}, values(median.Column(1)))

		maxes, err := g.Max("v")
		require.NoError(t, err)
		require.Equal(t, []any{int64(8), int64(9)}, values(maxes.Column(1)))

		first, err := g.First("v")
		require.NoError(t, err)
		require.Equal(t, []any{int64(0), int64(1)}, values(first.Column(1)))
	})

	t.Run("ExplicitColumns", func(t *testing.T) {
		g, err := alternatingTable(t).GroupBy("flag")
		require.NoError(t, err)
		_, err = g.Sum("tag")
		require.True(t, errors.Is(err, ErrNotImplemented))
		_, err = g.Max("tag")
		require.True(t, errors.Is(err, ErrNotImplemented))
		_, err = g.Sum("flag")
		require.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = g.Sum("missing")
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("HeadTail", func(t *testing.T) {
		g, err := alternatingTable(t).GroupBy("flag")
		require.NoError(t, err)
		require.Equal(t, []any{"a", "c", "b", "d"}, values(g.Head(2).Column(2)))
		require.Equal(t, []any{"i", "j"}, values(g.Tail(1).Column(2)))
	})

	t.Run("NullKeysGroupTogether", func(t *testing.T) {
		tbl, err := NewTable(
			int64Column("k", 1, nil, 1, nil, 2),
			NewNumericColumn("x", []float32{1, 2, 3, 4, 5}),
		)
		require.NoError(t, err)
		g, err := tbl.GroupBy("k")
		require.NoError(t, err)
		sum, err := g.Sum()
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), nil, int64(2)}, values(sum.Column(0)))
		require.Equal(t, []any{float32(4), float32(6), float32(5)}, values(sum.Column(1)))
	})

	t.Run("CompositeKey", func(t *testing.T) {
		tbl, err := NewTable(
			NewStringColumn("a", []string{"x", "x", "y", "x"}),
			NewNumericColumn("b", []int8{1, 2, 1, 1}),
			NewNumericColumn("n", []int8{1, 1, 1, 1}),
		)
		require.NoError(t, err)
		g, err := tbl.GroupBy("a", "b")
		require.NoError(t, err)
		counts, err := g.Count("n")
		require.NoError(t, err)
		require.Equal(t, 3, counts.RowCount())
		require.Equal(t, []any{int64(2), int64(1), int64(1)}, values(counts.Column(2)))
	})

	t.Run("Agg", func(t *testing.T) {
		g, err := alternatingTable(t).GroupBy("flag")
		require.NoError(t, err)
		out, err := g.Agg(
			Col("v").Sum().Alias("total"),
			Col("v").Cast(Float64).Mul(Lit(2)).Mean().Alias("twice_mean"),
			Col("tag").First(),
		)
		require.NoError(t, err)
		require.Equal(t, []string{"flag", "total", "twice_mean", "tag"}, out.ColumnNames())
		require.Equal(t, []any{int64(20), int64(20)}, values(out.Column(1)))
		require.Equal(t, []any{8.0, 10.0}, values(out.Column(2)))
		require.Equal(t, []any{"a", "b"}, values(out.Column(3)))

		_, err = g.Agg(Col("v"))
		require.True(t, errors.Is(err, ErrInvalidArgument))
	})

	t.Run("Errors", func(t *testing.T) {
		tbl := alternatingTable(t)
		_, err := tbl.GroupBy()
		require.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = tbl.GroupBy("missing")
		require.True(t, errors.Is(err, ErrNotFound))
	})
}
