package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortField(t *testing.T) {
	require.Equal(t, "age ASC", Asc("age").String())
	require.Equal(t, "age DESC", Desc("age").String())
	require.Equal(t, "age ASC NULLS FIRST", AscNullsFirst("age").String())
	require.Equal(t, "age DESC NULLS FIRST", DescNullsFirst("age").String())
	require.Equal(t, NullsLast, Desc("x").NullsOrdering)
}

func TestSort(t *testing.T) {
	t.Run("ColumnNullsAtTail", func(t *testing.T) {
		c := int64Column("v", 3, nil, 1, 2, nil)
		require.Equal(t, []any{int64(1), int64(2), int64(3), nil, nil}, values(SortColumn(c, true)))
		require.Equal(t, []any{int64(3), int64(2), int64(1), nil, nil}, values(SortColumn(c, false)))
		// the input is untouched
		require.Equal(t, []any{int64(3), nil, int64(1), int64(2), nil}, values(c))
	})

	t.Run("Stable", func(t *testing.T) {
		tbl, err := NewTable(
			NewNumericColumn("k", []int32{2, 1, 2, 1}),
			NewStringColumn("tag", []string{"a", "b", "c", "d"}),
		)
		require.NoError(t, err)
		out, err := tbl.Sort("k", true)
		require.NoError(t, err)
		require.Equal(t, []any{"b", "d", "a", "c"}, values(out.Column(1)))

		out, err = tbl.Sort("k", false)
		require.NoError(t, err)
		require.Equal(t, []any{"a", "c", "b", "d"}, values(out.Column(1)))
	})

	t.Run("MultiKey", func(t *testing.T) {
		tbl, err := NewTable(
			NewStringColumn("dept", []string{"b", "a", "b", "a"}),
			NewNumericColumn("pay", []float64{10, 30, 20, 5}),
		)
		require.NoError(t, err)
		out, err := tbl.SortBy(Asc("dept"), Desc("pay"))
		require.NoError(t, err)
		require.Equal(t, []any{"a", "a", "b", "b"}, values(out.Column(0)))
		require.Equal(t, []any{30.0, 5.0, 20.0, 10.0}, values(out.Column(1)))
	})

	t.Run("NullsFirst", func(t *testing.T) {
		tbl, err := NewTable(int64Column("v", 2, nil, 1))
		require.NoError(t, err)
		out, err := tbl.SortBy(AscNullsFirst("v"))
		require.NoError(t, err)
		require.Equal(t, []any{nil, int64(1), int64(2)}, values(out.Column(0)))

		out, err = tbl.SortBy(DescNullsFirst("v"))
		require.NoError(t, err)
		require.Equal(t, []any{nil, int64(2), int64(1)}, values(out.Column(0)))
	})

	t.Run("Errors", func(t *testing.T) {
		tbl, err := NewTable(int64Column("v", 1))
		require.NoError(t, err)
		_, err = tbl.SortBy()
		require.True(t, errors.Is(err, ErrInvalidArgument))
		_, err = tbl.Sort("missing", true)
		require.True(t, errors.Is(err, ErrNotFound))
	})
}
