package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miretskiy/colframe/config"
)

func testSession(t *testing.T) *session {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	s, err := newSession(cfg, 20)
	require.NoError(t, err)
	return s
}

func TestSession(t *testing.T) {
	s := testSession(t)

	t.Run("Schema", func(t *testing.T) {
		out, err := s.exec("schema")
		require.NoError(t, err)
		require.Equal(t, "{name: str, age: i64, salary: decimal, department: arrow_str, hired: datetime, grade: char, remote: bool}", out)
	})

	t.Run("Head", func(t *testing.T) {
		out, err := s.exec("head 3")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "shape: (3, 7)"))
	})

	t.Run("GroupCountsEveryRow", func(t *testing.T) {
		g, err := s.table.GroupBy("remote")
		require.NoError(t, err)
		counts, err := g.Count("age")
		require.NoError(t, err)
		total := int64(0)
		for i := 0; i < counts.RowCount(); i++ {
			total += counts.Get(i, 1).(int64)
		}
		require.Equal(t, int64(20), total)
	})

	t.Run("Filter", func(t *testing.T) {
		out, err := s.exec("filter age >= 200")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out, "shape: (0, 7)"))

		_, err = s.exec("filter grade == A")
		require.NoError(t, err)
	})

	t.Run("Errors", func(t *testing.T) {
		for _, line := range []string{
			"bogus",
			"sort missing",
			"group department avg",
			"join sideways",
			"filter age ~ 3",
			"sample 1000",
		} {
			_, err := s.exec(line)
			require.Error(t, err, line)
		}
	})

	t.Run("Reports", func(t *testing.T) {
		out, err := s.runReports(reports)
		require.NoError(t, err)
		for _, r := range reports {
			require.Contains(t, out, r.title)
		}
	})

	t.Run("SampleIsReproducible", func(t *testing.T) {
		a, err := testSession(t).exec("sample 4")
		require.NoError(t, err)
		b, err := testSession(t).exec("sample 4")
		require.NoError(t, err)
		require.Equal(t, a, b)
	})
}
