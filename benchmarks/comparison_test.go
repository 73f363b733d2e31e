package benchmarks

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/miretskiy/colframe/frame"
)

// Benchmark scenarios for the core engine operations at a few table sizes.

var sizes = []int{1_000, 100_000}

func makeTable(b *testing.B, rows, keys int) *frame.Table {
	b.Helper()
	rng := rand.New(rand.NewPCG(1, 2))
	ids := make([]int64, rows)
	vals := make([]float64, rows)
	for i := range rows {
		ids[i] = int64(rng.IntN(keys))
		vals[i] = rng.Float64() * 1000
	}
	t, err := frame.NewTable(
		frame.NewNumericColumn("id", ids),
		frame.NewNumericColumn("value", vals),
	)
	if err != nil {
		b.Fatal(err)
	}
	return t
}

func BenchmarkEngineOperations(b *testing.B) {
	for _, rows := range sizes {
		t := makeTable(b, rows, rows/10)

		b.Run(fmt.Sprintf("Sort_%d", rows), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := t.Sort("value", true); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("GroupByMean_%d", rows), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g, err := t.GroupBy("id")
				if err != nil {
					b.Fatal(err)
				}
				if _, err := g.Mean("value"); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("LeftMerge_%d", rows), func(b *testing.B) {
			right := makeTable(b, rows/10, rows/10)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := t.LeftJoin(right, "id"); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("ScalarMultiply_%d", rows), func(b *testing.B) {
			col, err := t.ColumnByName("value")
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := frame.Multiply(col, 1.1); err != nil {
					b.Fatal(err)
				}
			}
		})

		b.Run(fmt.Sprintf("FilterExpr_%d", rows), func(b *testing.B) {
			expr := frame.Col("value").Gt(frame.Lit(500.0))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := t.Filter(expr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkExpressionConstruction(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = frame.Col("salary").Cast(frame.Float64).Mul(frame.Lit(1.1)).Gt(frame.Lit(50000)).Alias("high")
	}
}
