package main

import (
	"math/rand/v2"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/shopspring/decimal"

	"github.com/miretskiy/colframe/frame"
)

var (
	firstNames  = []string{"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Heidi", "Ivan", "Judy"}
	departments = []string{"Engineering", "Marketing", "Sales", "Support"}
)

// employees builds a deterministic sample table of n rows. Roughly one row
// in eight misses its salary and one in ten its department.
func employees(n int, rng *rand.Rand) (*frame.Table, error) {
	names := make([]string, n)
	ages := make([]int64, n)
	salaries := make([]decimal.Decimal, n)
	hired := make([]time.Time, n)
	grades := make([]rune, n)
	remote := make([]bool, n)
	dept := make([]string, n)
	deptValid := make([]bool, n)

	base := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range n {
		names[i] = firstNames[i%len(firstNames)]
		ages[i] = int64(22 + rng.IntN(40))
		salaries[i] = decimal.New(int64(40_000+rng.IntN(80_000)), 0)
		hired[i] = base.AddDate(0, rng.IntN(120), rng.IntN(28))
		grades[i] = rune('A' + rng.IntN(4))
		remote[i] = rng.IntN(2) == 0
		dept[i] = departments[rng.IntN(len(departments))]
		deptValid[i] = rng.IntN(10) != 0
	}

	b := array.NewStringBuilder(memory.NewGoAllocator())
	defer b.Release()
	b.AppendValues(dept, deptValid)
	arr := b.NewStringArray()
	defer arr.Release()

	salary := frame.NewDecimalColumn("salary", salaries)
	for i := range n {
		if rng.IntN(8) == 0 {
			salary.SetNull(i)
		}
	}

	return frame.NewTable(
		frame.NewStringColumn("name", names),
		frame.NewNumericColumn("age", ages),
		salary,
		frame.ArrowStringColumnFrom("department", arr),
		frame.NewDateTimeColumn("hired", hired),
		frame.NewCharColumn("grade", grades),
		frame.NewBoolColumn("remote", remote),
	)
}

// budgets is the per department lookup table joined against employees.
func budgets() (*frame.Table, error) {
	return frame.NewTable(
		frame.NewStringColumn("department", []string{"Engineering", "Marketing", "Sales", "Legal"}),
		frame.NewNumericColumn("budget", []float64{2.5e6, 8e5, 1.1e6, 3e5}),
	)
}
