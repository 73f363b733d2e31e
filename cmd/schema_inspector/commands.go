package main

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/miretskiy/colframe/config"
	"github.com/miretskiy/colframe/frame"
)

// session holds the state an interactive run works on.
type session struct {
	cfg     *config.Config
	table   *frame.Table
	budgets *frame.Table
	rng     *rand.Rand
}

const helpText = `commands:
  schema                    column names and types
  arrow                     arrow schema
  info                      types and non-null counts
  describe                  numeric column statistics
  head [n] | tail [n]       first or last rows
  sort <col> [desc]         rows ordered by a column, nulls last
  group <col> <agg> [cols]  grouped aggregate (count first sum product max min mean median)
  join [left|right|inner|outer]  employees joined with department budgets
  sample <n>                random rows
  filter <col> <op> <value> rows matching a comparison (== != > >= < <=)
  quit | exit               leave`

var aggregates = map[string]frame.AggKind{
	"count":   frame.AggCount,
	"first":   frame.AggFirst,
	"sum":     frame.AggSum,
	"product": frame.AggProduct,
	"max":     frame.AggMax,
	"min":     frame.AggMin,
	"mean":    frame.AggMean,
	"median":  frame.AggMedian,
}

var joinTypes = map[string]frame.JoinType{
	"left":  frame.JoinTypeLeft,
	"right": frame.JoinTypeRight,
	"inner": frame.JoinTypeInner,
	"outer": frame.JoinTypeOuter,
}

func (s *session) show(t *frame.Table) string {
	return t.Format(s.cfg.Display.MaxRows)
}

func count(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, errors.Errorf("bad count %q", args[i])
	}
	return n, nil
}

// exec runs one command line and returns its output.
func (s *session) exec(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	switch args[0] {
	case "help":
		return helpText, nil
	case "schema":
		return s.table.Schema().String(), nil
	case "arrow":
		return s.table.Schema().Arrow().String(), nil
	case "info":
		return s.show(s.table.Info()), nil
	case "describe":
		d, err := s.table.Description()
		if err != nil {
			return "", err
		}
		return s.show(d), nil
	case "head", "tail":
		n, err := count(args, 1, 5)
		if err != nil {
			return "", err
		}
		if args[0] == "head" {
			return s.show(s.table.Head(n)), nil
		}
		return s.show(s.table.Tail(n)), nil
	case "sort":
		if len(args) < 2 {
			return "", errors.Errorf("usage: sort <col> [desc]")
		}
		sorted, err := s.table.Sort(args[1], len(args) < 3 || args[2] != "desc")
		if err != nil {
			return "", err
		}
		return s.show(sorted), nil
	case "group":
		if len(args) < 3 {
			return "", errors.Errorf("usage: group <col> <agg> [cols]")
		}
		kind, ok := aggregates[args[2]]
		if !ok {
			return "", errors.Errorf("unknown aggregate %q", args[2])
		}
		g, err := s.table.GroupBy(args[1])
		if err != nil {
			return "", err
		}
		out, err := g.Aggregate(kind, args[3:]...)
		if err != nil {
			return "", err
		}
		return s.show(out), nil
	case "join":
		jt := frame.JoinTypeLeft
		if len(args) > 1 {
			var ok bool
			if jt, ok = joinTypes[args[1]]; !ok {
				return "", errors.Errorf("unknown join type %q", args[1])
			}
		}
		out, err := s.table.Merge(s.budgets, s.cfg.JoinSpec(frame.On("department").WithType(jt)))
		if err != nil {
			return "", err
		}
		return s.show(out), nil
	case "sample":
		n, err := count(args, 1, 5)
		if err != nil {
			return "", err
		}
		out, err := s.table.Sample(n, s.rng)
		if err != nil {
			return "", err
		}
		return s.show(out), nil
	case "filter":
		if len(args) != 4 {
			return "", errors.Errorf("usage: filter <col> <op> <value>")
		}
		expr, err := comparison(s.table, args[1], args[2], args[3])
		if err != nil {
			return "", err
		}
		out, err := s.table.Filter(expr)
		if err != nil {
			return "", err
		}
		return s.show(out), nil
	}
	return "", errors.Errorf("unknown command %q, try help", args[0])
}

// comparison builds col <op> value with value converted to the column type.
func comparison(t *frame.Table, col, op, value string) (*frame.ExprNode, error) {
	c, err := t.ColumnByName(col)
	if err != nil {
		return nil, err
	}
	parsed, err := frame.NewColumn(col, c.Type(), 0)
	if err != nil {
		return nil, err
	}
	if err := parsed.Append(value); err != nil {
		return nil, err
	}
	lhs, rhs := frame.Col(col), frame.Lit(parsed.Get(0))
	switch op {
	case "==":
		return lhs.Eq(rhs), nil
	case "!=":
		return lhs.Ne(rhs), nil
	case ">":
		return lhs.Gt(rhs), nil
	case ">=":
		return lhs.Ge(rhs), nil
	case "<":
		return lhs.Lt(rhs), nil
	case "<=":
		return lhs.Le(rhs), nil
	}
	return nil, errors.Errorf("unknown operator %q", op)
}
