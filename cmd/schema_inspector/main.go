package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"

	"github.com/miretskiy/colframe/config"
	"github.com/miretskiy/colframe/frame"
)

// report is one section of the non-interactive output.
type report struct {
	title   string
	command string
}

var reports = []report{
	{"🔍 Schema", "schema"},
	{"🏹 Arrow schema", "arrow"},
	{"📋 Info", "info"},
	{"📈 Description", "describe"},
	{"📊 Sample data", "head 10"},
	{"💰 Mean salary by department", "group department mean salary"},
	{"🔗 Departments with budgets", "join inner"},
	{"🏆 Highest paid", "sort salary desc"},
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	rows := flag.Int("rows", 40, "number of sample rows to generate")
	interactive := flag.Bool("i", false, "start an interactive session")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	frame.SetLogger(logger)

	s, err := newSession(cfg, *rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building sample data: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := repl(s); err != nil {
			fmt.Fprintf(os.Stderr, "readline: %v\n", err)
			os.Exit(1)
		}
		return
	}

	start := time.Now()
	out, err := s.runReports(reports)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
	fmt.Printf("⏱️  Reports completed in: %v\n", time.Since(start))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func newSession(cfg *config.Config, rows int) (*session, error) {
	rng := rand.New(rand.NewPCG(cfg.Sample.Seed, 0))
	t, err := employees(rows, rng)
	if err != nil {
		return nil, err
	}
	b, err := budgets()
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, table: t, budgets: b, rng: rng}, nil
}

// runReports evaluates the reports concurrently; they only read the
// session tables. Output keeps the report order.
func (s *session) runReports(rs []report) (string, error) {
	sections, err := iter.MapErr(rs, func(r *report) (string, error) {
		out, err := s.exec(r.command)
		if err != nil {
			return "", errors.Wrap(err, r.command)
		}
		return r.title + "\n" + out + "\n", nil
	})
	if err != nil {
		return "", err
	}
	return strings.Join(sections, "\n"), nil
}

func repl(s *session) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "colframe> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("loaded %d rows, type help for commands\n", s.table.RowCount())
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "quit" || line == "exit" {
			return nil
		}
		out, err := s.exec(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}
