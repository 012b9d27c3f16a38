// Command parqlap is the interactive REPL described in spec.md §6: it
// reads one SQL string per line, plans and executes it against
// Parquet files under the configured root, and prints either the
// rendered result table or the error's display form.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/xwb1989/sqlparser"

	"github.com/ohnod/parqlap/config"
	"github.com/ohnod/parqlap/engine"
	"github.com/ohnod/parqlap/plan"
	"github.com/ohnod/parqlap/storage"
	"github.com/ohnod/parqlap/types"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	reader := storage.NewParquetReader(cfg.Root)
	planner := plan.NewPlanner(reader)
	optimizer := plan.NewOptimizer()
	exec := engine.NewExecutionEngine(reader)

	repl(cfg, log, planner, optimizer, exec)
}

func repl(cfg config.Config, log *logrus.Logger, planner *plan.Planner, optimizer *plan.Optimizer, exec *engine.ExecutionEngine) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(cfg.Prompt)

	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			runLine(line, log, planner, optimizer, exec)
		}
		fmt.Print(cfg.Prompt)
	}

	if err := scanner.Err(); err != nil {
		log.WithError(err).Error("reading input")
		os.Exit(1)
	}
	os.Exit(1) // EOF terminates the process with a non-zero status
}

// runLine plans and executes one line of input, recovering an
// AssertionError panic — the one place internal-invariant failures
// are caught rather than propagated, per spec.md §7.
func runLine(line string, log *logrus.Logger, planner *plan.Planner, optimizer *plan.Optimizer, exec *engine.ExecutionEngine) {
	defer func() {
		if r := recover(); r != nil {
			if assertErr, ok := r.(*types.AssertionError); ok {
				fmt.Fprintln(os.Stderr, assertErr.Error())
				return
			}
			panic(r)
		}
	}()

	pieces, err := sqlparser.SplitStatementToPieces(line)
	if err != nil {
		fmt.Fprintln(os.Stderr, parseError(err).Error())
		return
	}

	statements := make([]sqlparser.Statement, 0, len(pieces))
	for _, piece := range pieces {
		stmt, err := sqlparser.Parse(piece)
		if err != nil {
			fmt.Fprintln(os.Stderr, parseError(err).Error())
			return
		}
		statements = append(statements, stmt)
	}

	node, err := planner.Plan(statements)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}
	node = optimizer.Optimize(node)

	result, err := exec.Execute(node)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}

	log.WithField("rows", result.RowCount()).Debug("query executed")
	render(result)
}

func parseError(err error) *types.Error {
	return types.NewError(types.ErrParser, err.Error())
}

// render prints a ResultSet as a bordered table, header row from
// OutputSchema.Headers() (spec.md §6's rendering rule).
func render(result *types.ResultSet) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(result.OutputSchema.Headers())

	for _, row := range result.Rows() {
		cells := make([]string, row.Len())
		for i, v := range row.Values {
			if v.IsNull() {
				cells[i] = "NULL"
			} else {
				cells[i] = v.String()
			}
		}
		table.Append(cells)
	}

	table.Render()
}
