package launcher

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/testinfra/suite-launcher/runner"
	"github.com/testinfra/suite-launcher/types"
)

// Summary is a pure projection of a result sequence into aggregate counts and
// display lines: one header line with the counts, then one line per result in
// result order.
type Summary struct {
	Passed int
	Failed int
	Lines  []string
}

// Summarize reduces the result sequence into pass/fail counts and formatted
// summary lines. It does not mutate results.
func Summarize(results []types.RunResult) Summary {
	s := Summary{}
	for _, res := range results {
		if res.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}

	s.Lines = make([]string, 0, len(results)+1)
	s.Lines = append(s.Lines, fmt.Sprintf("Test runs summary (%d passed, %d failed):", s.Passed, s.Failed))
	for _, res := range results {
		line := fmt.Sprintf(" * '%s' %s in %s", res.Run.EnvironmentName, passedString(res), formatDuration(res.Duration))
		if res.Failed() {
			line += fmt.Sprintf(": %s", firstErrorLine(res.Err))
		}
		s.Lines = append(s.Lines, line)
	}
	return s
}

func passedString(res types.RunResult) string {
	if res.Passed() {
		return "PASSED"
	}
	return "FAILED"
}

// ResultFormatter is responsible for formatting and displaying suite results.
type ResultFormatter interface {
	FormatResults(result *runner.SuiteResult) error
}

// ConsoleResultFormatter implements the ResultFormatter interface.
type ConsoleResultFormatter struct {
	out    io.Writer
	logger log.Logger
}

// NewConsoleResultFormatter creates a new ConsoleResultFormatter writing to
// stdout.
func NewConsoleResultFormatter(logger log.Logger) *ConsoleResultFormatter {
	return &ConsoleResultFormatter{
		out:    os.Stdout,
		logger: logger,
	}
}

// FormatResults formats and displays the suite results.
func (f *ConsoleResultFormatter) FormatResults(result *runner.SuiteResult) error {
	f.logger.Info("Printing results...")
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle(fmt.Sprintf("Suite %q Results (config %q, %s)", result.Suite, result.Config.Name, formatDuration(result.Duration)))

	// Configure columns
	t.AppendHeader(table.Row{
		"#", "Environment", "Groups", "Excluded Groups", "Tests", "Duration", "Status", "Error",
	})

	// Set column configurations for better readability
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Environment", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Error", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for i, res := range result.Results {
		t.AppendRow(table.Row{
			i + 1,
			res.Run.EnvironmentName,
			strings.Join(res.Run.Groups, ","),
			strings.Join(res.Run.ExcludedGroups, ","),
			strings.Join(res.Run.Tests, ","),
			formatDuration(res.Duration),
			getResultString(res.Status()),
			firstErrorLine(res.Err),
		})
	}

	// Update the table style setting based on result status
	if result.Status == types.RunStatusPass {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	// Add summary footer
	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		"",
		"",
		"",
		formatDuration(result.Duration),
		getResultString(result.Status),
		fmt.Sprintf("%d passed, %d failed", result.Stats.Passed, result.Stats.Failed),
	})

	t.Render()

	summary := Summarize(result.Results)
	for _, line := range summary.Lines {
		fmt.Fprintln(f.out, line)
	}

	return nil
}
