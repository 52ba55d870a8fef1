package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
	dimColor     = color.New(color.Faint)
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newPrinter returns a progress callback that prints events to out. Verbose
// events are dropped unless verbose is set.
func newPrinter(out io.Writer, verbose bool) progress.Func {
	var mu sync.Mutex
	return func(event progress.Event) {
		if event.Level == progress.LevelVerbose && !verbose {
			return
		}

		var line string
		switch event.Level {
		case progress.LevelError:
			line = errorColor.Sprint("✗ " + event.Message)
		case progress.LevelWarning:
			line = warningColor.Sprint("! " + event.Message)
		case progress.LevelSuccess:
			line = successColor.Sprint("✓ " + event.Message)
		case progress.LevelInfo:
			line = infoColor.Sprint("› " + event.Message)
		default:
			line = dimColor.Sprint("  " + event.Message)
		}

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, line)
	}
}

func (c *commandContext) printer(cmd *cobra.Command) progress.Func {
	return newPrinter(cmd.ErrOrStderr(), c.verbose)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
