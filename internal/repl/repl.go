// Package repl implements the interactive command loop.
//
// EDUCATIONAL NOTES:
// ------------------
// The REPL (Read-Eval-Print Loop) is the glue between a terminal and the
// table:
// - Read: print a prompt and read one line
// - Eval: route meta-commands (lines starting with '.') to their handlers,
//   prepare everything else as a statement and execute it on the table
// - Print: report the outcome
// - Loop: repeat until .exit or end of input
//
// Every input error (bad syntax, oversized strings, unknown keywords) is
// reported here. The table only ever sees well formed statements.

package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cabewaldrop/pagedb/internal/statement"
	"github.com/cabewaldrop/pagedb/internal/storage"
	"github.com/cabewaldrop/pagedb/internal/table"
)

// Messages printed after a statement.
const (
	MsgComplete       = "Complete"
	MsgTableFull      = "Table full!"
	MsgSyntaxError    = "Syntax error. Could not parse statement."
	MsgUnrecognized   = "Unrecognized statement"
	MsgStringTooLong  = "String is too long."
	msgUnknownCommand = "Unknown command %q"
)

// metaCommands lists the commands starting with '.', in help order.
var metaCommands = []struct {
	name string
	desc string
}{
	{".help", "Show this help message"},
	{".constants", "Show the row and page layout constants"},
	{".pages", "List allocated pages with their row counts and checksums"},
	{".exit", "Exit the program"},
}

// REPL reads commands from an input and runs them against a table.
type REPL struct {
	table  *table.Table
	in     *bufio.Reader
	out    io.Writer
	prompt string
	log    *logrus.Entry
}

// New creates a REPL over tbl.
func New(tbl *table.Table, in io.Reader, out io.Writer, prompt string, log *logrus.Entry) *REPL {
	return &REPL{
		table:  tbl,
		in:     bufio.NewReader(in),
		out:    out,
		prompt: prompt,
		log:    log,
	}
}

// Run loops until .exit, end of input, or ctx is done. It returns ctx.Err()
// on cancellation and an error if reading input or writing output fails.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := io.WriteString(r.out, r.prompt); err != nil {
			return errors.Wrap(err, "write prompt")
		}

		line, readErr := r.in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return errors.Wrap(readErr, "read input")
		}
		if readErr == io.EOF && line == "" {
			return nil
		}

		line = strings.TrimRight(line, "\r\n")
		exit, err := r.Eval(line)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		if readErr == io.EOF {
			// The last line had no newline; finish with a prompt like every other line.
			_, err := io.WriteString(r.out, r.prompt)
			return errors.Wrap(err, "write prompt")
		}
	}
}

// Eval runs one line. It reports whether the loop should stop.
func (r *REPL) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ".") {
		return r.handleMetaCommand(line)
	}
	return false, r.handleStatement(line)
}

// handleMetaCommand processes commands starting with '.'.
func (r *REPL) handleMetaCommand(line string) (bool, error) {
	switch line {
	case ".exit":
		return true, nil
	case ".help":
		return false, r.printHelp()
	case ".constants":
		return false, r.printConstants()
	case ".pages":
		return false, r.printPages()
	default:
		return false, r.println(fmt.Sprintf(msgUnknownCommand, line))
	}
}

// handleStatement prepares and executes a statement and prints the outcome.
func (r *REPL) handleStatement(line string) error {
	stmt, err := statement.Prepare(line)
	if err != nil {
		r.log.WithError(err).Debug("statement rejected")
		return r.println(prepareMessage(err))
	}

	err = r.table.Execute(stmt, r.out)
	switch errors.Cause(err) {
	case nil:
		return r.println(MsgComplete)
	case table.ErrTableFull:
		r.log.WithField("rows", r.table.NumRows()).Debug("table full")
		return r.println(MsgTableFull)
	default:
		return errors.Wrapf(err, "execute %s", stmt.Kind)
	}
}

// prepareMessage maps a Prepare error to the message shown to the user.
func prepareMessage(err error) string {
	switch errors.Cause(err) {
	case statement.ErrStringTooLong:
		return MsgStringTooLong
	case statement.ErrUnrecognized:
		return MsgUnrecognized
	default:
		return MsgSyntaxError
	}
}

func (r *REPL) printHelp() error {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, cmd := range metaCommands {
		sb.WriteString(fmt.Sprintf("  %-12s %s\n", cmd.name, cmd.desc))
	}
	sb.WriteString("\nStatements:\n")
	sb.WriteString("  insert <id> <username> <email>\n")
	sb.WriteString("  select\n")
	_, err := io.WriteString(r.out, sb.String())
	return errors.Wrap(err, "write help")
}

func (r *REPL) printConstants() error {
	var sb strings.Builder
	sb.WriteString("Constants:\n")
	sb.WriteString(fmt.Sprintf("rowSize: %d\n", storage.RowSize))
	sb.WriteString(fmt.Sprintf("pageSize: %d\n", storage.PageSize))
	sb.WriteString(fmt.Sprintf("rowsPerPage: %d\n", storage.RowsPerPage))
	sb.WriteString(fmt.Sprintf("tableMaxPages: %d\n", storage.TableMaxPages))
	sb.WriteString(fmt.Sprintf("tableMaxRows: %d\n", table.TableMaxRows))
	_, err := io.WriteString(r.out, sb.String())
	return errors.Wrap(err, "write constants")
}

func (r *REPL) printPages() error {
	stats := r.table.PageStats()
	if len(stats) == 0 {
		return r.println("No pages allocated.")
	}

	var sb strings.Builder
	for _, s := range stats {
		sb.WriteString(fmt.Sprintf("page %d: %d rows, checksum %016x\n", s.Page, s.Rows, s.Checksum))
	}
	_, err := io.WriteString(r.out, sb.String())
	return errors.Wrap(err, "write pages")
}

func (r *REPL) println(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return errors.Wrap(err, "write output")
}
