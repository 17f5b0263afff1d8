// Package term holds the small terminal I/O helpers the screens share:
// line prompts, yes/no confirmations, and tabular output.
package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// IO bundles the reader and writer a screen talks to. Tests substitute both.
type IO struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewIO wraps raw streams.
func NewIO(in io.Reader, out io.Writer) *IO {
	return &IO{In: bufio.NewReader(in), Out: out}
}

// Printf writes formatted output.
func (t *IO) Printf(format string, args ...any) {
	fmt.Fprintf(t.Out, format, args...)
}

// Println writes a line.
func (t *IO) Println(args ...any) {
	fmt.Fprintln(t.Out, args...)
}

// Prompt prints a label and reads one trimmed line.
func (t *IO) Prompt(label string) (string, error) {
	fmt.Fprintf(t.Out, "%s: ", label)
	line, err := t.In.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question and returns true only on an explicit yes.
// EOF or anything else counts as no.
func (t *IO) Confirm(question string) bool {
	fmt.Fprintf(t.Out, "%s [y/N]: ", question)
	line, err := t.In.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Table renders rows in aligned columns. The first row is the header.
func (t *IO) Table(rows [][]string) {
	w := tabwriter.NewWriter(t.Out, 0, 0, 3, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// Money formats an amount the way tickets print it.
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
