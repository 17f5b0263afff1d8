package term_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marespinozac/comanda/pkg/term"
)

func TestPromptTrims(t *testing.T) {
	var out bytes.Buffer
	io := term.NewIO(strings.NewReader("  hello  \n"), &out)

	line, err := io.Prompt("say")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	assert.Contains(t, out.String(), "say: ")
}

func TestConfirmOnlyExplicitYes(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n": true, "Y\n": true, "yes\n": true, "YES\n": true,
		"n\n": false, "\n": false, "sure\n": false, "": false,
	} {
		io := term.NewIO(strings.NewReader(input), &bytes.Buffer{})
		assert.Equal(t, want, io.Confirm("proceed?"), "input %q", input)
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$25.50", term.Money(25.5))
	assert.Equal(t, "$0.00", term.Money(0))
}

func TestTableAligns(t *testing.T) {
	var out bytes.Buffer
	io := term.NewIO(strings.NewReader(""), &out)

	io.Table([][]string{
		{"QTY", "ITEM"},
		{"2x", "Burger"},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Index(lines[0], "ITEM"), strings.Index(lines[1], "Burger"))
}
