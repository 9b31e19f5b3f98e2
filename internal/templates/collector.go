package templates

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
)

// Collector prompts for variables that were not supplied up front.
type Collector struct {
	in  *bufio.Reader
	out io.Writer

	// Echo writes each answer back to out. Set it when input is not a
	// terminal so that every prompt ends on its own line.
	Echo bool
}

// NewCollector creates a collector reading answers from in and writing
// prompts to out.
func NewCollector(in io.Reader, out io.Writer) *Collector {
	return &Collector{in: bufio.NewReader(in), out: out}
}

// Fill prompts for each name in missing, in order, and stores the answers in
// ctx, which is returned. Names already present in ctx are never prompted
// for or overwritten. An empty answer is a valid value.
func (c *Collector) Fill(missing []string, ctx map[string]string) (map[string]string, error) {
	if ctx == nil {
		ctx = make(map[string]string, len(missing))
	}

	var pending []string
	for _, name := range dedupe(missing) {
		if _, ok := ctx[name]; !ok {
			pending = append(pending, name)
		}
	}
	if len(pending) == 0 {
		return ctx, nil
	}

	fmt.Fprintln(c.out, output.StyleHeading.Render("Missing Parameters"))
	fmt.Fprintln(c.out, "Some parameters were not specified and need to be collected.")
	fmt.Fprintln(c.out)

	for i, name := range pending {
		fmt.Fprintf(c.out, "%s %s: ", output.FormatProgress(i+1, len(pending)), name)

		value, err := c.readLine()
		if err != nil {
			return nil, oerrors.NewInputError(fmt.Sprintf("reading value for %s", name), err)
		}
		if c.Echo {
			fmt.Fprintln(c.out, value)
		}

		ctx[name] = value
	}

	fmt.Fprintln(c.out)

	return ctx, nil
}

// readLine reads one line without its trailing whitespace. A final line
// without a newline is accepted; end of input before any byte is an error.
func (c *Collector) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRightFunc(line, unicode.IsSpace), nil
}
