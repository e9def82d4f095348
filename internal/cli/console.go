package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type readResult struct {
	line string
	err  error
}

// Console reads commands line by line and writes coloured feedback.
// Reads honour context cancellation so an interrupt ends a pending prompt.
type Console struct {
	out   io.Writer
	lines chan readResult

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	promptStyle  lipgloss.Style
	bannerStyle  lipgloss.Style
}

// NewConsole starts reading in and writes to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	renderer := lipgloss.NewRenderer(out)
	c := &Console{
		out:          out,
		lines:        make(chan readResult),
		successStyle: renderer.NewStyle().Foreground(lipgloss.Color("10")),
		errorStyle:   renderer.NewStyle().Foreground(lipgloss.Color("9")),
		promptStyle:  renderer.NewStyle().Foreground(lipgloss.Color("11")),
		bannerStyle:  renderer.NewStyle().Foreground(lipgloss.Color("2")),
	}
	go c.read(in)
	return c
}

func (c *Console) read(in io.Reader) {
	defer close(c.lines)
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			c.lines <- readResult{line: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			c.lines <- readResult{err: err}
			return
		}
	}
}

// Ask prints label and returns the next input line, trimmed.
// It returns io.EOF once input is exhausted.
func (c *Console) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// Prompt asks for a command using the styled prompt
func (c *Console) Prompt(ctx context.Context, text string) (string, error) {
	return c.Ask(ctx, c.promptStyle.Render(text))
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Success prints msg in green
func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.successStyle.Render(msg))
}

// Error prints msg in red
func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, c.errorStyle.Render(msg))
}

// Banner prints msg in the banner colour
func (c *Console) Banner(msg string) {
	fmt.Fprintln(c.out, c.bannerStyle.Render(msg))
}
