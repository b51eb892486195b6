package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ANSI color escapes used on the host terminal and inside broadcast text.
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

func Colored(color, text string) string {
	return color + text + Reset
}

// ClearScreen wipes the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[2J\033[H")
}

// Prompter is the host player's terminal. A single goroutine owns the
// input stream and feeds lines through a channel, so Ask can honor
// context cancellation without losing buffered input.
type Prompter struct {
	out   io.Writer
	lines chan string
	errs  chan error
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
		errs:  make(chan error, 1),
	}

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			p.lines <- strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			p.errs <- err
			return
		}
		p.errs <- io.EOF
	}()

	return p
}

// Show writes text to the terminal.
func (p *Prompter) Show(text string) {
	fmt.Fprintln(p.out, text)
}

// Ask prints the prompt and blocks for one input line.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-p.errs:
		return "", err
	case line := <-p.lines:
		return line, nil
	}
}

// Clear wipes the prompter's terminal.
func (p *Prompter) Clear() {
	ClearScreen(p.out)
}
