package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultQuestion is printed by Prompt before reading the answer.
const DefaultQuestion = "Allow nearby to use your location? [y/N] "

// Prompt asks for permission on a terminal.
// "y" and "yes" grant access, any other answer denies it.
type Prompt struct {
	out      io.Writer
	in       *bufio.Reader
	Question string

	mu      sync.Mutex
	pending chan answer
}

type answer struct {
	err  error
	line string
}

// NewPrompt creates a Prompt reading answers from in and writing the question to out.
// out may be nil.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// RequestForegroundPermission implements PermissionRequester.
// An unreadable input is an error, an empty line is a denial.
func (p *Prompt) RequestForegroundPermission(ctx context.Context) (Permission, error) {
	question := p.Question
	if question == "" {
		question = DefaultQuestion
	}
	if p.out != nil {
		if _, err := fmt.Fprint(p.out, question); err != nil {
			return PermissionUndetermined, fmt.Errorf("write question: %w", err)
		}
	}

	select {
	case <-ctx.Done():
		return PermissionUndetermined, ctx.Err()
	case a := <-p.read():
		p.mu.Lock()
		p.pending = nil
		p.mu.Unlock()

		if a.err != nil {
			return PermissionUndetermined, fmt.Errorf("read answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return PermissionGranted, nil
		default:
			return PermissionDenied, nil
		}
	}
}

// read returns the channel of the line being read, starting a read if none is pending.
// A read abandoned by a cancelled call stays pending and answers the next call.
func (p *Prompt) read() <-chan answer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending != nil {
		return p.pending
	}

	done := make(chan answer, 1)
	p.pending = done
	go func() {
		line, err := p.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		done <- answer{line: line, err: err}
	}()
	return done
}
