package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when a prompt is abandoned because its
// context was canceled.
var ErrInputCancelled = errors.New("input canceled")

type lineResult struct {
	err  error
	line string
}

// lineReader reads prompt answers one line at a time without blocking past
// context cancellation. A read abandoned by cancellation stays pending and
// its line becomes the answer to the next prompt, so input is never dropped
// and at most one read is outstanding. It is not safe for concurrent use.
type lineReader struct {
	reader  *bufio.Reader
	pending chan lineResult
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

// readLine returns the next answer with surrounding whitespace removed.
// A final answer without a trailing newline is accepted; once input is
// exhausted it returns ErrInputTerminated.
func (r *lineReader) readLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	if r.pending == nil {
		ch := make(chan lineResult, 1)
		r.pending = ch
		go func() {
			line, err := r.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-r.pending:
		r.pending = nil
		line := strings.TrimSpace(res.line)
		switch {
		case res.err == nil:
			return line, nil
		case errors.Is(res.err, io.EOF) && res.line != "":
			return line, nil
		case errors.Is(res.err, io.EOF):
			return "", ErrInputTerminated
		default:
			return "", fmt.Errorf("failed to read answer: %w", res.err)
		}
	}
}
