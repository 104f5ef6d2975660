// Package input reads toggle requests from a line oriented stream without
// blocking its caller for longer than a given timeout.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// ToggleTrigger is the line that pauses or resumes the countdown
const ToggleTrigger = "\n"

// ErrInput indicates that reading the input stream failed
var ErrInput = errors.New("input error")

// IsInputError checks if the error came from the input stream
func IsInputError(err error) bool {
	return errors.Is(err, ErrInput)
}

// IsToggle reports whether line is exactly the toggle trigger
func IsToggle(line string) bool {
	return line == ToggleTrigger
}

type result struct {
	line string
	err  error
}

// Listener reads lines on a background goroutine and hands them out one at a
// time through Next. The goroutine stops after EOF, a read error or Close.
type Listener struct {
	results chan result
	stop    chan struct{}
	once    sync.Once
}

func NewListener(r io.Reader) *Listener {
	l := &Listener{
		results: make(chan result),
		stop:    make(chan struct{}),
	}
	go l.read(r)
	return l
}

func (l *Listener) read(r io.Reader) {
	defer close(l.results)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if !l.send(result{line: line}) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.send(result{err: err})
			}
			return
		}
	}
}

func (l *Listener) send(r result) bool {
	select {
	case l.results <- r:
		return true
	case <-l.stop:
		return false
	}
}

// Next waits up to timeout for the next line. ok is false when the timeout
// elapsed first; once the stream hit EOF every call waits out the timeout.
func (l *Listener) Next(ctx context.Context, timeout time.Duration) (line string, ok bool, err error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r, open := <-l.results:
		if !open {
			break
		}
		if r.err != nil {
			return "", false, fmt.Errorf("%w: failed to read input: %w", ErrInput, r.err)
		}
		return r.line, true, nil
	case <-timer.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}

	select {
	case <-timer.C:
		return "", false, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

// Close stops the reader goroutine once its pending read returns.
func (l *Listener) Close() {
	l.once.Do(func() {
		close(l.stop)
	})
}
