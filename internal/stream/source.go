package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Source is the compiler output being filtered.
type Source interface {
	io.ReadCloser
	// Wait blocks until the producer is finished and returns its exit code.
	Wait() (int, error)
}

type readerSource struct {
	io.Reader
}

// ReaderSource wraps r, typically os.Stdin when wtsc sits at the end of a pipe.
// Closing it closes r if r is an io.Closer.
func ReaderSource(r io.Reader) Source {
	return readerSource{r}
}

func (s readerSource) Close() error {
	if c, ok := s.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (readerSource) Wait() (int, error) { return 0, nil }

// CommandSource runs the compiler itself, with stdout and stderr merged into
// one pipe in the order the compiler writes them.
type CommandSource struct {
	cmd *exec.Cmd
	r   *os.File
}

// StartCommand starts name with args. The compiler inherits stdin so that
// interactive watch modes keep working.
func StartCommand(ctx context.Context, name string, args ...string) (*CommandSource, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create output pipe: %w", err)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, fmt.Errorf("start compiler %s: %w", name, err)
	}
	// The child holds its own copy; ours must go for EOF to arrive.
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close output pipe: %w", err)
	}
	return &CommandSource{cmd: cmd, r: r}, nil
}

func (s *CommandSource) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close closes the read end of the output pipe.
func (s *CommandSource) Close() error {
	err := s.r.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

// Wait waits for the compiler and returns its exit code. A non-zero exit is
// reported through the code, not the error.
func (s *CommandSource) Wait() (int, error) {
	err := s.cmd.Wait()
	code := -1
	if s.cmd.ProcessState != nil {
		code = s.cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return code, fmt.Errorf("wait for compiler: %w", err)
	}
	return code, nil
}
