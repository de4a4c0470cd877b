package rerun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ExecLauncher launches real processes with os/exec. On Unix each child gets
// its own process group so that stopping it also stops whatever it spawned.
type ExecLauncher struct{}

// Launch starts spec. The child is not bound to ctx: its lifetime belongs to
// the Coordinator, which stops it explicitly.
func (ExecLauncher) Launch(ctx context.Context, spec Spec) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, ErrNoCommand
	}

	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	setupProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Name, err)
	}

	p := &execProcess{cmd: cmd, done: make(chan struct{}), code: -1}
	go p.wait()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	code int
	err  error
}

func (p *execProcess) wait() {
	err := p.cmd.Wait()
	if p.cmd.ProcessState != nil {
		p.code = p.cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		p.err = err
	}
	close(p.done)
}

func (p *execProcess) Pid() int { return p.cmd.Process.Pid }

func (p *execProcess) Interrupt() error {
	if p.exited() {
		return nil
	}
	return interruptProcess(p.cmd)
}

func (p *execProcess) Kill() error {
	if p.exited() {
		return nil
	}
	return killProcess(p.cmd)
}

func (p *execProcess) Done() <-chan struct{} { return p.done }

func (p *execProcess) ExitCode() int {
	<-p.done
	return p.code
}

func (p *execProcess) Err() error {
	<-p.done
	return p.err
}

func (p *execProcess) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
