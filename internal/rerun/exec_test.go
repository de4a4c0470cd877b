//go:build !windows

package rerun

import (
	"context"
	"os/exec"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func waitDone(t *testing.T, p Process) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("process %d did not exit", p.Pid())
	}
}

func TestExecLauncherExitCode(t *testing.T) {
	requireShell(t)
	p, err := ExecLauncher{}.Launch(context.Background(), Spec{Name: "sh", Args: []string{"-c", "exit 3"}})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	waitDone(t, p)
	if p.ExitCode() != 3 {
		t.Fatalf("ExitCode = %d, want 3", p.ExitCode())
	}
	if p.Err() != nil {
		t.Fatalf("Err = %v, want nil for a plain non-zero exit", p.Err())
	}
}

func TestExecLauncherInterruptStopsGroup(t *testing.T) {
	requireShell(t)
	p, err := ExecLauncher{}.Launch(context.Background(), Spec{Name: "sh", Args: []string{"-c", "sleep 30 & wait"}})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if err := p.Interrupt(); err != nil {
		t.Fatalf("Interrupt: %v", err)
	}
	waitDone(t, p)
	if p.ExitCode() != -1 {
		t.Fatalf("ExitCode = %d, want -1 after a signal", p.ExitCode())
	}
	if err := p.Kill(); err != nil {
		t.Fatalf("Kill after exit: %v", err)
	}
}

func TestExecLauncherMissingCommand(t *testing.T) {
	if _, err := (ExecLauncher{}).Launch(context.Background(), Spec{Name: "wtsc-no-such-command"}); err == nil {
		t.Fatalf("expected an error for a missing command")
	}
}
