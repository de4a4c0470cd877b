//go:build windows

package rerun

import (
	"errors"
	"os"
	"os/exec"
)

// setupProcessGroup is a no-op on Windows; there is no signal to forward
// to a group, so stop and kill both terminate the process.
func setupProcessGroup(*exec.Cmd) {}

func interruptProcess(cmd *exec.Cmd) error {
	return killProcess(cmd)
}

func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
