// Package shellexec implements the `shell` and `git` tool collaborators.
// Both run via plain os/exec: the teacher's internal/sandbox ran these
// inside a managed Docker container, but that lifecycle was judged too
// large to hand-adapt without a compiler to verify the wiring (see
// DESIGN.md). shell is denylisted and timeout-bounded; git is a thin
// wrapper around the system binary restricted to a fixed verb set.
package shellexec

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/complior/engine/internal/apperr"
)

// denylist blocks command names that could destroy the host or exfiltrate
// data outside the sandboxed project tree. It is intentionally simple:
// substring matches anywhere in the lowercased command line.
var denylist = []string{
	"rm", "dd", "mkfs", "shutdown", "reboot", "sudo", "su",
	"curl", "wget", "nc", "netcat", "ssh", "scp",
	":(){", // fork bomb shorthand
}

const defaultTimeout = 30 * time.Second

// Result is the outcome of a shell command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes command in a shell, subject to the denylist and timeout.
// cwd is project-relative-resolved by the caller; empty means the process
// working directory.
func Run(ctx context.Context, command, cwd string, timeout time.Duration) (Result, error) {
	if err := checkDenylist(command); err != nil {
		return Result{}, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "/bin/sh", "-c", command)
	if cwd != "" {
		cmd.Dir = cwd
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return Result{}, apperr.ToolErr("shell_timeout", "command exceeded its timeout", err)
		} else if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return Result{}, apperr.ToolErr("shell_failed", "failed to execute command", err)
		}
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}, nil
}

func checkDenylist(command string) error {
	lower := strings.ToLower(command)
	fields := strings.Fields(lower)
	var head string
	if len(fields) > 0 {
		head = fields[0]
	}
	for _, bad := range denylist {
		if head == bad || strings.Contains(lower, bad) {
			return apperr.Validation("denylist", "command is not permitted: "+bad)
		}
	}
	return nil
}

// allowedGitActions is the fixed verb set the `git` tool exposes.
var allowedGitActions = map[string]bool{
	"status": true, "diff": true, "log": true,
	"add": true, "commit": true, "branch": true,
}

// Git runs `git <action> <args...>` in cwd.
func Git(ctx context.Context, action string, args []string, cwd string) (Result, error) {
	if !allowedGitActions[action] {
		return Result{}, apperr.Validation("invalid_git_action", "unsupported git action: "+action)
	}
	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cmdArgs := append([]string{action}, args...)
	cmd := exec.CommandContext(runCtx, "git", cmdArgs...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return Result{}, apperr.ToolErr("git_failed", "failed to execute git", err)
		}
	}
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}, nil
}
