package shellexec

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/complior/engine/internal/apperr"
)

func TestRunExecutesAllowedCommand(t *testing.T) {
	result, err := Run(context.Background(), "echo hello", "", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("expected stdout %q, got %q", "hello", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", result.ExitCode)
	}
}

func TestRunRejectsDenylistedCommand(t *testing.T) {
	_, err := Run(context.Background(), "rm -rf /tmp/whatever", "", time.Second)
	if err == nil {
		t.Fatal("expected a denylist error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an *apperr.Error, got %T", err)
	}
	if appErr.Kind != apperr.KindValidation {
		t.Errorf("expected validation kind, got %v", appErr.Kind)
	}
}

func TestRunRejectsSudoAnywhereInTheLine(t *testing.T) {
	_, err := Run(context.Background(), "echo ok && sudo reboot", "", time.Second)
	if err == nil {
		t.Fatal("expected a denylist error for a chained sudo invocation")
	}
}

func TestRunCapturesNonZeroExitCode(t *testing.T) {
	result, err := Run(context.Background(), "exit 3", "", time.Second)
	if err != nil {
		t.Fatalf("unexpected error for a clean non-zero exit: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", result.ExitCode)
	}
}

func TestRunTimesOutLongCommands(t *testing.T) {
	_, err := Run(context.Background(), "sleep 5", "", 10*time.Millisecond)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an *apperr.Error, got %T", err)
	}
	if appErr.Code != "shell_timeout" {
		t.Errorf("expected shell_timeout code, got %q", appErr.Code)
	}
}

func TestGitRejectsUnsupportedAction(t *testing.T) {
	_, err := Git(context.Background(), "push", nil, "")
	if err == nil {
		t.Fatal("expected an error for an unsupported git action")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an *apperr.Error, got %T", err)
	}
	if appErr.Code != "invalid_git_action" {
		t.Errorf("expected invalid_git_action code, got %q", appErr.Code)
	}
}

func TestGitAllowsStatusOnANonRepoDirectory(t *testing.T) {
	dir := t.TempDir()
	result, err := Git(context.Background(), "status", nil, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode == 0 {
		t.Error("expected a non-zero exit code for git status outside a repository")
	}
}
