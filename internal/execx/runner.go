// Package execx runs external commands behind an injectable interface.
//
// Commands are always assembled as explicit argument vectors, never as
// concatenated strings, so paths with whitespace survive intact.
package execx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Runner executes an external command in a working directory and returns
// its combined stdout and stderr.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct {
	log *zap.Logger
}

// NewRunner creates an ExecRunner. A nil logger disables debug output.
func NewRunner(log *zap.Logger) *ExecRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecRunner{log: log}
}

// Run executes name with args in dir. Stdout and stderr are combined so
// the caller sees everything the tool printed. On failure the trimmed
// output is folded into the returned error.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	r.log.Debug("exec",
		zap.String("dir", dir),
		zap.String("cmd", name),
		zap.Strings("args", args),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// LookPath reports whether a binary is available on the host.
var LookPath = exec.LookPath
