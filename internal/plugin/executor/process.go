package executor

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// killGrace is how long a cancelled plugin gets to close its pipes before
// it is killed outright.
const killGrace = 2 * time.Second

// ProcessRunner runs an external process.
type ProcessRunner interface {
	// Run executes path with args, feeding stdin, and returns stdout and
	// stderr. stderr is returned on success too so plugin warnings can be
	// logged.
	Run(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// RealProcessRunner runs plugins with os/exec. Env is appended to the
// parent environment.
type RealProcessRunner struct {
	Env []string
}

// NewRealProcessRunner returns a runner that tags the child environment so
// plugins can tell they were launched by swatch.
func NewRealProcessRunner() *RealProcessRunner {
	return &RealProcessRunner{Env: []string{"SWATCH_PLUGIN_PROTOCOL=" + string(plugin.PluginTypeJSON)}}
}

// Run executes the process and waits for it to exit.
func (r *RealProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = killGrace
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
