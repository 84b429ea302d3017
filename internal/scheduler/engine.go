package scheduler

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/qbic-pipelines/mqrund/internal/request"
)

// runEngine spawns the engine binary against the XML parameter file
// and waits for it to exit, polling for completion and for advisory
// progress markers under output/combined/proc. On mqTimeout (zero
// meaning unbounded) the child is killed and the already-buffered
// output drained.
func runEngine(r *request.Request, enginePath, engineFlag, xmlPath string, mqTimeout time.Duration) error {
	cmd := exec.Command(enginePath, engineFlag, xmlPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("scheduler: start engine: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var deadline <-chan time.Time
	if mqTimeout > 0 {
		timer := time.NewTimer(mqTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	poll := time.NewTicker(5 * time.Second)
	defer poll.Stop()

	seen := map[string]bool{}
	procDir := filepath.Join(r.OutputDir, "combined", "proc")

	for {
		select {
		case err := <-done:
			r.Logger.Printf("[INFO] engine stdout: %s", stdout.String())
			if stderr.Len() > 0 {
				r.Logger.Printf("[WARN] engine stderr: %s", stderr.String())
			}
			if err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					return engineFailuref("engine exited with code %d", exitErr.ExitCode())
				}
				return engineFailuref("engine failed: %v", err)
			}
			return nil

		case <-deadline:
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
			<-done
			return request.Timeout("engine did not finish within %s", mqTimeout)

		case <-poll.C:
			pollProcDir(r, procDir, seen)
		}
	}
}

// pollProcDir logs the names of files that have appeared in procDir
// since the last poll. This is an advisory progress marker only;
// failures to read the directory are swallowed.
func pollProcDir(r *request.Request, procDir string, seen map[string]bool) {
	entries, err := os.ReadDir(procDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if seen[e.Name()] {
			continue
		}
		seen[e.Name()] = true
		r.Logger.Printf("[INFO] engine progress: %s", e.Name())
	}
}
