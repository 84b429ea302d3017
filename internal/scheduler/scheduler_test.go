package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qbic-pipelines/mqrund/internal/request"
)

// writeFakeEngine drops a tiny shell script standing in for the real
// engine binary: it unconditionally exits 0 (or, if failFast is set,
// exits 1 immediately).
func writeFakeEngine(t *testing.T, dir string, failFast bool) string {
	t.Helper()
	path := filepath.Join(dir, "fake-engine.sh")
	body := "#!/bin/sh\nexit 0\n"
	if failFast {
		body = "#!/bin/sh\nexit 1\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake engine: %v", err)
	}
	return path
}

func newTestRequest(t *testing.T) *request.Request {
	t.Helper()
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "sample1.raw"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "db.fasta"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "params.yaml"), []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := request.New(base)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return r
}

func TestRunTaskHappyPath(t *testing.T) {
	r := newTestRequest(t)
	defer r.Close()

	engine := writeFakeEngine(t, t.TempDir(), false)
	s := New(Config{
		NumWorkers:   1,
		SemTimeout:   time.Second,
		MQTimeout:    5 * time.Second,
		EnginePath:   engine,
		EngineFlag:   "-mqpar",
		TmpDir:       t.TempDir(),
		BeatInterval: 20 * time.Millisecond,
	}, nil)

	s.runTask(context.Background(), r)

	if _, err := os.Stat(filepath.Join(r.Dir, "SUCCESS")); err != nil {
		t.Errorf("expected SUCCESS sentinel: %v", err)
	}
	if _, err := os.Stat(filepath.Join(r.OutputDir, "params.xml")); err != nil {
		t.Errorf("expected params.xml in output dir: %v", err)
	}
}

func TestRunTaskEngineFailure(t *testing.T) {
	r := newTestRequest(t)
	defer r.Close()

	engine := writeFakeEngine(t, t.TempDir(), true)
	s := New(Config{
		NumWorkers:   1,
		SemTimeout:   time.Second,
		MQTimeout:    5 * time.Second,
		EnginePath:   engine,
		EngineFlag:   "-mqpar",
		TmpDir:       t.TempDir(),
		BeatInterval: 20 * time.Millisecond,
	}, nil)

	s.runTask(context.Background(), r)

	if _, err := os.Stat(filepath.Join(r.Dir, "FAILED")); err != nil {
		t.Errorf("expected FAILED sentinel: %v", err)
	}
}

func TestRunTaskPrepareGateTimeout(t *testing.T) {
	r := newTestRequest(t)
	defer r.Close()

	s := New(Config{
		NumWorkers:   1,
		SemTimeout:   20 * time.Millisecond,
		MQTimeout:    time.Second,
		EnginePath:   "/bin/true",
		TmpDir:       t.TempDir(),
		BeatInterval: 20 * time.Millisecond,
	}, nil)

	// Hold the only prepare slot so the real task must time out
	// waiting for it.
	if !s.prepareGate.Acquire(time.Second) {
		t.Fatal("failed to pre-acquire prepare gate")
	}
	defer s.prepareGate.Release()

	s.runTask(context.Background(), r)

	data, err := os.ReadFile(filepath.Join(r.Dir, "FAILED"))
	if err != nil {
		t.Fatalf("expected FAILED sentinel: %v", err)
	}
	if string(data) != "Timeout. No resources available." {
		t.Errorf("FAILED contents = %q", string(data))
	}
}

func TestRunTaskMissingParameterFileIsBadRequest(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "sample1.raw"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := request.New(base)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	s := New(Config{
		NumWorkers:   1,
		SemTimeout:   time.Second,
		MQTimeout:    time.Second,
		EnginePath:   "/bin/true",
		TmpDir:       t.TempDir(),
		BeatInterval: 20 * time.Millisecond,
	}, nil)

	s.runTask(context.Background(), r)

	data, err := os.ReadFile(filepath.Join(r.Dir, "FAILED"))
	if err != nil {
		t.Fatalf("expected FAILED sentinel: %v", err)
	}
	if string(data) != "No parameter file" {
		t.Errorf("FAILED contents = %q", string(data))
	}
}
