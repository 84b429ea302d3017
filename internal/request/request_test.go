package request

import (
	"os"
	"path/filepath"
	"testing"
)

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestClaimIsExclusive(t *testing.T) {
	dir := t.TempDir()

	ok, err := Claim(dir)
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}

	ok, err = Claim(dir)
	if err != nil {
		t.Fatalf("second claim returned error: %v", err)
	}
	if ok {
		t.Fatalf("second claim should not succeed once STARTED exists")
	}
}

func TestNewEnumeratesInputFilesExcludingProtocolFiles(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, startFile), "")
	mustWriteFile(t, filepath.Join(dir, startedFile), "")
	mustWriteFile(t, filepath.Join(dir, "input1.raw"), "data")
	mustWriteFile(t, filepath.Join(dir, "input1.sha"), "deadbeef input1.raw")
	mustWriteFile(t, filepath.Join(dir, "params.yaml"), "rawFiles: []")

	req, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer req.Close()

	if _, err := os.Stat(req.OutputDir); err != nil {
		t.Errorf("output dir not created: %v", err)
	}

	names := map[string]bool{}
	for _, f := range req.InputFiles {
		names[filepath.Base(f)] = true
	}
	if !names["input1.raw"] || !names["params.yaml"] {
		t.Errorf("expected input1.raw and params.yaml, got %v", names)
	}
	if names["input1.sha"] || names[startFile] || names[startedFile] {
		t.Errorf("sentinel/sidecar files leaked into InputFiles: %v", names)
	}
}

func TestNewFailsWhenOutputDirExists(t *testing.T) {
	dir := t.TempDir()
	mustMkdir(t, filepath.Join(dir, outputDir))

	_, err := New(dir)
	if err == nil || !IsWorkspaceExists(err) {
		t.Fatalf("expected WorkspaceExists, got %v", err)
	}
}

func TestSetStatusAndTerminalFiles(t *testing.T) {
	dir := t.TempDir()
	req, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer req.Close()

	req.SetStatus(StatusWaiting)
	data, err := os.ReadFile(req.statusPath())
	if err != nil || string(data) != StatusWaiting+"\n" {
		t.Errorf("STATUS = %q, %v", data, err)
	}

	req.Success("all good")
	data, _ = os.ReadFile(req.successPath())
	if string(data) != "all good" {
		t.Errorf("SUCCESS = %q", data)
	}
	data, _ = os.ReadFile(req.statusPath())
	if string(data) != StatusSuccess+"\n" {
		t.Errorf("STATUS after Success = %q", data)
	}
}

func TestCompileTaskPatternRequiresFullMatch(t *testing.T) {
	re, err := CompileTaskPattern(`req-[0-9]+`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !re.MatchString("req-123") {
		t.Errorf("expected full match on req-123")
	}
	if re.MatchString("req-123-extra") {
		t.Errorf("pattern must fully match, not just find a prefix")
	}
}
