package scheduler

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/qbic-pipelines/mqrund/internal/request"
)

func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(os.Stderr, "", 0)
}

func writeTempFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestBucketFilesHappyPath(t *testing.T) {
	dir := t.TempDir()
	raw := writeTempFile(t, dir, "input1.raw")
	fasta := writeTempFile(t, dir, "db.fasta")
	params := writeTempFile(t, dir, "params.yaml")

	b, err := bucketFiles([]string{raw, fasta, params}, testLogger(t))
	if err != nil {
		t.Fatalf("bucketFiles: %v", err)
	}
	if b.FilePaths["input1"] != raw {
		t.Errorf("FilePaths[input1] = %s, want %s", b.FilePaths["input1"], raw)
	}
	if b.FastaPaths["db"] != fasta {
		t.Errorf("FastaPaths[db] = %s, want %s", b.FastaPaths["db"], fasta)
	}
	if b.ParamFile != params {
		t.Errorf("ParamFile = %s, want %s", b.ParamFile, params)
	}
}

func TestBucketFilesNoParameterFile(t *testing.T) {
	dir := t.TempDir()
	raw := writeTempFile(t, dir, "input1.raw")

	_, err := bucketFiles([]string{raw}, testLogger(t))
	if err == nil || !request.IsBadRequest(err) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if err.Error() != "No parameter file" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestBucketFilesTooManyParameterFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.yaml")
	b := writeTempFile(t, dir, "b.json")
	raw := writeTempFile(t, dir, "input1.raw")

	_, err := bucketFiles([]string{a, b, raw}, testLogger(t))
	if err == nil || !request.IsBadRequest(err) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if err.Error() != "Too many parameter files" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestBucketFilesDuplicateStem(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	a := writeTempFile(t, dir, "input1.raw")
	b := writeTempFile(t, sub, "input1.raw")
	params := writeTempFile(t, dir, "params.yaml")

	_, err := bucketFiles([]string{a, b, params}, testLogger(t))
	if err == nil || !request.IsBadRequest(err) {
		t.Fatalf("expected BadRequest, got %v", err)
	}
}
