package request

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestDiscoverClaimsOnlyReadyDirectories(t *testing.T) {
	listenDir := t.TempDir()

	ready := filepath.Join(listenDir, "ready-1")
	mustMkdir(t, ready)
	mustWriteFile(t, filepath.Join(ready, startFile), "")

	notReady := filepath.Join(listenDir, "not-ready")
	mustMkdir(t, notReady)

	d := &Discoverer{ListenDir: listenDir, ScanInterval: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	var claimed []*Request
	for req := range d.Discover(ctx) {
		claimed = append(claimed, req)
		req.Close()
	}

	if len(claimed) != 1 || claimed[0].ID != "ready-1" {
		t.Fatalf("expected exactly ready-1 claimed once, got %+v", claimed)
	}
}

func TestDiscoverHonorsTaskPattern(t *testing.T) {
	listenDir := t.TempDir()

	matching := filepath.Join(listenDir, "job-42")
	mustMkdir(t, matching)
	mustWriteFile(t, filepath.Join(matching, startFile), "")

	nonMatching := filepath.Join(listenDir, "scratch")
	mustMkdir(t, nonMatching)
	mustWriteFile(t, filepath.Join(nonMatching, startFile), "")

	pattern, err := CompileTaskPattern(`job-[0-9]+`)
	if err != nil {
		t.Fatalf("CompileTaskPattern: %v", err)
	}

	d := &Discoverer{ListenDir: listenDir, TaskPattern: pattern, ScanInterval: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	var claimed []*Request
	for req := range d.Discover(ctx) {
		claimed = append(claimed, req)
		req.Close()
	}

	if len(claimed) != 1 || claimed[0].ID != "job-42" {
		t.Fatalf("expected exactly job-42 claimed, got %+v", claimed)
	}
}
