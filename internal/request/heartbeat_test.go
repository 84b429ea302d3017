package request

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHeartbeatAppendsAndStopsIdempotently(t *testing.T) {
	dir := t.TempDir()
	req := &Request{ID: "t1", Dir: dir, BeatPath: filepath.Join(dir, beatFile)}

	h := req.StartHeartbeat(20 * time.Millisecond)
	time.Sleep(90 * time.Millisecond)
	h.Stop()
	h.Stop() // idempotent

	lineCountAtStop := countLines(t, req.BeatPath)
	if lineCountAtStop < 2 {
		t.Fatalf("expected multiple heartbeat lines, got %d", lineCountAtStop)
	}

	time.Sleep(60 * time.Millisecond)
	if got := countLines(t, req.BeatPath); got != lineCountAtStop {
		t.Errorf("heartbeat wrote after Stop returned: %d -> %d lines", lineCountAtStop, got)
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n
}
