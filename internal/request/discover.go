package request

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// CompileTaskPattern compiles a task_re configuration value into a
// pattern that must fully match a candidate directory's name, the way
// Python's re.fullmatch does. An empty pattern compiles to one that
// matches only the empty name; callers leave TaskPattern nil to accept
// every name.
func CompileTaskPattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("request: compile task_re %q: %w", pattern, err)
	}
	return re, nil
}

// Discoverer polls a listen directory for candidate request
// directories and claims them exclusively, one scan at a time.
type Discoverer struct {
	ListenDir    string
	TaskPattern  *regexp.Regexp // nil means accept every name
	ScanInterval time.Duration
}

// Discover starts the poll loop and returns a channel of successfully
// claimed Requests. The channel is closed when ctx is cancelled.
// Instantiation failures are logged and the candidate is dropped
// (STARTED remains, so it is never retried).
func (d *Discoverer) Discover(ctx context.Context) <-chan *Request {
	out := make(chan *Request)
	go func() {
		defer close(out)
		ticker := time.NewTicker(d.ScanInterval)
		defer ticker.Stop()
		for {
			d.scanOnce(ctx, out)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return out
}

// scanOnce performs one full pass over the listen directory. Entries
// are processed in directory iteration order; ordering across scans
// is not guaranteed to match arrival time.
func (d *Discoverer) scanOnce(ctx context.Context, out chan<- *Request) {
	entries, err := os.ReadDir(d.ListenDir)
	if err != nil {
		log.Printf("[ERROR] request: scan %s: %v", d.ListenDir, err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if d.TaskPattern != nil && !d.TaskPattern.MatchString(name) {
			continue
		}
		dir := filepath.Join(d.ListenDir, name)
		if !HasStartSentinel(dir) {
			continue
		}
		claimed, err := Claim(dir)
		if err != nil {
			log.Printf("[ERROR] request: claim %s: %v", dir, err)
			continue
		}
		if !claimed {
			continue
		}
		req, err := New(dir)
		if err != nil {
			log.Printf("[ERROR] request: instantiate %s: %v", dir, err)
			continue
		}
		select {
		case out <- req:
		case <-ctx.Done():
			return
		}
	}
}
