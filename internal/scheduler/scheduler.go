// Package scheduler drives admitted requests through their lifecycle:
// two bounded-concurrency gates (file preparation, engine execution),
// parameter-file parsing and transformation, engine subprocess
// invocation, and terminal status reporting.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/qbic-pipelines/mqrund/internal/audit"
	"github.com/qbic-pipelines/mqrund/internal/paramdoc"
	"github.com/qbic-pipelines/mqrund/internal/paramxml"
	"github.com/qbic-pipelines/mqrund/internal/request"
)

// Config holds the scheduler's tunables: the size of each admission
// gate, the per-gate wait timeout, the engine invocation deadline, and
// the paths and intervals task execution depends on.
type Config struct {
	NumWorkers   int
	SemTimeout   time.Duration
	MQTimeout    time.Duration // 0 = unbounded
	EnginePath   string
	EngineFlag   string // e.g. "-mqpar"
	TmpDir       string
	BeatInterval time.Duration
	MaxTasks     int  // 0 = unlimited
	Verbose      bool // log every state transition, not just terminal ones
}

// Scheduler owns the two admission gates shared by every in-flight
// task and an optional audit sink.
type Scheduler struct {
	cfg         Config
	audit       *audit.Store
	prepareGate *gate
	executeGate *gate
}

// New builds a Scheduler. auditStore may be nil; every audit call is
// then a no-op.
func New(cfg Config, auditStore *audit.Store) *Scheduler {
	return &Scheduler{
		cfg:         cfg,
		audit:       auditStore,
		prepareGate: newGate(cfg.NumWorkers),
		executeGate: newGate(cfg.NumWorkers),
	}
}

// Serve consumes admitted requests and drives each through its
// lifecycle on a dedicated goroutine. It stops accepting new work once
// maxTasks have been admitted (0 meaning unlimited), then joins every
// outstanding worker before returning.
func (s *Scheduler) Serve(ctx context.Context, requests <-chan *request.Request) {
	var wg sync.WaitGroup
	admitted := 0

	for req := range requests {
		admitted++
		s.audit.RecordAdmission(req.ID, req.Dir)

		wg.Add(1)
		go func(r *request.Request) {
			defer wg.Done()
			defer r.Close()
			s.runTask(ctx, r)
		}(req)

		if s.cfg.MaxTasks > 0 && admitted >= s.cfg.MaxTasks {
			log.Printf("[INFO] scheduler: max-tasks (%d) reached, no longer admitting requests", s.cfg.MaxTasks)
			break
		}
	}
	wg.Wait()
}

// runTask is the per-request state machine:
//
//	NEW -> WAITING(prepare) -> PREPARING_FILES -> WAITING(execute) -> RUNNING -> {SUCCESS|FAILED}
func (s *Scheduler) runTask(ctx context.Context, r *request.Request) {
	heartbeat := r.StartHeartbeat(s.cfg.BeatInterval)
	defer heartbeat.Stop()

	s.transition(r, request.StatusWaiting, "")

	if !s.prepareGate.Acquire(s.cfg.SemTimeout) {
		s.fail(r, "Timeout. No resources available.")
		return
	}
	s.transition(r, request.StatusPreparingFiles, "")
	buckets, doc, err := s.prepare(r)
	s.prepareGate.Release()
	if err != nil {
		s.fail(r, err.Error())
		return
	}

	s.transition(r, request.StatusWaiting, "")
	if !s.executeGate.Acquire(s.cfg.SemTimeout) {
		s.fail(r, "Timeout. No resources available.")
		return
	}
	defer s.executeGate.Release()

	s.transition(r, request.StatusRunning, "")
	if err := s.execute(r, buckets, doc); err != nil {
		s.fail(r, err.Error())
		return
	}

	s.succeed(r)
}

// prepare runs entirely under prepare_gate: checksum verification,
// bucketing input files, and parsing the recognized parameter file.
func (s *Scheduler) prepare(r *request.Request) (*Buckets, *paramdoc.Document, error) {
	if err := r.VerifyChecksums(); err != nil {
		return nil, nil, err
	}
	buckets, err := bucketFiles(r.InputFiles, r.Logger)
	if err != nil {
		return nil, nil, err
	}
	doc, err := parseParameterFile(buckets.ParamFile)
	if err != nil {
		return nil, nil, err
	}
	return buckets, doc, nil
}

// execute runs entirely under execute_gate: parameter transform,
// engine invocation, and output capture.
func (s *Scheduler) execute(r *request.Request, buckets *Buckets, doc *paramdoc.Document) error {
	tmpDir, err := os.MkdirTemp(s.cfg.TmpDir, r.ID+"-*")
	if err != nil {
		return fmt.Errorf("scheduler: create temp dir: %w", err)
	}

	xmlBytes, err := paramxml.ToXML(doc, buckets.FilePaths, buckets.FastaPaths, &r.OutputDir, &tmpDir)
	if err != nil {
		return fmt.Errorf("scheduler: build parameter XML: %w", err)
	}

	xmlPath := filepath.Join(r.OutputDir, "params.xml")
	if err := os.WriteFile(xmlPath, xmlBytes, 0o644); err != nil {
		return fmt.Errorf("scheduler: write %s: %w", xmlPath, err)
	}

	return runEngine(r, s.cfg.EnginePath, s.cfg.EngineFlag, xmlPath, s.cfg.MQTimeout)
}

func (s *Scheduler) transition(r *request.Request, label, message string) {
	if s.cfg.Verbose {
		r.Logger.Printf("[DEBUG] transition to %s", label)
	}
	r.SetStatus(label)
	s.audit.RecordTransition(r.ID, label, message)
}

func (s *Scheduler) fail(r *request.Request, message string) {
	r.Logger.Printf("[ERROR] %s", message)
	r.Failed(message)
	s.audit.RecordTransition(r.ID, request.StatusFailed, message)
}

func (s *Scheduler) succeed(r *request.Request) {
	r.Logger.Printf("[INFO] %s", request.StatusSuccess)
	r.Success("")
	s.audit.RecordTransition(r.ID, request.StatusSuccess, "")
}
