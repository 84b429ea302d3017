// Package main is the entry point for mqrund.
//
// mqrund turns a shared directory into a submission queue for an
// external batch-compute engine: clients drop input files and a
// parameter document into a per-request subdirectory and signal
// readiness with a sentinel file; mqrund discovers, validates,
// schedules, executes, and reports the outcome of each request,
// running multiple requests concurrently against two independently
// sized admission gates (file preparation, engine execution).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"syscall"
	"time"

	"github.com/qbic-pipelines/mqrund/internal/audit"
	"github.com/qbic-pipelines/mqrund/internal/config"
	"github.com/qbic-pipelines/mqrund/internal/request"
	"github.com/qbic-pipelines/mqrund/internal/scheduler"
	"github.com/qbic-pipelines/mqrund/internal/statusweb"
)

func main() {
	// Define command-line flags. Every value here has a built-in
	// default; config.MergeString/MergeInt/MergeBool below treat a
	// flag value that still equals its default as "not explicitly
	// set", letting a TOML config file supply it instead.
	listenDir := flag.String("listen-dir", "",
		"Directory to poll for candidate request directories (required)")

	outputDirFlag := flag.String("output-dir", "",
		"Base directory for engine output bookkeeping; created at startup if set."+
			" Per-request outputs are always nested under the request's own directory.")

	taskRe := flag.String("task-re", "",
		"Regular expression a request directory's name must fully match to be admitted (default: accept all)")

	engineFlagFlag := flag.String("engine-flag", "-mqpar",
		"CLI flag used to pass the XML parameter file to the engine binary")

	enginePath := flag.String("engine-path", "",
		"Path to the engine binary (required)")

	tmpDir := flag.String("tmp-dir", os.TempDir(),
		"Base directory for per-task temporary directories")

	numWorkers := flag.Int("num-workers", 2,
		"Parallelism of each of the two admission gates (file preparation, engine execution)")

	semTimeout := flag.Int("sem-timeout", 200,
		"Seconds to wait on an admission gate before failing the task")

	mqTimeout := flag.Int("mq-timeout", 0,
		"Seconds bounding one engine invocation; 0 means unbounded")

	scanInterval := flag.Int("scan-interval", 2,
		"Seconds between discovery passes over listen-dir")

	beatInterval := flag.Int("beat-interval", 10,
		"Seconds between heartbeat appends for an in-flight task")

	maxTasks := flag.Int("max-tasks", 0,
		"Hard cap on admitted requests before the server stops accepting new work; 0 means unlimited")

	logFile := flag.String("log-file", "",
		"Path to a global log file (empty logs to stderr)")

	debugFlag := flag.Bool("debug", false,
		"Log every task state transition, not just terminal outcomes")

	auditDB := flag.String("audit-db", "",
		"Path to a SQLite audit database recording admissions and transitions (empty disables the audit trail)")

	statusListen := flag.String("status-listen", "",
		"Address for the read-only status page (empty disables it), e.g. localhost:8090")

	statusUser := flag.String("status-user", "",
		"Status page HTTP Basic Auth username (empty disables authentication)")

	statusPassword := flag.String("status-password", "",
		"Status page HTTP Basic Auth password")

	statusPasswordFormat := flag.String("status-password-format", "plain",
		"Status page password format: 'plain' or 'bcrypt'")

	hashPassword := flag.String("hash-password", "",
		"Generate a bcrypt hash for the given password and exit (utility command)")

	configFile := flag.String("config", "",
		"Configuration file path (TOML format, optional)")

	flag.Parse()

	// -hash-password is a standalone utility: print the hash and exit,
	// same convenience as generating a status_password for the config
	// file without running a separate tool.
	if *hashPassword != "" {
		hash, err := statusweb.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating bcrypt hash: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Bcrypt hash: %s\n\n", hash)
		fmt.Println("Add this to your configuration file:")
		fmt.Println("[statusweb]")
		fmt.Println("user = \"admin\"")
		fmt.Printf("password = \"%s\"\n", hash)
		fmt.Println("password_format = \"bcrypt\"")
		os.Exit(0)
	}

	// Load configuration file if specified. CLI flags still take
	// priority over anything it sets; it only fills in values the
	// command line left at its default.
	if *configFile != "" {
		cfg, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("[FATAL] failed to load config file: %v", err)
		}
		log.Printf("[INFO] loaded configuration from: %s", *configFile)

		*listenDir = config.MergeString(cfg.Listen.Dir, *listenDir, "")
		*outputDirFlag = config.MergeString(cfg.Listen.OutputDir, *outputDirFlag, "")
		*taskRe = config.MergeString(cfg.Listen.TaskRe, *taskRe, "")
		*tmpDir = config.MergeString(cfg.Listen.TmpDir, *tmpDir, os.TempDir())
		*enginePath = config.MergeString(cfg.Engine.Path, *enginePath, "")
		*engineFlagFlag = config.MergeString(cfg.Engine.Flag, *engineFlagFlag, "-mqpar")
		*mqTimeout = config.MergeInt(cfg.Engine.MQTimeoutSeconds, *mqTimeout, 0)
		*numWorkers = config.MergeInt(cfg.Limits.NumWorkers, *numWorkers, 2)
		*semTimeout = config.MergeInt(cfg.Limits.SemTimeoutSeconds, *semTimeout, 200)
		*scanInterval = config.MergeInt(cfg.Limits.ScanIntervalSeconds, *scanInterval, 2)
		*beatInterval = config.MergeInt(cfg.Limits.BeatIntervalSeconds, *beatInterval, 10)
		*maxTasks = config.MergeInt(cfg.Limits.MaxTasks, *maxTasks, 0)
		*logFile = config.MergeString(cfg.Logging.LogFile, *logFile, "")
		*debugFlag = config.MergeBool(cfg.Logging.Debug, *debugFlag)
		*auditDB = config.MergeString(cfg.Audit.DBPath, *auditDB, "")
		*statusListen = config.MergeString(cfg.StatusWeb.Listen, *statusListen, "")
		*statusUser = config.MergeString(cfg.StatusWeb.User, *statusUser, "")
		*statusPassword = config.MergeString(cfg.StatusWeb.Password, *statusPassword, "")
		*statusPasswordFormat = config.MergeString(cfg.StatusWeb.PasswordFormat, *statusPasswordFormat, "plain")
	}

	if *listenDir == "" {
		log.Fatalf("[FATAL] -listen-dir is required")
	}
	if *enginePath == "" {
		log.Fatalf("[FATAL] -engine-path is required")
	}
	if *statusPasswordFormat != "plain" && *statusPasswordFormat != "bcrypt" {
		log.Fatalf("[FATAL] invalid -status-password-format: %s (must be 'plain' or 'bcrypt')", *statusPasswordFormat)
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("[FATAL] failed to open log file %s: %v", *logFile, err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	log.Printf("[INFO] mqrund starting")
	log.Printf("[INFO] listen-dir: %s", *listenDir)
	log.Printf("[INFO] engine: %s %s", *enginePath, *engineFlagFlag)
	log.Printf("[INFO] num-workers: %d, sem-timeout: %ds, mq-timeout: %ds", *numWorkers, *semTimeout, *mqTimeout)

	if err := os.MkdirAll(*listenDir, 0o755); err != nil {
		log.Fatalf("[FATAL] failed to create listen-dir %s: %v", *listenDir, err)
	}
	if *outputDirFlag != "" {
		if err := os.MkdirAll(*outputDirFlag, 0o755); err != nil {
			log.Fatalf("[FATAL] failed to create output-dir %s: %v", *outputDirFlag, err)
		}
	}
	if err := os.MkdirAll(*tmpDir, 0o755); err != nil {
		log.Fatalf("[FATAL] failed to create tmp-dir %s: %v", *tmpDir, err)
	}

	var taskPattern *regexp.Regexp
	if *taskRe != "" {
		re, err := request.CompileTaskPattern(*taskRe)
		if err != nil {
			log.Fatalf("[FATAL] invalid -task-re: %v", err)
		}
		taskPattern = re
	}

	var auditStore *audit.Store
	if *auditDB != "" {
		if err := os.MkdirAll(filepath.Dir(*auditDB), 0o755); err != nil {
			log.Fatalf("[FATAL] failed to create audit-db directory: %v", err)
		}
		store, err := audit.Open(*auditDB)
		if err != nil {
			log.Fatalf("[FATAL] failed to open audit database: %v", err)
		}
		defer store.Close()
		auditStore = store
		log.Printf("[INFO] audit trail: %s", *auditDB)
	}

	discoverer := &request.Discoverer{
		ListenDir:    *listenDir,
		TaskPattern:  taskPattern,
		ScanInterval: time.Duration(*scanInterval) * time.Second,
	}

	sched := scheduler.New(scheduler.Config{
		NumWorkers:   *numWorkers,
		SemTimeout:   time.Duration(*semTimeout) * time.Second,
		MQTimeout:    time.Duration(*mqTimeout) * time.Second,
		EnginePath:   *enginePath,
		EngineFlag:   *engineFlagFlag,
		TmpDir:       *tmpDir,
		BeatInterval: time.Duration(*beatInterval) * time.Second,
		MaxTasks:     *maxTasks,
		Verbose:      *debugFlag,
	}, auditStore)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Printf("[INFO] received %s, shutting down", sig)
		cancel()
	}()

	if *statusListen != "" {
		statusSrv := statusweb.New(statusweb.Config{
			Listen:         *statusListen,
			User:           *statusUser,
			Password:       *statusPassword,
			PasswordFormat: *statusPasswordFormat,
		}, auditStore)
		go func() {
			if err := statusSrv.Serve(ctx); err != nil {
				log.Printf("[ERROR] status page: %v", err)
			}
		}()
	}

	requests := discoverer.Discover(ctx)
	sched.Serve(ctx, requests)
	log.Printf("[INFO] mqrund stopped")
}
