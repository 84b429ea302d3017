// Package config provides TOML configuration file support for
// mqrund: CLI flags win, the config file supplies values for
// anything the CLI left at its built-in default, and built-in defaults
// apply if neither is set.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full on-disk shape of mqrund's TOML configuration
// file.
//
//	[listen]
//	dir = "/srv/mqrund/incoming"
//	output_dir = "/srv/mqrund/output"
//
//	[engine]
//	path = "/opt/maxquant/bin/MaxQuantCmd"
//	flag = "-mqpar"
//
//	[limits]
//	num_workers = 2
//	sem_timeout = 200
//	scan_interval = 2
type Config struct {
	Listen    ListenConfig    `toml:"listen"`
	Engine    EngineConfig    `toml:"engine"`
	Limits    LimitsConfig    `toml:"limits"`
	Logging   LoggingConfig   `toml:"logging"`
	Audit     AuditConfig     `toml:"audit"`
	StatusWeb StatusWebConfig `toml:"statusweb"`
}

// ListenConfig describes the shared submission-queue directory.
type ListenConfig struct {
	// Dir is the directory the discovery loop polls for candidate
	// request directories.
	Dir string `toml:"dir"`

	// TaskRe, if non-empty, is a regular expression a candidate
	// directory's name must fully match to be admitted.
	TaskRe string `toml:"task_re"`

	// OutputDir, if non-empty, is created at startup. Per-request
	// engine outputs are not placed here; they always go to the
	// request directory's own output/ subdirectory.
	OutputDir string `toml:"output_dir"`

	// TmpDir is the base directory for per-task temporary directories.
	TmpDir string `toml:"tmp_dir"`
}

// EngineConfig describes how to invoke the external engine binary.
type EngineConfig struct {
	Path string `toml:"path"`

	// Flag is the CLI flag used to pass the XML parameter file to the
	// engine. Source variants disagree between "-mqpar" and
	// "-mqparams"; left fully configurable rather than guessed.
	Flag string `toml:"flag"`

	// MQTimeoutSeconds bounds one engine invocation. Zero means
	// unbounded.
	MQTimeoutSeconds int `toml:"mq_timeout"`
}

// LimitsConfig describes admission-gate sizing and discovery pacing.
type LimitsConfig struct {
	NumWorkers          int `toml:"num_workers"`
	SemTimeoutSeconds   int `toml:"sem_timeout"`
	ScanIntervalSeconds int `toml:"scan_interval"`
	BeatIntervalSeconds int `toml:"beat_interval"`
	MaxTasks            int `toml:"max_tasks"`
}

// LoggingConfig describes the global log sink.
type LoggingConfig struct {
	LogFile string `toml:"log_file"`

	// Debug enables verbose per-transition logging of each task's
	// state machine, beyond the terminal SUCCESS/FAILED log lines.
	Debug bool `toml:"debug"`
}

// AuditConfig describes the optional SQLite audit trail.
type AuditConfig struct {
	// DBPath, if non-empty, enables the audit trail at this path.
	DBPath string `toml:"db_path"`
}

// StatusWebConfig describes the optional read-only status page.
type StatusWebConfig struct {
	// Listen, if non-empty, enables the status page on this address.
	Listen         string `toml:"listen"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	PasswordFormat string `toml:"password_format"`
}

// Load reads and parses a TOML configuration file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// MergeString returns cliValue if it differs from defaultValue
// (meaning the flag was explicitly set), otherwise cfgValue if
// non-empty, otherwise cliValue (which at that point equals
// defaultValue).
func MergeString(cfgValue, cliValue, defaultValue string) string {
	if cliValue != defaultValue {
		return cliValue
	}
	if cfgValue != "" {
		return cfgValue
	}
	return cliValue
}

// MergeBool treats a true CLI flag as explicitly set; otherwise the
// config file value wins.
func MergeBool(cfgValue, cliValue bool) bool {
	if cliValue {
		return true
	}
	return cfgValue
}

// MergeInt mirrors MergeString for integer options (worker counts,
// timeouts expressed in whole seconds, task caps).
func MergeInt(cfgValue, cliValue, defaultValue int) int {
	if cliValue != defaultValue {
		return cliValue
	}
	if cfgValue != 0 {
		return cfgValue
	}
	return cliValue
}
