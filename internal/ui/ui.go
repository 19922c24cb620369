// Package ui provides terminal progress and status display for index builds.
package ui

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Stage represents a build pipeline stage.
type Stage int

const (
	// StageLoading is the catalog loading stage.
	StageLoading Stage = iota
	// StageDeduping is the duplicate elimination stage.
	StageDeduping
	// StageProjecting is the search record projection stage.
	StageProjecting
	// StageIndexing is the index construction stage.
	StageIndexing
	// StageWriting is the artifact writing stage.
	StageWriting
	// StageComplete indicates the build is complete.
	StageComplete
)

// String returns the human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageLoading:
		return "Loading"
	case StageDeduping:
		return "Deduping"
	case StageProjecting:
		return "Projecting"
	case StageIndexing:
		return "Indexing"
	case StageWriting:
		return "Writing"
	case StageComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Icon returns the short stage icon for plain text output.
func (s Stage) Icon() string {
	switch s {
	case StageLoading:
		return "LOAD"
	case StageDeduping:
		return "DEDUP"
	case StageProjecting:
		return "PROJECT"
	case StageIndexing:
		return "INDEX"
	case StageWriting:
		return "WRITE"
	case StageComplete:
		return "DONE"
	default:
		return "???"
	}
}

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Stage   Stage
	Current int
	Total   int
	Message string
}

// ErrorEvent represents an error during a build.
type ErrorEvent struct {
	CardID string
	Err    error
	IsWarn bool
}

// CompletionStats contains final build statistics.
type CompletionStats struct {
	Sets       int
	Cards      int
	Duplicates int
	Skipped    int
	Duration   time.Duration
	Warnings   int
}

// Renderer defines the interface for progress display.
type Renderer interface {
	// UpdateProgress updates progress display.
	UpdateProgress(event ProgressEvent)

	// AddError adds an error to display.
	AddError(event ErrorEvent)

	// Complete marks the build as complete with summary.
	Complete(stats CompletionStats)
}

// Config configures the renderer.
type Config struct {
	Output  io.Writer
	NoColor bool
	Quiet   bool
}

// NewRenderer creates an appropriate renderer for the environment.
// Color is disabled for non-TTY outputs, CI environments, and NO_COLOR.
func NewRenderer(cfg Config) Renderer {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if !cfg.NoColor {
		cfg.NoColor = !IsTTY(cfg.Output) || DetectNoColor() || DetectCI()
	}
	return NewPlainRenderer(cfg)
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}
