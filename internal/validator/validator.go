// Package validator orchestrates a full validation pass: discover files,
// aggregate definitions, extract usages, evaluate rules, route issues. It
// also owns the debounce policy that turns file-change signals into passes.
package validator

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rcpassos/rasalint/internal/catalog"
	"github.com/rcpassos/rasalint/internal/config"
	"github.com/rcpassos/rasalint/internal/project"
	"github.com/rcpassos/rasalint/internal/rules"
	"github.com/rcpassos/rasalint/internal/usage"
)

// State tracks where a pass is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateAggregating
	StateEvaluating
	StateRouted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAggregating:
		return "aggregating"
	case StateEvaluating:
		return "evaluating"
	case StateRouted:
		return "routed"
	}
	return "unknown"
}

// SkippedFile records a file left out of a pass because it failed to parse.
type SkippedFile struct {
	Path string
	Err  error
}

// Report is the outcome of one validation pass. All data inside belongs to
// that pass alone; nothing is shared with concurrent passes.
type Report struct {
	Generation uint64
	Files      *project.Files
	Catalog    *catalog.Catalog
	Usages     *usage.Index
	Issues     []rules.Issue
	ByFile     map[string][]rules.Issue
	Skipped    []SkippedFile
	StartedAt  time.Time
	Duration   time.Duration
}

// ErrorCount returns the number of error-severity issues.
func (r *Report) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == rules.SeverityError {
			n++
		}
	}
	return n
}

// Validator runs validation passes over one project. Safe for concurrent
// use; overlapping passes each own fresh data and the generation counter
// makes the newest started pass win publication.
type Validator struct {
	root    string
	cfg     config.Config
	scanner *project.Scanner

	mu           sync.Mutex
	state        State
	nextGen      uint64
	publishedGen uint64
	latest       *Report
	subscribers  []func(*Report)
	debounce     *time.Timer
}

// New creates a Validator for a project root.
func New(root string, cfg config.Config) *Validator {
	scanner := project.NewScanner(root)
	scanner.IgnoreDirs = append(scanner.IgnoreDirs, cfg.IgnoreDirs...)
	return &Validator{root: root, cfg: cfg, scanner: scanner}
}

// State returns the current pass state, for observation only.
func (v *Validator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Latest returns the most recently published report, or nil.
func (v *Validator) Latest() *Report {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.latest
}

// Subscribe registers a callback invoked with every published report.
func (v *Validator) Subscribe(fn func(*Report)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subscribers = append(v.subscribers, fn)
}

// Validate runs one full pass. It never fails: per-file problems degrade to
// a partial report and are listed in Report.Skipped, and an unexpected
// failure mid-pass yields whatever the pass had built so far.
func (v *Validator) Validate(ctx context.Context) (report *Report) {
	start := time.Now()

	v.mu.Lock()
	v.nextGen++
	gen := v.nextGen
	v.state = StateAggregating
	v.mu.Unlock()

	report = &Report{Generation: gen, StartedAt: start, ByFile: map[string][]rules.Issue{}}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("validation pass failed", "generation", gen, "panic", r)
			v.setState(StateIdle)
		}
	}()

	files, err := v.scanner.Scan()
	if err != nil {
		// Discovery failing wholesale still yields an empty, publishable
		// report rather than an error.
		slog.Error("project scan failed", "root", v.root, "error", err)
		files = &project.Files{}
	}
	report.Files = files

	cat, catErrs := catalog.Aggregate(files.DefinitionFiles)
	report.Catalog = cat
	for _, fe := range catErrs {
		report.Skipped = append(report.Skipped, SkippedFile{Path: fe.Path, Err: fe.Err})
	}

	v.setState(StateEvaluating)

	idx, useErrs := usage.Extract(files.NLUFiles, files.StoryFiles, files.RuleFiles)
	report.Usages = idx
	for _, fe := range useErrs {
		report.Skipped = append(report.Skipped, SkippedFile{Path: fe.Path, Err: fe.Err})
	}

	eval := &rules.Evaluator{ExtraBuiltins: v.cfg.ExtraBuiltinActions}
	report.Issues = eval.Evaluate(cat, idx)

	v.setState(StateRouted)
	report.ByFile = rules.Route(report.Issues, files.FlowFiles())
	report.Duration = time.Since(start)

	v.publish(gen, report)

	if err := ctx.Err(); err != nil {
		slog.Debug("validation finished after context end", "generation", gen)
	}
	slog.Info("validation pass complete",
		"generation", gen,
		"issues", len(report.Issues),
		"skipped", len(report.Skipped),
		"duration", report.Duration)
	return report
}

func (v *Validator) setState(s State) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}

// publish delivers a report unless a newer pass already published. Stale
// passes run to completion but their results are discarded.
func (v *Validator) publish(gen uint64, report *Report) {
	v.mu.Lock()
	if gen <= v.publishedGen {
		v.state = StateIdle
		v.mu.Unlock()
		slog.Debug("discarding stale validation pass", "generation", gen, "published", v.publishedGen)
		return
	}
	v.publishedGen = gen
	v.latest = report
	subs := make([]func(*Report), len(v.subscribers))
	copy(subs, v.subscribers)
	v.state = StateIdle
	v.mu.Unlock()

	for _, fn := range subs {
		fn(report)
	}
}

// OnFilesChanged (re)starts the debounce timer. Every signal resets the
// timer; a pass starts only once the quiet interval elapses with no further
// signals. Signals arriving mid-pass schedule another pass rather than
// cancelling the running one.
func (v *Validator) OnFilesChanged(paths []string) {
	relevant := false
	for _, p := range paths {
		if RelevantPath(p) {
			relevant = true
			break
		}
	}
	if !relevant {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.debounce != nil {
		v.debounce.Stop()
	}
	v.debounce = time.AfterFunc(v.cfg.Debounce(), func() {
		v.Validate(context.Background())
	})
}

// Close stops any pending debounce timer.
func (v *Validator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.debounce != nil {
		v.debounce.Stop()
		v.debounce = nil
	}
}

// RelevantPath reports whether a changed path can affect validation
// results: any YAML document or the linter config.
func RelevantPath(path string) bool {
	base := filepath.Base(path)
	if base == config.ConfigFileName {
		return true
	}
	return strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".yaml")
}
