// Package usage extracts every place a declared name is referenced: intents
// from NLU training data, and intents, actions, slots and forms from story
// and rule steps. Provenance is the set of files of the originating document
// kind, not individual occurrences.
package usage

import (
	"log/slog"
	"sort"

	"github.com/rcpassos/rasalint/internal/schema"
)

// Set maps a referenced name to the files it was seen in.
type Set map[string]map[string]struct{}

// Add records name as used in file.
func (s Set) Add(name, file string) {
	if name == "" {
		return
	}
	if s[name] == nil {
		s[name] = map[string]struct{}{}
	}
	s[name][file] = struct{}{}
}

// Has reports whether name is used at all.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns all used names, sorted.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Sources returns the files a name was seen in, sorted.
func (s Set) Sources(name string) []string {
	out := make([]string, 0, len(s[name]))
	for f := range s[name] {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Index groups the usage sets by reference kind and origin. Flow usage is
// the union across stories and rules.
type Index struct {
	NLUIntents  Set
	FlowIntents Set
	FlowActions Set
	FlowSlots   Set
	FlowForms   Set
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		NLUIntents:  Set{},
		FlowIntents: Set{},
		FlowActions: Set{},
		FlowSlots:   Set{},
		FlowForms:   Set{},
	}
}

// FileError records a file that was skipped during extraction.
type FileError struct {
	Path string
	Err  error
}

// Extract walks all example and flow files and builds the usage index.
// Files that fail to parse contribute nothing and are reported, not fatal.
func Extract(nluFiles, storyFiles, ruleFiles []string) (*Index, []FileError) {
	idx := NewIndex()
	var errs []FileError

	for _, path := range nluFiles {
		doc, err := schema.ParseExampleFile(path)
		if err != nil {
			slog.Warn("skipping nlu file", "path", path, "error", err)
			errs = append(errs, FileError{Path: path, Err: err})
			continue
		}
		for _, item := range doc.NLU {
			idx.NLUIntents.Add(item.Intent, path)
		}
	}

	for _, path := range storyFiles {
		doc, err := schema.ParseStoryFile(path)
		if err != nil {
			slog.Warn("skipping story file", "path", path, "error", err)
			errs = append(errs, FileError{Path: path, Err: err})
			continue
		}
		for _, flow := range doc.Stories {
			idx.addFlow(flow, path)
		}
	}

	for _, path := range ruleFiles {
		doc, err := schema.ParseRuleFile(path)
		if err != nil {
			slog.Warn("skipping rule file", "path", path, "error", err)
			errs = append(errs, FileError{Path: path, Err: err})
			continue
		}
		for _, flow := range doc.Rules {
			idx.addFlow(flow, path)
		}
	}

	return idx, errs
}

func (idx *Index) addFlow(flow schema.Flow, path string) {
	idx.addSteps(flow.Condition, path)
	idx.addSteps(flow.Steps, path)
}

func (idx *Index) addSteps(steps []schema.Step, path string) {
	for _, step := range steps {
		idx.FlowIntents.Add(step.Intent, path)
		idx.FlowActions.Add(step.Action, path)
		// An explicit `active_loop: null` deactivates a form and is not a
		// form usage.
		if step.ActiveLoop.Set && step.ActiveLoop.Name != "" {
			idx.FlowForms.Add(step.ActiveLoop.Name, path)
		}
		for _, slot := range step.SlotWasSet.Names {
			idx.FlowSlots.Add(slot, path)
		}
		if len(step.Or) > 0 {
			idx.addSteps(step.Or, path)
		}
	}
}
