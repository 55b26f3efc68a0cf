// Package rules evaluates the project-wide detection rules: every referenced
// name must be declared somewhere, and declared names ought to be referenced.
// The evaluator is pure: catalog and usage index in, flat issue list out.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rcpassos/rasalint/internal/catalog"
	"github.com/rcpassos/rasalint/internal/usage"
)

// Severity orders issues by how actionable they are.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// IssueKind identifies the rule that produced an issue.
type IssueKind string

const (
	UndefinedIntent   IssueKind = "undefined-intent"
	UndefinedResponse IssueKind = "undefined-response"
	UndefinedAction   IssueKind = "undefined-action"
	UndefinedSlot     IssueKind = "undefined-slot"
	UndefinedForm     IssueKind = "undefined-form"
	// UnusedIntentNoExamples fires when an intent has no NLU training data,
	// even when flows still reference it.
	UnusedIntentNoExamples IssueKind = "unused-intent-no-examples"
	// UnusedIntentDead fires when an intent has neither training data nor
	// any flow reference. It always co-exists with UnusedIntentNoExamples.
	UnusedIntentDead IssueKind = "unused-intent-dead"
	UnusedResponse   IssueKind = "unused-response"
	UnusedSlot       IssueKind = "unused-slot"
	// UnusedEntity is reserved: entity usage detection needs NLU annotation
	// parsing, so the rule slot exists but never fires.
	UnusedEntity IssueKind = "unused-entity"
)

// Undefined reports whether the kind is an undefined-reference issue, as
// opposed to an unused-definition one.
func (k IssueKind) Undefined() bool {
	return strings.HasPrefix(string(k), "undefined-")
}

// Issue is one finding, created once per (rule, name) and never mutated.
type Issue struct {
	Kind     IssueKind
	Severity Severity
	Subject  string
	Message  string
	// Files is the evidence: declaring files for unused-* issues, the flow
	// files of a pass for undefined-* issues (occurrence-level provenance is
	// not tracked).
	Files []string
}

// ResponsePrefix marks an action name as a canned-response action. Such
// names resolve against responses only, never against custom actions.
const ResponsePrefix = "utter_"

// DefaultActions are the framework's builtin actions, valid without any
// declaration.
var DefaultActions = map[string]struct{}{
	"action_listen":                  {},
	"action_restart":                 {},
	"action_session_start":           {},
	"action_default_fallback":        {},
	"action_deactivate_loop":         {},
	"action_revert_fallback_events":  {},
	"action_default_ask_affirmation": {},
	"action_default_ask_rephrase":    {},
	"action_two_stage_fallback":      {},
	"action_unlikely_intent":         {},
	"action_extract_slots":           {},
	"action_back":                    {},
}

// Evaluator runs the detection rules. ExtraBuiltins widens the allowlist
// with project-configured action names.
type Evaluator struct {
	ExtraBuiltins []string
}

func (e *Evaluator) builtin(name string) bool {
	if _, ok := DefaultActions[name]; ok {
		return true
	}
	for _, b := range e.ExtraBuiltins {
		if name == b {
			return true
		}
	}
	return false
}

// Evaluate runs all rules in a fixed order and returns the flat issue list.
// Rule order only affects list ordering, never the set of findings.
func (e *Evaluator) Evaluate(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	issues = append(issues, e.undefinedIntents(cat, idx)...)
	issues = append(issues, e.undefinedActions(cat, idx)...)
	issues = append(issues, e.undefinedSlots(cat, idx)...)
	issues = append(issues, e.undefinedForms(cat, idx)...)
	issues = append(issues, e.unusedIntents(cat, idx)...)
	issues = append(issues, e.unusedResponses(cat, idx)...)
	issues = append(issues, e.unusedSlots(cat, idx)...)
	issues = append(issues, e.unusedEntities(cat, idx)...)
	return issues
}

func (e *Evaluator) undefinedIntents(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	seen := map[string]bool{}
	for _, set := range []usage.Set{idx.NLUIntents, idx.FlowIntents} {
		for _, name := range set.Names() {
			if seen[name] || cat.Has(catalog.KindIntent, name) {
				continue
			}
			seen[name] = true
			issues = append(issues, Issue{
				Kind:     UndefinedIntent,
				Severity: SeverityError,
				Subject:  name,
				Message:  fmt.Sprintf("intent %q is used but not declared in any domain file", name),
			})
		}
	}
	return issues
}

func (e *Evaluator) undefinedActions(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	for _, name := range idx.FlowActions.Names() {
		if e.builtin(name) {
			continue
		}
		if strings.HasPrefix(name, ResponsePrefix) {
			// Dual identity: a response name in an action step resolves
			// against responses only.
			if !cat.Has(catalog.KindResponse, name) {
				issues = append(issues, Issue{
					Kind:     UndefinedResponse,
					Severity: SeverityError,
					Subject:  name,
					Message:  fmt.Sprintf("response %q is used but not declared in any domain file", name),
				})
			}
			continue
		}
		// Activating a form through an action step is legal, so a form
		// declaration satisfies an action reference.
		if !cat.Has(catalog.KindAction, name) && !cat.Has(catalog.KindForm, name) {
			issues = append(issues, Issue{
				Kind:     UndefinedAction,
				Severity: SeverityError,
				Subject:  name,
				Message:  fmt.Sprintf("action %q is used but not declared in any domain file", name),
			})
		}
	}
	return issues
}

func (e *Evaluator) undefinedSlots(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	for _, name := range idx.FlowSlots.Names() {
		if cat.Has(catalog.KindSlot, name) {
			continue
		}
		issues = append(issues, Issue{
			Kind:     UndefinedSlot,
			Severity: SeverityError,
			Subject:  name,
			Message:  fmt.Sprintf("slot %q is used but not declared in any domain file", name),
		})
	}
	return issues
}

func (e *Evaluator) undefinedForms(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	for _, name := range idx.FlowForms.Names() {
		if cat.Has(catalog.KindForm, name) {
			continue
		}
		issues = append(issues, Issue{
			Kind:     UndefinedForm,
			Severity: SeverityError,
			Subject:  name,
			Message:  fmt.Sprintf("form %q is used but not declared in any domain file", name),
		})
	}
	return issues
}

func (e *Evaluator) unusedIntents(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	for _, name := range sortedNames(cat.Intents) {
		if idx.NLUIntents.Has(name) {
			continue
		}
		item := cat.Intents[name]
		issues = append(issues, Issue{
			Kind:     UnusedIntentNoExamples,
			Severity: SeverityWarning,
			Subject:  name,
			Message:  fmt.Sprintf("intent %q has no NLU training examples", name),
			Files:    item.Declarers(),
		})
		if !idx.FlowIntents.Has(name) {
			issues = append(issues, Issue{
				Kind:     UnusedIntentDead,
				Severity: SeverityWarning,
				Subject:  name,
				Message:  fmt.Sprintf("intent %q has no training examples and is never used in a story or rule", name),
				Files:    item.Declarers(),
			})
		}
	}
	return issues
}

func (e *Evaluator) unusedResponses(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	for _, name := range sortedNames(cat.Responses) {
		if idx.FlowActions.Has(name) {
			continue
		}
		issues = append(issues, Issue{
			Kind:     UnusedResponse,
			Severity: SeverityInfo,
			Subject:  name,
			Message:  fmt.Sprintf("response %q is never used in a story or rule", name),
			Files:    cat.Responses[name].Declarers(),
		})
	}
	return issues
}

// unusedSlots does not see slots referenced only through a form's
// required_slots, so those report as unused. Known imprecision.
func (e *Evaluator) unusedSlots(cat *catalog.Catalog, idx *usage.Index) []Issue {
	var issues []Issue
	for _, name := range sortedNames(cat.Slots) {
		if idx.FlowSlots.Has(name) {
			continue
		}
		issues = append(issues, Issue{
			Kind:     UnusedSlot,
			Severity: SeverityInfo,
			Subject:  name,
			Message:  fmt.Sprintf("slot %q is never set in a story or rule", name),
			Files:    cat.Slots[name].Declarers(),
		})
	}
	return issues
}

// unusedEntities is a no-op: detecting entity usage needs annotated-span
// parsing of NLU examples. The rule slot stays so the evaluator's shape
// doesn't change when it lands.
func (e *Evaluator) unusedEntities(*catalog.Catalog, *usage.Index) []Issue {
	return nil
}

func sortedNames(m map[string]*catalog.DefinedItem) []string {
	out := make([]string, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
