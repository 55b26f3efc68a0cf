package rules

import (
	"testing"

	"github.com/rcpassos/rasalint/internal/catalog"
	"github.com/rcpassos/rasalint/internal/usage"
)

func buildCatalog(t *testing.T, add func(c *catalog.Catalog)) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	if add != nil {
		add(c)
	}
	return c
}

func buildIndex(add func(idx *usage.Index)) *usage.Index {
	idx := usage.NewIndex()
	if add != nil {
		add(idx)
	}
	return idx
}

func kinds(issues []Issue) map[IssueKind][]string {
	out := map[IssueKind][]string{}
	for _, issue := range issues {
		out[issue.Kind] = append(out[issue.Kind], issue.Subject)
	}
	return out
}

func TestIntentWithFlowUsageButNoExamples(t *testing.T) {
	// Domain declares greet and goodbye; NLU covers only greet; flows use
	// both. No undefined intents, goodbye warns about missing examples only.
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindIntent, "greet", "domain.yml")
		c.Add(catalog.KindIntent, "goodbye", "domain.yml")
	})
	idx := buildIndex(func(i *usage.Index) {
		i.NLUIntents.Add("greet", "nlu.yml")
		i.FlowIntents.Add("greet", "stories.yml")
		i.FlowIntents.Add("goodbye", "stories.yml")
	})

	got := kinds((&Evaluator{}).Evaluate(cat, idx))
	if len(got[UndefinedIntent]) != 0 {
		t.Errorf("expected no undefined intents, got %v", got[UndefinedIntent])
	}
	if len(got[UnusedIntentNoExamples]) != 1 || got[UnusedIntentNoExamples][0] != "goodbye" {
		t.Errorf("expected goodbye missing examples, got %v", got[UnusedIntentNoExamples])
	}
	if len(got[UnusedIntentDead]) != 0 {
		t.Errorf("goodbye is used in flows, must not be dead: %v", got[UnusedIntentDead])
	}
}

func TestUndefinedIntentFromFlows(t *testing.T) {
	idx := buildIndex(func(i *usage.Index) {
		i.FlowIntents.Add("book_flight", "stories.yml")
	})
	issues := (&Evaluator{}).Evaluate(buildCatalog(t, nil), idx)
	got := kinds(issues)
	if len(got[UndefinedIntent]) != 1 || got[UndefinedIntent][0] != "book_flight" {
		t.Fatalf("expected one undefined intent for book_flight, got %v", got[UndefinedIntent])
	}
	for _, issue := range issues {
		if issue.Kind == UndefinedIntent && issue.Severity != SeverityError {
			t.Errorf("undefined intent must be an error, got %v", issue.Severity)
		}
	}
}

func TestUndefinedIntentReportedOncePerName(t *testing.T) {
	idx := buildIndex(func(i *usage.Index) {
		i.NLUIntents.Add("book_flight", "nlu.yml")
		i.FlowIntents.Add("book_flight", "stories.yml")
	})
	got := kinds((&Evaluator{}).Evaluate(buildCatalog(t, nil), idx))
	if len(got[UndefinedIntent]) != 1 {
		t.Errorf("name used in both origins must report once, got %v", got[UndefinedIntent])
	}
}

func TestDeadIntentRaisesBothWarnings(t *testing.T) {
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindIntent, "orphan", "domain.yml")
	})
	got := kinds((&Evaluator{}).Evaluate(cat, usage.NewIndex()))
	if len(got[UnusedIntentNoExamples]) != 1 {
		t.Errorf("expected no-examples warning, got %v", got[UnusedIntentNoExamples])
	}
	if len(got[UnusedIntentDead]) != 1 {
		t.Errorf("expected dead-definition warning, got %v", got[UnusedIntentDead])
	}
}

func TestBuiltinActionsNeverUndefined(t *testing.T) {
	idx := usage.NewIndex()
	for name := range DefaultActions {
		idx.FlowActions.Add(name, "rules.yml")
	}
	got := kinds((&Evaluator{}).Evaluate(buildCatalog(t, nil), idx))
	if len(got[UndefinedAction]) != 0 || len(got[UndefinedResponse]) != 0 {
		t.Errorf("builtins must never be undefined: %v %v", got[UndefinedAction], got[UndefinedResponse])
	}
}

func TestExtraBuiltinsWidenAllowlist(t *testing.T) {
	idx := buildIndex(func(i *usage.Index) {
		i.FlowActions.Add("action_plugin_provided", "rules.yml")
	})
	eval := &Evaluator{ExtraBuiltins: []string{"action_plugin_provided"}}
	got := kinds(eval.Evaluate(buildCatalog(t, nil), idx))
	if len(got[UndefinedAction]) != 0 {
		t.Errorf("extra builtin should be allowed, got %v", got[UndefinedAction])
	}
}

func TestResponsePrefixResolvesAgainstResponsesOnly(t *testing.T) {
	// utter_thanks is declared as a custom action but not as a response; the
	// prefix forces response resolution, so it is an undefined response.
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindAction, "utter_thanks", "domain.yml")
	})
	idx := buildIndex(func(i *usage.Index) {
		i.FlowActions.Add("utter_thanks", "stories.yml")
	})
	got := kinds((&Evaluator{}).Evaluate(cat, idx))
	if len(got[UndefinedResponse]) != 1 || got[UndefinedResponse][0] != "utter_thanks" {
		t.Errorf("expected undefined response for utter_thanks, got %v", got[UndefinedResponse])
	}
	if len(got[UndefinedAction]) != 0 {
		t.Errorf("prefix names must not be checked as actions, got %v", got[UndefinedAction])
	}
}

func TestActionStepMayActivateForm(t *testing.T) {
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindForm, "booking_form", "domain.yml")
	})
	idx := buildIndex(func(i *usage.Index) {
		i.FlowActions.Add("booking_form", "stories.yml")
	})
	got := kinds((&Evaluator{}).Evaluate(cat, idx))
	if len(got[UndefinedAction]) != 0 {
		t.Errorf("form activation via action step is legal, got %v", got[UndefinedAction])
	}
}

func TestUndefinedSlotAndForm(t *testing.T) {
	idx := buildIndex(func(i *usage.Index) {
		i.FlowSlots.Add("city", "stories.yml")
		i.FlowForms.Add("booking_form", "stories.yml")
	})
	got := kinds((&Evaluator{}).Evaluate(buildCatalog(t, nil), idx))
	if len(got[UndefinedSlot]) != 1 || got[UndefinedSlot][0] != "city" {
		t.Errorf("expected undefined slot city, got %v", got[UndefinedSlot])
	}
	if len(got[UndefinedForm]) != 1 || got[UndefinedForm][0] != "booking_form" {
		t.Errorf("expected undefined form booking_form, got %v", got[UndefinedForm])
	}
}

func TestUnusedResponseRoundTrip(t *testing.T) {
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindResponse, "utter_thanks", "domain.yml")
	})

	got := kinds((&Evaluator{}).Evaluate(cat, usage.NewIndex()))
	if len(got[UnusedResponse]) != 1 || got[UnusedResponse][0] != "utter_thanks" {
		t.Fatalf("expected unused response, got %v", got[UnusedResponse])
	}

	idx := buildIndex(func(i *usage.Index) {
		i.FlowActions.Add("utter_thanks", "stories.yml")
	})
	got = kinds((&Evaluator{}).Evaluate(cat, idx))
	if len(got[UnusedResponse]) != 0 {
		t.Errorf("a single matching usage must clear the issue, got %v", got[UnusedResponse])
	}
}

func TestUnusedSlot(t *testing.T) {
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindSlot, "city", "domain.yml")
	})
	got := kinds((&Evaluator{}).Evaluate(cat, usage.NewIndex()))
	if len(got[UnusedSlot]) != 1 {
		t.Errorf("expected unused slot, got %v", got[UnusedSlot])
	}
	for _, issue := range (&Evaluator{}).Evaluate(cat, usage.NewIndex()) {
		if issue.Kind == UnusedSlot && issue.Severity != SeverityInfo {
			t.Errorf("unused slot is informational, got %v", issue.Severity)
		}
	}
}

func TestEntitiesNeverReported(t *testing.T) {
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindEntity, "city", "domain.yml")
	})
	got := kinds((&Evaluator{}).Evaluate(cat, usage.NewIndex()))
	if len(got[UnusedEntity]) != 0 {
		t.Errorf("entity rule is a no-op, got %v", got[UnusedEntity])
	}
}

func TestUnusedIssuesCarryDeclaringFiles(t *testing.T) {
	cat := buildCatalog(t, func(c *catalog.Catalog) {
		c.Add(catalog.KindResponse, "utter_thanks", "a.yml")
		c.Add(catalog.KindResponse, "utter_thanks", "b.yml")
	})
	issues := (&Evaluator{}).Evaluate(cat, usage.NewIndex())
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %d", len(issues))
	}
	if len(issues[0].Files) != 2 {
		t.Errorf("expected both declaring files as evidence, got %v", issues[0].Files)
	}
}
