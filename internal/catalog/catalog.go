// Package catalog merges every definition file of a project into one
// in-memory catalog of declared names, keeping track of which file(s)
// declared each name. The catalog lives for a single validation pass.
package catalog

import (
	"log/slog"
	"sort"

	"github.com/rcpassos/rasalint/internal/schema"
)

// Kind identifies the namespace a defined name lives in.
type Kind string

const (
	KindIntent   Kind = "intent"
	KindEntity   Kind = "entity"
	KindSlot     Kind = "slot"
	KindResponse Kind = "response"
	KindAction   Kind = "action"
	KindForm     Kind = "form"
)

// DefinedItem is one declared name. DeclaringFiles accumulates across files:
// the same name declared in several split definition files is one item with
// several declaring files, never a conflict.
type DefinedItem struct {
	Kind           Kind
	Name           string
	DeclaringFiles map[string]struct{}
}

// Declarers returns the declaring files as a sorted list.
func (d *DefinedItem) Declarers() []string {
	out := make([]string, 0, len(d.DeclaringFiles))
	for f := range d.DeclaringFiles {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Catalog is the merged project-wide set of declared names, one map per kind.
type Catalog struct {
	Intents   map[string]*DefinedItem
	Entities  map[string]*DefinedItem
	Slots     map[string]*DefinedItem
	Responses map[string]*DefinedItem
	Actions   map[string]*DefinedItem
	Forms     map[string]*DefinedItem
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		Intents:   map[string]*DefinedItem{},
		Entities:  map[string]*DefinedItem{},
		Slots:     map[string]*DefinedItem{},
		Responses: map[string]*DefinedItem{},
		Actions:   map[string]*DefinedItem{},
		Forms:     map[string]*DefinedItem{},
	}
}

func (c *Catalog) byKind(kind Kind) map[string]*DefinedItem {
	switch kind {
	case KindIntent:
		return c.Intents
	case KindEntity:
		return c.Entities
	case KindSlot:
		return c.Slots
	case KindResponse:
		return c.Responses
	case KindAction:
		return c.Actions
	case KindForm:
		return c.Forms
	}
	return nil
}

// Add upserts a name into the catalog, recording file as a declarer.
func (c *Catalog) Add(kind Kind, name, file string) {
	if name == "" {
		return
	}
	m := c.byKind(kind)
	item, ok := m[name]
	if !ok {
		item = &DefinedItem{Kind: kind, Name: name, DeclaringFiles: map[string]struct{}{}}
		m[name] = item
	}
	item.DeclaringFiles[file] = struct{}{}
}

// Has reports whether a name is declared under a kind.
func (c *Catalog) Has(kind Kind, name string) bool {
	_, ok := c.byKind(kind)[name]
	return ok
}

// Item returns the defined item for a name, or nil.
func (c *Catalog) Item(kind Kind, name string) *DefinedItem {
	return c.byKind(kind)[name]
}

// FileError records a file that was skipped during a pass.
type FileError struct {
	Path string
	Err  error
}

// Aggregate parses every definition file and folds it into one catalog.
// Files that fail to parse are logged, reported, and skipped; one malformed
// file never aborts the catalog.
func Aggregate(files []string) (*Catalog, []FileError) {
	cat := New()
	var errs []FileError
	for _, path := range files {
		doc, err := schema.ParseDefinitionFile(path)
		if err != nil {
			slog.Warn("skipping definition file", "path", path, "error", err)
			errs = append(errs, FileError{Path: path, Err: err})
			continue
		}
		merge(cat, doc, path)
	}
	return cat, errs
}

func merge(cat *Catalog, doc *schema.DefinitionDoc, path string) {
	for _, e := range doc.Intents {
		cat.Add(KindIntent, e.Name, path)
	}
	for _, e := range doc.Entities {
		cat.Add(KindEntity, e.Name, path)
	}
	for name := range doc.Slots {
		cat.Add(KindSlot, name, path)
	}
	for name := range doc.Responses {
		cat.Add(KindResponse, name, path)
	}
	for name := range doc.Forms {
		cat.Add(KindForm, name, path)
	}
	for _, name := range doc.Actions {
		cat.Add(KindAction, name, path)
	}
}
