// Package project locates a conversational project on disk and enumerates
// its YAML files into typed buckets. Classification goes by top-level keys,
// not filenames, so split and renamed files land in the right bucket.
package project

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNotAProject = errors.New("not a conversational project")

// rootMarkers identify a project root directory.
var rootMarkers = []string{"domain.yml", "domain.yaml", "config.yml", "data"}

// FindRoot walks up from start until it finds a directory containing a
// project marker.
func FindRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(cur, marker)); err == nil {
				return cur, nil
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", ErrNotAProject
		}
		cur = parent
	}
}

// Files holds the discovered project files, bucketed by document kind. A
// single file may appear in several buckets when it mixes sections.
type Files struct {
	DefinitionFiles []string
	NLUFiles        []string
	StoryFiles      []string
	RuleFiles       []string
}

// FlowFiles returns stories and rules as one list, stories first.
func (f *Files) FlowFiles() []string {
	out := make([]string, 0, len(f.StoryFiles)+len(f.RuleFiles))
	out = append(out, f.StoryFiles...)
	out = append(out, f.RuleFiles...)
	return out
}

// Scanner discovers project files under a root.
type Scanner struct {
	Root       string
	IgnoreDirs []string
}

// NewScanner creates a Scanner for a project root.
func NewScanner(root string) *Scanner {
	return &Scanner{Root: root, IgnoreDirs: []string{"models", "tests", ".rasa"}}
}

// Scan walks the project tree and classifies every YAML file.
func (s *Scanner) Scan() (*Files, error) {
	files := &Files{}
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != s.Root && (strings.HasPrefix(name, ".") || s.ignored(name)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yml") && !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		s.classify(path, files)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files.DefinitionFiles)
	sort.Strings(files.NLUFiles)
	sort.Strings(files.StoryFiles)
	sort.Strings(files.RuleFiles)
	return files, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, d := range s.IgnoreDirs {
		if name == d {
			return true
		}
	}
	return false
}

var definitionKeys = []string{"intents", "entities", "slots", "responses", "forms", "actions"}

// classify probes a file's top-level keys and appends it to every bucket it
// belongs to. Unreadable or non-mapping files are skipped.
func (s *Scanner) classify(path string, files *Files) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("skipping unreadable file", "path", path, "error", err)
		return
	}
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		slog.Debug("skipping non-mapping yaml", "path", path, "error", err)
		return
	}
	for _, key := range definitionKeys {
		if _, ok := top[key]; ok {
			files.DefinitionFiles = append(files.DefinitionFiles, path)
			break
		}
	}
	if _, ok := top["nlu"]; ok {
		files.NLUFiles = append(files.NLUFiles, path)
	}
	if _, ok := top["stories"]; ok {
		files.StoryFiles = append(files.StoryFiles, path)
	}
	if _, ok := top["rules"]; ok {
		files.RuleFiles = append(files.RuleFiles, path)
	}
}
