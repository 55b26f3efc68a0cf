package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestFindRootFromSubdir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "domain.yml", "intents:\n  - greet\n")
	sub := filepath.Join(root, "data", "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedGot, _ := filepath.EvalSymlinks(got)
	if resolvedGot != resolvedRoot {
		t.Errorf("expected root %s, got %s", resolvedRoot, resolvedGot)
	}
}

func TestScanClassifiesByTopLevelKeys(t *testing.T) {
	root := t.TempDir()
	domain := writeFile(t, root, "domain.yml", "intents:\n  - greet\n")
	nlu := writeFile(t, root, "data/nlu.yml", "nlu:\n  - intent: greet\n")
	stories := writeFile(t, root, "data/conversation_paths.yml", "stories:\n  - story: s\n")
	rulesFile := writeFile(t, root, "data/rules.yml", "rules:\n  - rule: r\n")
	writeFile(t, root, "config.yml", "recipe: default.v1\n")

	files, err := NewScanner(root).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files.DefinitionFiles) != 1 || files.DefinitionFiles[0] != domain {
		t.Errorf("definition bucket: %v", files.DefinitionFiles)
	}
	if len(files.NLUFiles) != 1 || files.NLUFiles[0] != nlu {
		t.Errorf("nlu bucket: %v", files.NLUFiles)
	}
	if len(files.StoryFiles) != 1 || files.StoryFiles[0] != stories {
		t.Errorf("story bucket: %v", files.StoryFiles)
	}
	if len(files.RuleFiles) != 1 || files.RuleFiles[0] != rulesFile {
		t.Errorf("rule bucket: %v", files.RuleFiles)
	}
}

func TestScanMixedFileLandsInSeveralBuckets(t *testing.T) {
	root := t.TempDir()
	mixed := writeFile(t, root, "everything.yml", `
intents:
  - greet
nlu:
  - intent: greet
stories:
  - story: s
rules:
  - rule: r
`)
	files, err := NewScanner(root).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bucket := range [][]string{files.DefinitionFiles, files.NLUFiles, files.StoryFiles, files.RuleFiles} {
		if len(bucket) != 1 || bucket[0] != mixed {
			t.Errorf("mixed file missing from a bucket: %v", bucket)
		}
	}
}

func TestScanSkipsIgnoredAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "domain.yml", "intents:\n  - greet\n")
	writeFile(t, root, "models/snapshot.yml", "intents:\n  - stale\n")
	writeFile(t, root, ".rasa/cache.yml", "intents:\n  - cached\n")
	writeFile(t, root, ".git/config.yml", "stories:\n  - story: x\n")

	files, err := NewScanner(root).Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files.DefinitionFiles) != 1 {
		t.Errorf("ignored dirs leaked into buckets: %v", files.DefinitionFiles)
	}
	if len(files.StoryFiles) != 0 {
		t.Errorf("hidden dirs leaked into buckets: %v", files.StoryFiles)
	}
}

func TestFlowFilesUnion(t *testing.T) {
	files := &Files{StoryFiles: []string{"a"}, RuleFiles: []string{"b"}}
	got := files.FlowFiles()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected union: %v", got)
	}
}
