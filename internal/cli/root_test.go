package cli

import "testing"

func TestRootCommand(t *testing.T) {
	cmd := NewRoot()
	if cmd == nil || cmd.Use != "rasalint" {
		t.Fatalf("expected root command")
	}
}

func TestRootSubcommands(t *testing.T) {
	cmd := NewRoot()
	want := map[string]bool{"init": false, "validate": false, "watch": false, "files": false, "tui": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
