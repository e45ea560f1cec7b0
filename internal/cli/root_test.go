package cli

import (
	"testing"

	"github.com/oxhq/julie/internal/config"
)

func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()
	want := []string{"index", "watch", "query", "trace", "stats"}
	got := make(map[string]bool)
	for _, c := range root.Commands() {
		got[c.Name()] = true
	}
	for _, name := range want {
		if !got[name] {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestOpenAppOpensAndClosesCleanly(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		WorkspaceRoot: dir,
		DataDir:       dir + "/.julie",
		ModelDir:      dir + "/.julie/models",
	}
	a, err := openApp(cfg)
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	if a.workspaceID == "" {
		t.Error("expected a non-empty workspace ID")
	}
	if a.embed.Available() {
		t.Error("expected embedder to be unavailable with no model files present")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
