package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/tether/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/counter/v2\n\ngo 1.24\n")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ModulePath != "example.com/acme/counter/v2" {
		t.Errorf("ModulePath = %q", cfg.ModulePath)
	}
	if cfg.AppName != "counter" {
		t.Errorf("AppName = %q, want counter", cfg.AppName)
	}
	if cfg.Container != DefaultContainer {
		t.Errorf("Container = %q, want %q", cfg.Container, DefaultContainer)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestResolve_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: Dashboard
render:
  container: root
log:
  level: debug
`)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ModulePath != "" {
		t.Errorf("ModulePath = %q, want empty without go.mod", cfg.ModulePath)
	}
	if cfg.AppName != "Dashboard" || cfg.Container != "root" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("got %+v", cfg)
	}
}

func TestResolve_NoModuleUsesDirName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inbox")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.AppName != "inbox" {
		t.Errorf("AppName = %q, want inbox", cfg.AppName)
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"container whitespace", "render:\n  container: \"my app\"\n", "render.container"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.yaml)

			_, err := Resolve(dir)
			var hostErr *errors.HostError
			if !stderrors.As(err, &hostErr) {
				t.Fatalf("error = %v, want *errors.HostError", err)
			}
			if hostErr.Kind != errors.KindConfig || hostErr.Target != tt.field {
				t.Errorf("got kind=%v target=%q", hostErr.Kind, hostErr.Target)
			}
		})
	}
}

func TestLoadOptional_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "app: [unclosed\n")

	if _, err := LoadOptional(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "app:\n  name: x\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}
}
