// Package config loads the optional tether.yaml project file.
package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/logging"
)

// FileName is the project file looked up by Resolve.
const FileName = "tether.yaml"

// Defaults used when tether.yaml leaves a value empty.
const (
	DefaultContainer = "app"
	DefaultLogLevel  = "info"
	defaultAppName   = "tether_app"
)

// Config represents the optional tether.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	Container string `yaml:"container,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Container  string
	LogLevel   slog.Level
}

// LoadOptional reads tether.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads tether.yaml (if present) and resolves defaults. A go.mod in
// dir supplies the default app name; without one the directory name is used.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultName(modulePath, dir)
	}

	container := strings.TrimSpace(cfg.Render.Container)
	if container == "" {
		container = DefaultContainer
	}
	if strings.ContainsAny(container, " \t\n") {
		return nil, configError("render.container", fmt.Errorf("must not contain whitespace (got %q)", container))
	}

	levelName := strings.TrimSpace(cfg.Log.Level)
	if levelName == "" {
		levelName = DefaultLogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, configError("log.level", err)
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		Container:  container,
		LogLevel:   level,
	}, nil
}

// FindProjectRoot walks up from start to the nearest directory holding
// tether.yaml or go.mod. If neither is found, start is returned.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for d := dir; ; {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(d, name)); err == nil {
				return d, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir, nil
		}
		d = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return defaultAppName
	}
	return base
}

func configError(field string, err error) error {
	return &errors.HostError{Op: "config.Resolve", Kind: errors.KindConfig, Target: field, Err: err}
}
