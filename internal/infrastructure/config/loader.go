// Package config loads engine settings, scene layouts and scripts.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Loader loads configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadEngine loads engine.toml over the built-in defaults
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	data, err := fs.ReadFile(l.fsys, "engine.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to read engine.toml: %w", err)
	}

	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine.toml: %w", err)
	}

	return cfg, nil
}

// LoadLayout loads a scene layout YAML file
func (l *Loader) LoadLayout(name string) (*SceneLayout, error) {
	p := path.Join("scenes", name+".yaml")
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", name, err)
	}

	var layout SceneLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", name, err)
	}
	if layout.Name == "" {
		layout.Name = name
	}

	return &layout, nil
}

// LoadLayouts loads every named layout, keyed by layout name
func (l *Loader) LoadLayouts(names []string) (map[string]*SceneLayout, error) {
	out := make(map[string]*SceneLayout, len(names))
	for _, name := range names {
		layout, err := l.LoadLayout(name)
		if err != nil {
			return nil, err
		}
		out[layout.Name] = layout
	}
	return out, nil
}

// LoadScript reads scripts/<name>.lua
func (l *Loader) LoadScript(name string) (string, error) {
	p := path.Join("scripts", name+".lua")
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return "", fmt.Errorf("failed to read script %s: %w", name, err)
	}
	return string(data), nil
}

// LoadScripts reads every .lua file under scripts/, keyed by name without
// extension. A missing directory yields an empty map.
func (l *Loader) LoadScripts() (map[string]string, error) {
	out := make(map[string]string)
	entries, err := fs.ReadDir(l.fsys, "scripts")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(".lua")]
		src, err := l.LoadScript(name)
		if err != nil {
			return nil, err
		}
		out[name] = src
	}
	return out, nil
}
