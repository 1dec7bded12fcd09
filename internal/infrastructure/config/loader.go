package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Editor *EditorConfig
	Stage  *StageConfig
	Rig    *RigConfig
}

// Loader loads editor configuration from JSON and YAML files using fs.FS interface
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

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadEditor loads editor.json
func (l *Loader) LoadEditor() (*EditorConfig, error) {
	data, err := fs.ReadFile(l.fsys, "editor.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read editor.json: %w", err)
	}

	var cfg EditorConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse editor.json: %w", err)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadRig loads a rig YAML file
func (l *Loader) LoadRig(name string) (*RigConfig, error) {
	path := "rigs/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rig %s: %w", name, err)
	}

	var cfg RigConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rig %s: %w", name, err)
	}
	if len(cfg.Bones) == 0 {
		return nil, fmt.Errorf("rig %s has no bones", name)
	}

	return &cfg, nil
}

// LoadAll loads editor.json and the stage and rig it names
func (l *Loader) LoadAll() (*GameConfig, error) {
	editor, err := l.LoadEditor()
	if err != nil {
		return nil, err
	}

	stage, err := l.LoadStage(editor.Editor.Stage)
	if err != nil {
		return nil, err
	}

	rig, err := l.LoadRig(editor.Editor.Rig)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Editor: editor,
		Stage:  stage,
		Rig:    rig,
	}, nil
}
