// Package config loads the optional per-repository configuration file.
//
// The file lives at the repository root as phantom.config.json (JSONC —
// comments and trailing commas are allowed, stripped with
// github.com/tidwall/jsonc before parsing) or phantom.config.yaml. When
// both exist the JSON file wins. A missing file yields a zero-value
// configuration, not an error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shuymn/phantom/internal/model"
)

// Config is the per-repository configuration.
type Config struct {
	// WorktreesDirectory relocates the worktree container directory.
	// Relative paths are resolved against the repository root. Empty
	// keeps the default .git/phantom/worktrees location.
	WorktreesDirectory string `json:"worktreesDirectory,omitempty" yaml:"worktreesDirectory,omitempty"`

	// PostCreate runs after a worktree is created: files copied from the
	// main worktree, then commands executed inside the new worktree.
	PostCreate HookSet `json:"postCreate,omitempty" yaml:"postCreate,omitempty"`

	// PreDelete runs inside a worktree before it is deleted. Only the
	// commands field is meaningful here.
	PreDelete HookSet `json:"preDelete,omitempty" yaml:"preDelete,omitempty"`

	// DefaultMultiplexerDirection selects where multiplexer placement
	// flags without an explicit direction open: "new", "vertical" or
	// "horizontal". Empty means "new".
	DefaultMultiplexerDirection string `json:"defaultMultiplexerDirection,omitempty" yaml:"defaultMultiplexerDirection,omitempty"`
}

// HookSet groups the actions attached to a lifecycle event.
type HookSet struct {
	// CopyFiles lists files, relative to the repository root, to copy
	// into the new worktree. Missing sources are skipped.
	CopyFiles []string `json:"copyFiles,omitempty" yaml:"copyFiles,omitempty"`

	// Commands are shell command lines run in the worktree directory.
	Commands []string `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// candidate file names probed in order at the repository root.
var fileNames = []string{
	"phantom.config.json",
	"phantom.config.yaml",
	"phantom.config.yml",
}

// Load reads the repository's configuration file, if present.
func Load(repoRoot string) (*Config, error) {
	for _, name := range fileNames {
		path := filepath.Join(repoRoot, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to read %s", name), err)
		}
		return parse(name, data)
	}
	return &Config{}, nil
}

func parse(name string, data []byte) (*Config, error) {
	cfg := &Config{}

	var err error
	if filepath.Ext(name) == ".json" {
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitValidationError,
			fmt.Sprintf("invalid configuration in %s", name), err)
	}

	if err := cfg.validate(name); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(name string) error {
	switch c.DefaultMultiplexerDirection {
	case "", "new", "vertical", "horizontal":
		return nil
	default:
		return model.NewCLIError(model.ExitValidationError,
			fmt.Sprintf("invalid defaultMultiplexerDirection %q in %s (valid: new, vertical, horizontal)",
				c.DefaultMultiplexerDirection, name))
	}
}
