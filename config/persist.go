package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/sketchflow/errors"
)

// projectTemplate is the document written by `config init`.
type projectTemplate struct {
	Generate struct {
		Framework string `toml:"framework"`
		Out       string `toml:"out"`
	} `toml:"generate"`
	Limits struct {
		MaxDepth int `toml:"max_depth"`
		MaxNodes int `toml:"max_nodes"`
	} `toml:"limits"`
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Watch struct {
		DebounceMS int `toml:"debounce_ms"`
	} `toml:"watch"`
}

// WriteProject writes a sketchflow.toml with the default settings to dir.
// An existing file is rotated to .back1 (then .back2, .back3) first.
func WriteProject(dir string) (string, error) {
	var tpl projectTemplate
	tpl.Generate.Framework = DefaultFramework
	tpl.Generate.Out = DefaultOut
	tpl.Limits.MaxDepth = DefaultMaxDepth
	tpl.Limits.MaxNodes = DefaultMaxNodes
	tpl.Server.Addr = DefaultServerAddr
	tpl.Watch.DebounceMS = DefaultDebounceMS

	data, err := toml.Marshal(tpl)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode config")
	}

	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dir)
	}
	path := filepath.Join(dir, ProjectFileName)
	if err := createBackup(path); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", back3)
	}
	for _, step := range [][2]string{{back2, back3}, {back1, back2}} {
		if _, err := os.Stat(step[0]); err == nil {
			if err := os.Rename(step[0], step[1]); err != nil {
				return errors.Wrapf(err, "failed to rotate %s", filepath.Base(step[0]))
			}
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, 0644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
