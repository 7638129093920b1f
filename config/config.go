// Package config resolves where memo keeps its data and reads
// optional settings from config.jsonc in the data directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/kjk/memo/u"
)

// DefaultDataFile is the name of data file if not set in config
const DefaultDataFile = "memo.txt"

// Config is content of config.jsonc.
// Comments and trailing commas are allowed.
//
//	{
//	  // name of the data file, relative to data directory
//	  "data_file": "memo.txt",
//	  "log_dir": "~/logs/memo",
//	  "plain": false,
//	}
type Config struct {
	DataFile string `json:"data_file"`
	LogDir   string `json:"log_dir"`
	// list memos as raw lines instead of grouped by day
	Plain bool `json:"plain"`

	// directory config was loaded from
	Dir string `json:"-"`
}

// DataFilePath returns full path of data file
func (c *Config) DataFilePath() string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(c.Dir, c.DataFile)
}

func applyDefaults(c *Config) {
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	c.DataFile = u.ExpandTildeInPath(c.DataFile)
	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.Dir, "logs")
	}
	c.LogDir = u.ExpandTildeInPath(c.LogDir)
}

// Parse parses JSONC config data
func Parse(d []byte) (*Config, error) {
	std, err := hujson.Standardize(d)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	var c Config
	if err = json.Unmarshal(std, &c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

// Load reads config.jsonc from dir. A missing file means defaults.
func Load(dir string) (*Config, error) {
	path := ConfigPath(dir)
	c := &Config{}
	d, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config '%s': %w", path, err)
	}
	if err == nil {
		c, err = Parse(d)
		if err != nil {
			return nil, fmt.Errorf("'%s': %w", path, err)
		}
	}
	c.Dir = dir
	applyDefaults(c)
	return c, nil
}
