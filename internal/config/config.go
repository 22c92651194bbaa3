// Package config loads the settings for the pagedb command.
//
// A config file is optional. Its format is picked from the extension:
//
//	pagedb.ini                 pagedb.toml
//	[repl]                     [repl]
//	prompt = "db > "           prompt = "db > "
//	[log]                      [log]
//	level = warn               level = "warn"
//	file  = /tmp/pagedb.log    file  = "/tmp/pagedb.log"
//
// Keys missing from the file keep their default values.
package config

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const (
	// DefaultPrompt is printed before each command is read.
	DefaultPrompt = "db > "

	// DefaultLogLevel keeps routine debug events out of the terminal.
	DefaultLogLevel = "warn"
)

// Config holds every setting of the command.
type Config struct {
	REPL REPLConfig
	Log  LogConfig
}

// REPLConfig configures the interactive loop.
type REPLConfig struct {
	Prompt string
}

// LogConfig configures logging. An empty File logs to stderr.
type LogConfig struct {
	Level string
	File  string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		REPL: REPLConfig{Prompt: DefaultPrompt},
		Log:  LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		err = cfg.loadINI(path)
	case ".toml":
		err = cfg.loadTOML(path)
	default:
		return nil, errors.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) loadINI(path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	repl := file.Section("repl")
	c.REPL.Prompt = repl.Key("prompt").MustString(c.REPL.Prompt)

	log := file.Section("log")
	c.Log.Level = log.Key("level").MustString(c.Log.Level)
	c.Log.File = log.Key("file").MustString(c.Log.File)
	return nil
}

func (c *Config) loadTOML(path string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return err
	}

	if v, ok := tree.Get("repl.prompt").(string); ok {
		c.REPL.Prompt = v
	}
	if v, ok := tree.Get("log.level").(string); ok {
		c.Log.Level = v
	}
	if v, ok := tree.Get("log.file").(string); ok {
		c.Log.File = v
	}
	return nil
}

// Validate checks the values that can be wrong.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}
