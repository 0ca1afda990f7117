package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const configFile = "custodyd.toml"

// Config is the node configuration read from <home>/custodyd.toml. Flags of
// the start command take precedence.
type Config struct {
	Bind        string `toml:"bind"`
	Debug       bool   `toml:"debug"`
	LogLevel    string `toml:"log_level"`
	DBPath      string `toml:"db_path"`
	MetricsAddr string `toml:"metrics_addr"`
	// LogFile when set receives the logs instead of the standard output.
	LogFile LogFile `toml:"log_file"`
}

// LogFile configures a rotated log file.
type LogFile struct {
	Path       string `toml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// DefaultConfig returns the configuration written on the first start.
func DefaultConfig(home string) Config {
	return Config{
		Bind:        "tcp://localhost:26658",
		LogLevel:    "info",
		DBPath:      filepath.Join(home, "custody.db"),
		MetricsAddr: "",
	}
}

// LoadConfig reads the configuration at path. A missing file is created with
// the default configuration.
func LoadConfig(home string) (*Config, error) {
	path := filepath.Join(home, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(home, path)
	}

	conf := DefaultConfig(home)
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &conf, nil
}

func createDefault(home, path string) (*Config, error) {
	conf := DefaultConfig(home)
	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(conf); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &conf, nil
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	var err error
	if c.Bind == "" {
		err = errors.AppendField(err, "Bind", errors.ErrEmpty)
	}
	if _, e := log.AllowLevel(c.LogLevel); e != nil {
		err = errors.AppendField(err, "LogLevel", errors.Wrap(errors.ErrInput, e.Error()))
	}
	if c.LogFile.MaxSizeMB < 0 || c.LogFile.MaxBackups < 0 || c.LogFile.MaxAgeDays < 0 {
		err = errors.AppendField(err, "LogFile", errors.Wrap(errors.ErrInput, "negative limit"))
	}
	return err
}

// Logger creates the node logger filtered by the configured level.
func (c Config) Logger(stdout io.Writer) (log.Logger, error) {
	out := stdout
	if c.LogFile.Path != "" {
		out = &lumberjack.Logger{
			Filename:   c.LogFile.Path,
			MaxSize:    c.LogFile.MaxSizeMB,
			MaxBackups: c.LogFile.MaxBackups,
			MaxAge:     c.LogFile.MaxAgeDays,
		}
	}
	allowed, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	return log.NewFilter(logger, allowed).With("module", "custody"), nil
}

// StartOptions returns the defaults of the start command.
func (c Config) StartOptions(home string, logger log.Logger) server.Options {
	return server.Options{
		Home:        home,
		Logger:      logger,
		DBPath:      c.DBPath,
		Bind:        c.Bind,
		Debug:       c.Debug,
		MetricsAddr: c.MetricsAddr,
	}
}
