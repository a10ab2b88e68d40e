package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jdeng/gogif/internal/config"
	"github.com/jdeng/gogif/internal/logging"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
	logFile   string
}

type commandContext struct {
	flags *globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// logger builds a logger writing to the command's stderr. Flags take
// precedence over the [logging] section. Callers defer the returned close.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	opts := logging.Options{
		Writer:   cmd.ErrOrStderr(),
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		FilePath: cfg.Logging.File,
	}
	if v := strings.TrimSpace(c.flags.logLevel); v != "" {
		opts.Level = v
	}
	if v := strings.TrimSpace(c.flags.logFormat); v != "" {
		opts.Format = v
	}
	if v := strings.TrimSpace(c.flags.logFile); v != "" {
		opts.FilePath = v
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewComponentLogger(logger, "cli"), closeLog, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
