package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	flags "github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"claudatui/internal/config"
	"claudatui/internal/errs"
	"claudatui/internal/kernel"
	"claudatui/internal/obslog"
)

func main() {
	var opts struct {
		ConfigPath string `short:"c" long:"config" description:"path to claudatui.yaml"`
		ClaudeDir  string `long:"claude-dir" description:"override the assistant's data directory (default: ~/.claude)"`
		LogLevel   string `long:"log-level" description:"debug|info|warn|error"`
		LogFile    string `long:"log-file" description:"write structured logs to this file in addition to stderr"`
	}

	if _, err := flags.ParseArgs(&opts, os.Args); err != nil {
		return
	}

	if err := run(opts.ConfigPath, opts.ClaudeDir, opts.LogLevel, opts.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "claudatui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, claudeDirOverride, logLevel, logFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	logger, cleanup, err := obslog.Init(obslog.Options{Level: cfg.LogLevel, LogFile: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer cleanup()

	claudeDir := claudeDirOverride
	if claudeDir == "" {
		claudeDir = cfg.ClaudeDir
	}
	if claudeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// Fatal to core (spec.md §7): inability to locate the user's
			// home directory at startup.
			return fmt.Errorf("%w: %v", errs.ErrHomeDirUnavailable, err)
		}
		claudeDir = filepath.Join(home, ".claude")
	}

	logger.Info("starting claudatui", zap.String("claude_dir", claudeDir))

	k, err := kernel.New(cfg, logger, claudeDir)
	if err != nil {
		return fmt.Errorf("initializing kernel: %w", err)
	}
	defer k.Close()

	input, err := newStdinInputSource()
	if err != nil {
		return fmt.Errorf("initializing terminal input: %w", err)
	}
	defer input.Close()

	for !k.Done() {
		k.Tick(time.Now(), input)
		snapshot := k.Snapshot()
		renderPlain(snapshot)
	}

	return nil
}
