package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"go2slack/internal/config"
	"go2slack/internal/notify"
	"go2slack/internal/report"
	"go2slack/internal/slack"
	"go2slack/pkg/logx"
)

func main() {
	var (
		text     = flag.String("text", "", "message text (or the file's comment when -file is set)")
		file     = flag.String("file", "", "path of a local file to upload")
		channel  = flag.String("channel", "", "channel ID, overrides the configured default")
		envFile  = flag.String("env", config.DefaultEnvFile, "path to the dotenv configuration file")
		jsonFile = flag.String("json", config.DefaultJSONFile, "path to the json configuration file")
		run      = flag.String("run", "", "command to run and report on; remaining args are passed to it")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log := logx.NewConsole(*logLevel)

	resolver := config.NewResolver(log)
	resolver.EnvFile = *envFile
	resolver.JSONFile = *jsonFile

	client := slack.Init(resolver.Resolve(), log)
	ntf := notify.New(client, log)

	if *run != "" {
		os.Exit(runReported(ntf, log, *run, flag.Args()))
	}

	var opts []notify.Option
	if *file != "" {
		opts = append(opts, notify.WithFile(*file))
	}
	if *channel != "" {
		opts = append(opts, notify.WithChannel(*channel))
	}
	ntf.Send(*text, opts...)
}

// runReported executes the child command under the execution reporter, so
// the outcome notification goes out before the exit code is propagated.
func runReported(ntf *notify.Notifier, log logx.Logger, name string, args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rep := report.New(ntf, log)
	wrapped := rep.Wrap(filepath.Base(name), func() error {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	})

	if err := wrapped(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		return 1
	}
	return 0
}
