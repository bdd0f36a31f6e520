// Package report wraps units of work with timing and outcome notification.
//
// The wrapper is an observer, not a handler: the wrapped function's result
// or error passes through unchanged, and a panic is re-raised with its
// original value after the failure has been reported.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"go2slack/internal/notify"
	"go2slack/pkg/logx"
)

// Sender delivers outcome notifications. *notify.Notifier satisfies it.
type Sender interface {
	Send(text string, opts ...notify.Option)
}

type Reporter struct {
	sender Sender
	log    logx.Logger
}

func New(sender Sender, log logx.Logger) *Reporter {
	return &Reporter{sender: sender, log: log}
}

// Wrap instruments fn with wall-clock timing. On return a success or
// failure notification is sent, then the original error (if any) is
// returned unchanged.
func (r *Reporter) Wrap(name string, fn func() error) func() error {
	wrapped := WrapValue(r, name, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return func() error {
		_, err := wrapped()
		return err
	}
}

// WrapValue is Wrap for work that produces a value. The value and error
// pass through untouched.
func WrapValue[T any](r *Reporter, name string, fn func() (T, error)) func() (T, error) {
	return func() (result T, err error) {
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				r.reportFailure(name, time.Since(start), fmt.Sprint(rec), string(debug.Stack()))
				panic(rec)
			}
		}()

		result, err = fn()
		elapsed := time.Since(start)
		if err != nil {
			r.reportFailure(name, elapsed, err.Error(), string(debug.Stack()))
			return result, err
		}
		r.reportSuccess(name, elapsed)
		return result, nil
	}
}

func (r *Reporter) reportSuccess(name string, elapsed time.Duration) {
	msg := fmt.Sprintf("[%s] Function '%s' completed successfully in %s!",
		scriptName(), name, FormatDuration(elapsed.Seconds()))
	r.log.Info("work completed", logx.String("name", name), logx.Duration("elapsed", elapsed))
	r.sender.Send(msg)
}

func (r *Reporter) reportFailure(name string, elapsed time.Duration, errMsg, stack string) {
	msg := fmt.Sprintf("[%s] Function '%s' encountered an error after %s:\n%s\n\nTraceback:\n%s",
		scriptName(), name, FormatDuration(elapsed.Seconds()), errMsg, stack)
	r.log.Error("work failed",
		logx.String("name", name), logx.Duration("elapsed", elapsed),
		logx.String("error", errMsg), logx.Stack(stack))
	r.sender.Send(msg)
}

func scriptName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "unknown"
	}
	return filepath.Base(os.Args[0])
}
