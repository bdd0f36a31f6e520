package notify

import (
	"sync"

	"go2slack/internal/config"
	"go2slack/internal/slack"
	"go2slack/pkg/logx"
)

var (
	defaultOnce sync.Once
	defaultNtf  *Notifier
)

// Default builds the process-wide notifier on first use: it resolves
// configuration from the conventional sources, runs the liveness check, and
// caches the result for the rest of the process lifetime. Hosts that want
// explicit wiring should call config.NewResolver / slack.Init / New
// themselves and ignore this.
func Default() *Notifier {
	defaultOnce.Do(func() {
		log := logx.NewConsole("info")
		cfg := config.NewResolver(log).Resolve()
		defaultNtf = New(slack.Init(cfg, log), log)
	})
	return defaultNtf
}
