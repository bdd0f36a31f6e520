// Package notify sends text messages and file uploads to Slack.
//
// Send never returns an error: every failure path (disabled client, no
// channel, missing file, API rejection) is logged and the call returns
// normally, so notification delivery can never break the host's own flow.
package notify

import (
	"errors"
	"os"
	"path/filepath"

	slackapi "github.com/slack-go/slack"

	"go2slack/internal/slack"
	"go2slack/pkg/logx"
)

type Notifier struct {
	client *slack.Client
	log    logx.Logger
}

func New(client *slack.Client, log logx.Logger) *Notifier {
	return &Notifier{client: client, log: log}
}

// Option adjusts a single Send call.
type Option func(*request)

type request struct {
	file    string
	channel string
}

// WithFile uploads the file at path; the message text becomes the upload's
// initial comment instead of the payload.
func WithFile(path string) Option {
	return func(r *request) { r.file = path }
}

// WithChannel overrides the configured default channel for this call.
func WithChannel(channel string) Option {
	return func(r *request) { r.channel = channel }
}

// Send posts text (or a file with text as comment) to the explicit channel
// if given, otherwise to the configured default.
func (n *Notifier) Send(text string, opts ...Option) {
	var req request
	for _, o := range opts {
		o(&req)
	}

	if !n.client.Ready() {
		n.log.Warn("slack functionality is disabled, notification dropped",
			logx.String("reason", n.client.Reason()))
		return
	}

	channel := req.channel
	if channel == "" {
		channel = n.client.DefaultChannel()
	}
	if channel == "" {
		n.log.Error("no channel specified: provide a channel or set a default channel in the configuration")
		return
	}

	var err error
	if req.file == "" {
		err = n.client.PostMessage(channel, text)
	} else {
		sent, uerr := n.uploadFile(channel, req.file, text)
		if !sent {
			return
		}
		err = uerr
	}

	var apiErr slackapi.SlackErrorResponse
	switch {
	case err == nil:
		n.log.Info("message sent successfully", logx.String("channel", channel))
	case errors.As(err, &apiErr):
		n.log.Error("error sending message", logx.String("slack_error", apiErr.Err))
	default:
		n.log.Error("unexpected error while sending message", logx.Err(err))
	}
}

// uploadFile returns sent=false when the upload was skipped before any
// remote call was made.
func (n *Notifier) uploadFile(channel, path, comment string) (sent bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		wd, _ := os.Getwd()
		n.log.Warn("local file not found",
			logx.String("path", path), logx.String("working_dir", wd))
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		n.log.Warn("unable to open local file",
			logx.String("path", path), logx.Err(err))
		return false, nil
	}
	defer f.Close()

	name := filepath.Base(path)
	return true, n.client.UploadFile(channel, f, info.Size(), name, name, comment)
}
