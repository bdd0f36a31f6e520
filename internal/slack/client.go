// Package slack wraps the Slack SDK behind a small client that is either
// ready or disabled. Initialization never fails loudly: a missing token or a
// failed liveness check disables Slack delivery for the process lifetime but
// must not stop the host from starting.
package slack

import (
	"errors"
	"fmt"
	"io"
	"strings"

	slackapi "github.com/slack-go/slack"

	"go2slack/internal/config"
	"go2slack/pkg/logx"
)

// ErrDisabled is returned by send operations on a client that never came up.
var ErrDisabled = errors.New("slack client disabled")

// API is the subset of the Slack SDK consumed by this module. Tests swap in
// fakes; production code uses *slackapi.Client.
type API interface {
	AuthTest() (*slackapi.AuthTestResponse, error)
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
	UploadFileV2(params slackapi.UploadFileV2Parameters) (*slackapi.FileSummary, error)
}

// Client is the process-wide Slack handle, immutable after initialization.
// There is no reconnection and no credential refresh.
type Client struct {
	api            API
	defaultChannel string

	// reason records why the client is disabled. Empty when ready.
	reason string
}

// Init resolves the client from configuration. Call it once at process
// start; the returned client is safe for concurrent reads.
func Init(cfg config.Config, log logx.Logger) *Client {
	if strings.TrimSpace(cfg.OAuthToken) == "" {
		log.Warn("missing oauth token in configuration, slack functionality disabled")
		return &Client{reason: "missing oauth token in configuration"}
	}
	return InitWith(slackapi.New(cfg.OAuthToken), cfg.DefaultChannel, log)
}

// InitWith runs the liveness check against a caller-supplied API
// implementation and returns the resulting client state.
func InitWith(api API, defaultChannel string, log logx.Logger) *Client {
	resp, err := api.AuthTest()
	if err != nil {
		log.Warn("slack auth test failed, slack functionality disabled", logx.Err(err))
		return &Client{reason: fmt.Sprintf("auth test failed: %v", err)}
	}
	log.Debug("slack client ready",
		logx.String("team", resp.Team), logx.String("user", resp.User))
	return &Client{api: api, defaultChannel: defaultChannel}
}

// Ready reports whether the client holds a live Slack session.
func (c *Client) Ready() bool { return c != nil && c.api != nil }

// Reason returns why the client is disabled, or "" when ready.
func (c *Client) Reason() string {
	if c == nil {
		return "client not initialized"
	}
	return c.reason
}

// DefaultChannel returns the configured fallback channel; may be empty.
func (c *Client) DefaultChannel() string {
	if c == nil {
		return ""
	}
	return c.defaultChannel
}

// PostMessage sends plain text to a channel. A disabled client returns
// ErrDisabled without contacting the remote service.
func (c *Client) PostMessage(channel, text string) error {
	if !c.Ready() {
		return ErrDisabled
	}
	_, _, err := c.api.PostMessage(channel, slackapi.MsgOptionText(text, false))
	return err
}

// UploadFile streams file content to a channel with an accompanying comment.
// A disabled client returns ErrDisabled without contacting the remote service.
func (c *Client) UploadFile(channel string, content io.Reader, size int64, filename, title, comment string) error {
	if !c.Ready() {
		return ErrDisabled
	}
	_, err := c.api.UploadFileV2(slackapi.UploadFileV2Parameters{
		Channel:        channel,
		Reader:         content,
		FileSize:       int(size),
		Filename:       filename,
		Title:          title,
		InitialComment: comment,
	})
	return err
}
