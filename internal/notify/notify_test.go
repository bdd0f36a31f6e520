package notify

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"

	"go2slack/internal/config"
	"go2slack/internal/slack"
	"go2slack/pkg/logx"
)

type fakeAPI struct {
	postErr error

	postCalls   int
	postChannel string

	uploadCalls  int
	uploadParams slackapi.UploadFileV2Parameters
}

func (f *fakeAPI) AuthTest() (*slackapi.AuthTestResponse, error) {
	return &slackapi.AuthTestResponse{Team: "t", User: "u"}, nil
}

func (f *fakeAPI) PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error) {
	f.postCalls++
	f.postChannel = channelID
	return channelID, "", f.postErr
}

func (f *fakeAPI) UploadFileV2(params slackapi.UploadFileV2Parameters) (*slackapi.FileSummary, error) {
	f.uploadCalls++
	f.uploadParams = params
	return &slackapi.FileSummary{ID: "F1"}, nil
}

func newNotifier(t *testing.T, api *fakeAPI, defaultChannel string, out *bytes.Buffer) *Notifier {
	t.Helper()
	if out == nil {
		out = &bytes.Buffer{}
	}
	client := slack.InitWith(api, defaultChannel, logx.Nop())
	return New(client, logx.New(out, "debug"))
}

func TestSendWithDisabledClient(t *testing.T) {
	var out bytes.Buffer
	client := slack.Init(config.Config{}, logx.Nop())
	n := New(client, logx.New(&out, "debug"))

	n.Send("hello")
	if !strings.Contains(out.String(), "slack functionality is disabled") {
		t.Fatalf("missing disabled diagnostic, got:\n%s", out.String())
	}
}

func TestSendWithoutAnyChannel(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer
	n := newNotifier(t, api, "", &out)

	n.Send("hello")
	if api.postCalls != 0 || api.uploadCalls != 0 {
		t.Fatal("send with no channel must not contact the remote service")
	}
	if !strings.Contains(out.String(), "no channel specified") {
		t.Fatalf("missing no-channel diagnostic, got:\n%s", out.String())
	}
}

func TestSendChannelSelection(t *testing.T) {
	tests := []struct {
		name           string
		defaultChannel string
		opts           []Option
		want           string
	}{
		{name: "explicit channel", opts: []Option{WithChannel("C-explicit")}, want: "C-explicit"},
		{name: "default channel", defaultChannel: "C-default", want: "C-default"},
		{name: "explicit overrides default", defaultChannel: "C-default", opts: []Option{WithChannel("C-explicit")}, want: "C-explicit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			n := newNotifier(t, api, tt.defaultChannel, nil)
			n.Send("hello", tt.opts...)
			if api.postCalls != 1 {
				t.Fatalf("postCalls = %d, want 1", api.postCalls)
			}
			if api.postChannel != tt.want {
				t.Fatalf("channel = %q, want %q", api.postChannel, tt.want)
			}
		})
	}
}

func TestSendMissingFile(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer
	n := newNotifier(t, api, "C1", &out)

	n.Send("caption", WithFile("missing/path.png"))
	if api.postCalls != 0 || api.uploadCalls != 0 {
		t.Fatal("missing file must not trigger any remote call")
	}
	wd, _ := os.Getwd()
	if !strings.Contains(out.String(), "local file not found") {
		t.Fatalf("missing file-not-found diagnostic, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), wd) {
		t.Fatalf("diagnostic must include the working directory %q, got:\n%s", wd, out.String())
	}
}

func TestSendFileUpload(t *testing.T) {
	api := &fakeAPI{}
	n := newNotifier(t, api, "C1", nil)

	path := filepath.Join(t.TempDir(), "result.png")
	if err := os.WriteFile(path, []byte("img-bytes"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	n.Send("run finished", WithFile(path))
	if api.uploadCalls != 1 {
		t.Fatalf("uploadCalls = %d, want 1", api.uploadCalls)
	}
	if api.postCalls != 0 {
		t.Fatal("file send must not also post a bare message")
	}
	p := api.uploadParams
	if p.Channel != "C1" {
		t.Fatalf("channel = %q, want C1", p.Channel)
	}
	if p.Filename != "result.png" || p.Title != "result.png" {
		t.Fatalf("filename/title = %q/%q, want base name result.png", p.Filename, p.Title)
	}
	if p.InitialComment != "run finished" {
		t.Fatalf("InitialComment = %q, want the message text", p.InitialComment)
	}
	if p.FileSize != len("img-bytes") {
		t.Fatalf("FileSize = %d, want %d", p.FileSize, len("img-bytes"))
	}
}

func TestSendReportsAPIError(t *testing.T) {
	api := &fakeAPI{postErr: slackapi.SlackErrorResponse{Err: "channel_not_found"}}
	var out bytes.Buffer
	n := newNotifier(t, api, "C1", &out)

	n.Send("hello")
	if !strings.Contains(out.String(), "channel_not_found") {
		t.Fatalf("diagnostic must include the API error code, got:\n%s", out.String())
	}
}

func TestSendReportsUnexpectedError(t *testing.T) {
	api := &fakeAPI{postErr: errors.New("connection reset")}
	var out bytes.Buffer
	n := newNotifier(t, api, "C1", &out)

	n.Send("hello")
	if !strings.Contains(out.String(), "unexpected error while sending message") {
		t.Fatalf("missing unexpected-error diagnostic, got:\n%s", out.String())
	}
}

func TestSendLogsSuccess(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer
	n := newNotifier(t, api, "C1", &out)

	n.Send("hello")
	if !strings.Contains(out.String(), "message sent successfully") {
		t.Fatalf("missing success diagnostic, got:\n%s", out.String())
	}
}
