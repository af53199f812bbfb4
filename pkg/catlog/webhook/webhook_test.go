package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://chat.example.com/api/webhooks/1/abc", false},
		{"http", "http://127.0.0.1:8080/hook", false},
		{"trims space", "  https://chat.example.com/h  ", false},
		{"ftp", "ftp://chat.example.com/h", true},
		{"no scheme", "chat.example.com/h", true},
		{"no host", "https:///h", true},
		{"unparsable", "https://bad host\x7f/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidURL), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.url), c.URL())
		})
	}
}

func TestExecute_Payload(t *testing.T) {
	var (
		gotBody   []byte
		gotHeader http.Header
		gotMethod string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/api/webhooks/1/token")
	require.NoError(t, err)

	ts := time.Date(2024, 7, 4, 18, 30, 0, 0, time.FixedZone("EST", -5*3600))
	msg := Message{Embeds: []Embed{NewEmbed("Error", "db", "connection refused", ts, 0xE74C3C)}}
	require.NoError(t, c.Execute(context.Background(), msg))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	embeds := payload["embeds"].([]any)
	require.Len(t, embeds, 1)
	embed := embeds[0].(map[string]any)
	assert.Equal(t, "db", embed["title"])
	assert.Equal(t, "connection refused", embed["description"])
	assert.Equal(t, "2024-07-04T23:30:00Z", embed["timestamp"])
	assert.InDelta(t, float64(0xE74C3C), embed["color"], 0)
	assert.Equal(t, map[string]any{"name": "Error"}, embed["author"])
	assert.NotContains(t, payload, "content")
}

func TestExecute_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"message": "You are being rate limited."}`+strings.Repeat("x", 2000))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.Execute(context.Background(), Message{})
	var se *StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.LessOrEqual(t, len(se.Body), maxErrorBody)
	assert.Contains(t, se.Error(), "429")
}

func TestExecute_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = c.Execute(ctx, Message{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestExecute_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)
	assert.Error(t, c.Execute(context.Background(), Message{}))
}

func TestNewEmbed_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxDescriptionLength+10)
	e := NewEmbed(strings.Repeat("a", 300), strings.Repeat("t", 300), long, time.Time{}, 0)

	assert.Equal(t, MaxAuthorLength, utf8.RuneCountInString(e.Author.Name))
	assert.Equal(t, MaxTitleLength, utf8.RuneCountInString(e.Title))
	assert.Equal(t, MaxDescriptionLength, utf8.RuneCountInString(e.Description))
	assert.True(t, strings.HasSuffix(e.Description, "..."))
	assert.Empty(t, e.Timestamp, "zero time is omitted")

	short := NewEmbed("", "t", "d", time.Time{}, 1)
	assert.Nil(t, short.Author)
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://chat.example.com/api/webhooks/123/secrettoken", "https://chat.example.com/****oken"},
		{"https://chat.example.com/ab", "https://chat.example.com/****"},
		{"not a url", "****"},
	}
	for _, tt := range tests {
		if got := Redact(tt.in); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
