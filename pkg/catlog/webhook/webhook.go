// Package webhook posts rich embed messages to a chat platform webhook.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Embed field limits enforced by the chat platform.
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 4096
	MaxAuthorLength      = 256
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// ErrInvalidURL is returned by New for URLs that cannot be posted to.
var ErrInvalidURL = errors.New("invalid webhook URL")

// Author is the embed author block.
type Author struct {
	Name string `json:"name"`
}

// Embed is one rich message block.
type Embed struct {
	Author      *Author `json:"author,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	// Timestamp is serialized as RFC 3339.
	Timestamp string `json:"timestamp,omitempty"`
	Color     int    `json:"color"`
}

// Message is the webhook execute payload.
type Message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds"`
}

// NewEmbed builds an embed, truncating fields to the platform limits.
func NewEmbed(author, title, description string, ts time.Time, color int) Embed {
	e := Embed{
		Title:       truncate(title, MaxTitleLength),
		Description: truncate(description, MaxDescriptionLength),
		Color:       color,
	}
	if author != "" {
		e.Author = &Author{Name: truncate(author, MaxAuthorLength)}
	}
	if !ts.IsZero() {
		e.Timestamp = ts.UTC().Format(time.RFC3339)
	}
	return e
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook returned status %d: %s", e.StatusCode, e.Body)
}

// Client posts messages to a single webhook URL.
type Client struct {
	url  string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New validates rawURL and returns a client for it.
func New(rawURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing webhook URL"), ErrInvalidURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Wrapf(ErrInvalidURL, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.Wrap(ErrInvalidURL, "missing host")
	}

	c := &Client{
		url:  u.String(),
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the webhook URL.
func (c *Client) URL() string { return c.url }

// Execute posts msg. The deadline comes from ctx.
func (c *Client) Execute(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshaling webhook message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "creating webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "posting webhook message")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Redact hides the token part of a webhook URL for diagnostics, keeping the
// scheme, host and the last four characters.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "****"
	}
	path := u.Path
	tail := ""
	if n := len(path); n > 4 {
		tail = path[n-4:]
	}
	return u.Scheme + "://" + u.Host + "/****" + tail
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
