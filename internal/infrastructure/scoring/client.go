package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"factskill/internal/domain"
	"factskill/internal/ports/output"
)

// Accepted recommendation levels. The value ends up as an SSML prosody
// rate, which the platform rejects below 20%.
const (
	MinLevel = 20
	MaxLevel = 200
)

const maxReplyBytes = 64 << 10

var _ output.Scorer = (*Client)(nil)

// Client posts score requests to the recommendation service as JSON.
type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient builds a Client. timeout 0 leaves calls unbounded apart from
// the caller's context.
func NewClient(url string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, timeout: timeout, httpClient: httpClient}
}

func (c *Client) Score(ctx context.Context, req output.ScoreRequest) (int64, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("scoring: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", domain.ErrExternalService, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return 0, fmt.Errorf("%w: read reply: %v", domain.ErrExternalService, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: status %d", domain.ErrExternalService, resp.StatusCode)
	}
	return ParseLevel(reply)
}

// ParseLevel validates a reply: a JSON number or numeric string holding an
// integer in [MinLevel, MaxLevel].
func ParseLevel(reply []byte) (int64, error) {
	raw := strings.TrimSpace(string(reply))
	if raw == "" {
		return 0, fmt.Errorf("%w: empty reply", domain.ErrExternalService)
	}

	var v any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("%w: malformed reply %q", domain.ErrExternalService, truncate(raw))
	}

	var text string
	switch tv := v.(type) {
	case json.Number:
		text = tv.String()
	case string:
		text = strings.TrimSpace(tv)
	default:
		return 0, fmt.Errorf("%w: reply is %T, want number", domain.ErrExternalService, v)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: reply %q is not an integer", domain.ErrExternalService, truncate(text))
	}
	level := int64(f)
	if level < MinLevel || level > MaxLevel {
		return 0, fmt.Errorf("%w: level %d outside [%d, %d]", domain.ErrExternalService, level, MinLevel, MaxLevel)
	}
	return level, nil
}

func truncate(s string) string {
	const n = 64
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
